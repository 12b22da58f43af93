package suite

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mj1618/desktop-matrix/internal/combo"
	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/platform"
	"github.com/mj1618/desktop-matrix/internal/tree"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"
)

// Options tune a run. The zero value uses the suite's own settings and the
// default taxonomy.
type Options struct {
	StopOnError bool // Stop at the first failing case, in addition to the suite setting
	Limit       int  // Max combinations to run (0 = all)
	Parallel    int  // Combinations evaluated concurrently (0 or 1 = sequential)
	Taxonomy    model.RoleTaxonomy
	Logger      zerolog.Logger
}

// CaseResult is the outcome of one check under one combination.
type CaseResult struct {
	Case    int            `yaml:"case"              json:"case"`
	Check   string         `yaml:"check"             json:"check"`
	Params  map[string]any `yaml:"params,omitempty"  json:"params,omitempty"`
	OK      bool           `yaml:"ok"                json:"ok"`
	Matches []int          `yaml:"matches,flow,omitempty" json:"matches,omitempty"` // IDs of matching elements
	Error   string         `yaml:"error,omitempty"   json:"error,omitempty"`
}

// Report summarizes a run.
type Report struct {
	OK           bool         `yaml:"ok"                json:"ok"`
	Action       string       `yaml:"action"            json:"action"`
	RunID        string       `yaml:"run_id"            json:"run_id"`
	Suite        string       `yaml:"suite,omitempty"   json:"suite,omitempty"`
	Combinations int          `yaml:"combinations"      json:"combinations"`
	Total        int          `yaml:"total"             json:"total"`
	Passed       int          `yaml:"passed"            json:"passed"`
	Failed       int          `yaml:"failed"            json:"failed"`
	Stopped      bool         `yaml:"stopped,omitempty" json:"stopped,omitempty"`
	Results      []CaseResult `yaml:"results"           json:"results"`
}

// Run reads the suite's tree once, then evaluates every check for every
// combination of the matrix, in odometer order. A cancelled ctx stops the
// run between combinations and returns the partial report with ctx.Err().
func Run(ctx context.Context, s *Suite, reader platform.Reader, opts Options) (Report, error) {
	elements, err := reader.ReadElements(platform.ReadOptions{Path: s.Tree})
	if err != nil {
		return Report{Action: "run", Suite: s.Name, Results: []CaseResult{}}, fmt.Errorf("read tree: %w", err)
	}
	return RunOn(ctx, s, elements, opts)
}

// RunOn is Run against an already loaded element tree. With opts.Parallel
// above one, combinations are evaluated in batches of that size; the report
// is identical to a sequential run.
func RunOn(ctx context.Context, s *Suite, elements []model.Element, opts Options) (Report, error) {
	report := Report{Action: "run", RunID: uuid.NewString(), Suite: s.Name, Results: []CaseResult{}}
	log := opts.Logger.With().Str("run_id", report.RunID).Logger()
	tax := opts.Taxonomy
	if tax == nil {
		tax = model.DefaultTaxonomy
	}
	stopOnError := opts.StopOnError || s.StopOnError
	workers := max(opts.Parallel, 1)

	engine, err := combo.FromDimensions(s.Dimensions)
	if err != nil {
		return report, fmt.Errorf("matrix: %w", err)
	}
	root := model.NewForest(elements)
	log.Debug().
		Str("suite", s.Name).
		Int("combinations", engine.Count()).
		Int("checks", len(s.Checks)).
		Int("workers", workers).
		Msg("run started")

	mapper := iter.Mapper[map[string]any, []CaseResult]{MaxGoroutines: workers}
	params := make(map[string]any, len(s.Dimensions))
	exhausted := false
	for !exhausted && !report.Stopped {
		batch := make([]map[string]any, 0, workers)
		for len(batch) < workers {
			if err := ctx.Err(); err != nil {
				report.Stopped = true
				finish(&report)
				return report, err
			}
			if !engine.Next(params) {
				exhausted = true
				break
			}
			if opts.Limit > 0 && report.Combinations+len(batch) >= opts.Limit {
				report.Stopped = true
				break
			}
			batch = append(batch, copyParams(params))
		}

		cases := mapper.Map(batch, func(p *map[string]any) []CaseResult {
			return evaluateCase(root, tax, s.Checks, *p)
		})
		for _, results := range cases {
			report.Combinations++
			failed := false
			for _, res := range results {
				res.Case = report.Combinations
				report.Results = append(report.Results, res)
				if !res.OK {
					failed = true
					log.Debug().Int("case", res.Case).Str("check", res.Check).Str("error", res.Error).Msg("check failed")
				}
			}
			if failed && stopOnError {
				report.Stopped = true
				break
			}
		}
	}

	finish(&report)
	log.Info().Str("suite", s.Name).Int("passed", report.Passed).Int("failed", report.Failed).Msg("run finished")
	return report, nil
}

// evaluateCase runs every check under one combination. Only reads the tree,
// so cases may run concurrently.
func evaluateCase(root *model.Node, tax model.RoleTaxonomy, checks []Check, params map[string]any) []CaseResult {
	results := make([]CaseResult, len(checks))
	for i, c := range checks {
		results[i] = evaluate(root, tax, c, params)
		results[i].Params = params
	}
	return results
}

func finish(r *Report) {
	r.Total = len(r.Results)
	r.Passed, r.Failed = 0, 0
	for _, res := range r.Results {
		if res.OK {
			r.Passed++
		} else {
			r.Failed++
		}
	}
	r.OK = r.Failed == 0
}

// evaluate runs one check with placeholders substituted from params.
func evaluate(root *model.Node, tax model.RoleTaxonomy, c Check, params map[string]any) CaseResult {
	expanded, err := expandCheck(c, params)
	if err != nil {
		return CaseResult{Check: c.Label(), Error: err.Error()}
	}
	res := CaseResult{Check: expanded.Label()}

	matches := Search(root, tax, expanded)
	res.Matches = make([]int, len(matches))
	for i, n := range matches {
		res.Matches[i] = n.Element.ID
	}

	switch expanded.Expect {
	case "", ExpectExists:
		res.OK = len(matches) > 0
		if !res.OK {
			res.Error = "no matching element"
		}
	case ExpectGone:
		res.OK = len(matches) == 0
		if !res.OK {
			res.Error = fmt.Sprintf("expected no match, found %d", len(matches))
		}
	case ExpectCount:
		res.OK = len(matches) == expanded.Count
		if !res.OK {
			res.Error = fmt.Sprintf("expected %d matches, found %d", expanded.Count, len(matches))
		}
	}
	return res
}

// Search returns the nodes under root that satisfy c's role, text, and
// ancestor constraints, in pre-order. Placeholders must already be expanded.
func Search(root *model.Node, tax model.RoleTaxonomy, c Check) []*model.Node {
	var candidates []*model.Node
	if c.Find == "" {
		candidates = tree.FindDescendants[*model.Node](root)
	} else {
		candidates = root.Find(tax, c.Find)
	}

	textLower := strings.ToLower(c.Text)
	matches := []*model.Node{}
	for _, n := range candidates {
		if c.Text != "" && !model.TextMatches(*n.Element, textLower) {
			continue
		}
		if c.Within != "" && n.Closest(tax, c.Within) == nil {
			continue
		}
		matches = append(matches, n)
	}
	return matches
}

func expandCheck(c Check, params map[string]any) (Check, error) {
	var missing []string
	mapping := func(name string) string {
		v, ok := params[name]
		if !ok {
			missing = append(missing, name)
			return ""
		}
		return fmt.Sprint(v)
	}
	c.Find = os.Expand(c.Find, mapping)
	c.Text = os.Expand(c.Text, mapping)
	c.Within = os.Expand(c.Within, mapping)
	if len(missing) > 0 {
		sort.Strings(missing)
		return c, fmt.Errorf("unknown dimension(s): %s", strings.Join(missing, ", "))
	}
	return c, nil
}

func copyParams(params map[string]any) map[string]any {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

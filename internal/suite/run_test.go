package suite

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mj1618/desktop-matrix/internal/combo"
	"github.com/mj1618/desktop-matrix/internal/logging"
	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNotesTree creates:
//
//	window (id=1, "Notes")
//	├── toolbar (id=2)
//	│   ├── btn (id=3, "Bold")
//	│   └── chk (id=4, "Highlight")
//	└── group (id=5, "Page")
//	    ├── btn (id=6, "Bold")
//	    └── txt (id=7, "Body")
func buildNotesTree() []model.Element {
	return []model.Element{
		{ID: 1, Role: "window", Title: "Notes", Children: []model.Element{
			{ID: 2, Role: "toolbar", Children: []model.Element{
				{ID: 3, Role: "btn", Title: "Bold"},
				{ID: 4, Role: "chk", Title: "Highlight"},
			}},
			{ID: 5, Role: "group", Title: "Page", Children: []model.Element{
				{ID: 6, Role: "btn", Title: "Bold"},
				{ID: 7, Role: "txt", Title: "Body"},
			}},
		}},
	}
}

type stubReader struct {
	elements []model.Element
	err      error
	paths    []string
}

func (r *stubReader) ReadElements(opts platform.ReadOptions) ([]model.Element, error) {
	r.paths = append(r.paths, opts.Path)
	return r.elements, r.err
}

func dims(pairs ...any) []combo.Dimension {
	var out []combo.Dimension
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, combo.Dimension{Name: pairs[i].(string), Values: pairs[i+1].([]any)})
	}
	return out
}

func TestRun_AllPass(t *testing.T) {
	s := &Suite{
		Name:       "toolbar",
		Tree:       "notes.yaml",
		Dimensions: dims("label", []any{"Bold", "Highlight"}),
		Checks: []Check{
			// chk is a sub-role of btn, so both labels resolve to a button.
			{Find: "btn", Text: "${label}", Within: "toolbar", Expect: ExpectCount, Count: 1},
		},
	}
	reader := &stubReader{elements: buildNotesTree()}

	report, err := Run(context.Background(), s, reader, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.yaml"}, reader.paths)
	assert.True(t, report.OK)
	assert.Equal(t, 2, report.Combinations)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Passed)
	require.Len(t, report.Results, 2)
	assert.Equal(t, []int{3}, report.Results[0].Matches)
	assert.Equal(t, []int{4}, report.Results[1].Matches)
	assert.Equal(t, map[string]any{"label": "Highlight"}, report.Results[1].Params)
	assert.Equal(t, `btn "Highlight" within toolbar`, report.Results[1].Check)
}

func TestRun_OdometerOrder(t *testing.T) {
	s := &Suite{
		Dimensions: dims("kind", []any{"btn", "chk"}, "label", []any{"Bold", "Highlight"}),
		Checks:     []Check{{Find: "${kind}", Text: "${label}"}},
	}

	report, err := RunOn(context.Background(), s, buildNotesTree(), Options{})
	require.NoError(t, err)
	require.Len(t, report.Results, 4)

	var got [][2]any
	for _, r := range report.Results {
		got = append(got, [2]any{r.Params["kind"], r.Params["label"]})
	}
	assert.Equal(t, [][2]any{
		{"btn", "Bold"}, {"btn", "Highlight"},
		{"chk", "Bold"}, {"chk", "Highlight"},
	}, got)

	// btn/Bold matches both Bold buttons; chk/Bold matches nothing.
	assert.Equal(t, []int{3, 6}, report.Results[0].Matches)
	assert.True(t, report.Results[1].OK)
	assert.False(t, report.Results[2].OK)
	assert.Equal(t, "no matching element", report.Results[2].Error)
	assert.True(t, report.Results[3].OK)

	assert.False(t, report.OK)
	assert.Equal(t, 3, report.Passed)
	assert.Equal(t, 1, report.Failed)
}

func TestRun_Expectations(t *testing.T) {
	s := &Suite{Dimensions: []combo.Dimension{}, Checks: []Check{
		{Find: "menu", Expect: ExpectGone},
		{Find: "btn", Expect: ExpectGone},
		{Find: "btn", Text: "bold", Expect: ExpectCount, Count: 2},
		{Find: "btn", Within: "window", Expect: ExpectCount, Count: 5},
		{Text: "body"},
	}}

	report, err := RunOn(context.Background(), s, buildNotesTree(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Combinations, "zero dimensions run once")
	require.Len(t, report.Results, 5)

	assert.True(t, report.Results[0].OK)
	assert.Empty(t, report.Results[0].Matches)
	assert.False(t, report.Results[1].OK)
	assert.Equal(t, "expected no match, found 3", report.Results[1].Error)
	assert.True(t, report.Results[2].OK)
	assert.False(t, report.Results[3].OK)
	assert.Equal(t, "expected 5 matches, found 3", report.Results[3].Error)
	assert.Equal(t, []int{7}, report.Results[4].Matches)
	assert.Nil(t, report.Results[0].Params)
}

func TestRun_EmptyDimensionRunsNothing(t *testing.T) {
	s := &Suite{
		Dimensions: dims("kind", []any{"btn"}, "label", []any{}),
		Checks:     []Check{{Find: "${kind}"}},
	}
	report, err := RunOn(context.Background(), s, buildNotesTree(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Combinations)
	assert.Empty(t, report.Results)
	assert.True(t, report.OK)
}

func TestRun_UnknownPlaceholder(t *testing.T) {
	s := &Suite{
		Dimensions: dims("kind", []any{"btn"}),
		Checks:     []Check{{Find: "${kind}", Text: "${label}", Within: "${area}"}},
	}
	report, err := RunOn(context.Background(), s, buildNotesTree(), Options{})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].OK)
	assert.Equal(t, "unknown dimension(s): area, label", report.Results[0].Error)
}

func TestRun_StopOnError(t *testing.T) {
	s := &Suite{
		Dimensions: dims("kind", []any{"menu", "btn", "chk"}),
		Checks:     []Check{{Find: "${kind}"}},
	}

	report, err := RunOn(context.Background(), s, buildNotesTree(), Options{StopOnError: true})
	require.NoError(t, err)
	assert.True(t, report.Stopped)
	assert.Equal(t, 1, report.Combinations)
	assert.Equal(t, 1, report.Failed)

	s.StopOnError = true
	report, err = RunOn(context.Background(), s, buildNotesTree(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Combinations)

	s.StopOnError = false
	report, err = RunOn(context.Background(), s, buildNotesTree(), Options{})
	require.NoError(t, err)
	assert.False(t, report.Stopped)
	assert.Equal(t, 3, report.Combinations)
}

func TestRun_Limit(t *testing.T) {
	s := &Suite{
		Dimensions: dims("a", []any{1, 2, 3}, "b", []any{1, 2}),
		Checks:     []Check{{Find: "btn"}},
	}
	report, err := RunOn(context.Background(), s, buildNotesTree(), Options{Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Combinations)
	assert.True(t, report.Stopped)
	assert.Equal(t, map[string]any{"a": 2, "b": 2}, report.Results[3].Params)
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	s := &Suite{
		Dimensions: dims("kind", []any{"btn", "chk", "menu", "txt"}, "label", []any{"Bold", "Highlight", "Body"}),
		Checks: []Check{
			{Find: "${kind}", Text: "${label}"},
			{Find: "${kind}", Within: "toolbar", Expect: ExpectGone},
		},
	}

	seq, err := RunOn(context.Background(), s, buildNotesTree(), Options{})
	require.NoError(t, err)
	for _, workers := range []int{2, 5, 64} {
		par, err := RunOn(context.Background(), s, buildNotesTree(), Options{Parallel: workers})
		require.NoError(t, err)
		par.RunID = seq.RunID
		assert.Equal(t, seq, par, "workers=%d", workers)
	}
}

func TestRun_ParallelStopOnErrorAndLimit(t *testing.T) {
	s := &Suite{
		Dimensions: dims("kind", []any{"btn", "menu", "chk", "txt"}),
		Checks:     []Check{{Find: "${kind}"}},
	}

	report, err := RunOn(context.Background(), s, buildNotesTree(), Options{Parallel: 4, StopOnError: true})
	require.NoError(t, err)
	assert.True(t, report.Stopped)
	assert.Equal(t, 2, report.Combinations, "cases after the first failure are dropped")
	assert.Len(t, report.Results, 2)

	report, err = RunOn(context.Background(), s, buildNotesTree(), Options{Parallel: 3, Limit: 2})
	require.NoError(t, err)
	assert.True(t, report.Stopped)
	assert.Equal(t, 2, report.Combinations)
}

func TestRun_RunIDIsUnique(t *testing.T) {
	s := &Suite{Dimensions: []combo.Dimension{}, Checks: []Check{{Find: "btn"}}}
	a, err := RunOn(context.Background(), s, buildNotesTree(), Options{})
	require.NoError(t, err)
	b, err := RunOn(context.Background(), s, buildNotesTree(), Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Suite{
		Dimensions: dims("a", []any{1, 2}),
		Checks:     []Check{{Find: "btn"}},
	}
	report, err := RunOn(ctx, s, buildNotesTree(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, report.Stopped)
	assert.Empty(t, report.Results)
}

func TestRun_NilDimensionsRejected(t *testing.T) {
	s := &Suite{Checks: []Check{{Find: "btn"}}}
	report, err := RunOn(context.Background(), s, buildNotesTree(), Options{})
	assert.ErrorIs(t, err, combo.ErrInvalidArgument)
	assert.Zero(t, report.Combinations)
	assert.ErrorIs(t, s.Validate(), combo.ErrInvalidArgument)
}

func TestRun_ReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run(context.Background(), &Suite{Dimensions: []combo.Dimension{}, Checks: []Check{{Find: "btn"}}}, &stubReader{err: boom}, Options{})
	assert.ErrorIs(t, err, boom)
}

func TestRun_CustomTaxonomyAndLogging(t *testing.T) {
	var buf bytes.Buffer
	tax := model.DefaultTaxonomy.With(map[string]string{"txt": "control"})
	s := &Suite{Name: "custom", Dimensions: []combo.Dimension{}, Checks: []Check{{Find: "control", Expect: ExpectCount, Count: 4}}}

	report, err := RunOn(context.Background(), s, buildNotesTree(), Options{
		Taxonomy: tax,
		Logger:   logging.NewWithWriter(&buf, "info"),
	})
	require.NoError(t, err)
	assert.True(t, report.OK, "three buttons plus the re-parented text: %+v", report.Results)
	assert.Contains(t, buf.String(), "run finished")
}

func TestSearch_NoConstraints(t *testing.T) {
	root := model.NewForest(buildNotesTree())
	matches := Search(root, model.DefaultTaxonomy, Check{})
	assert.Len(t, matches, 7)
}

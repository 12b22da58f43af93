package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/desktop-matrix/internal/combo"
	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/output"
	"github.com/mj1618/desktop-matrix/internal/platform"
	"github.com/mj1618/desktop-matrix/internal/suite"
)

// FindResult is returned by the find tool.
type FindResult struct {
	Source  string              `yaml:"source"  json:"source"`
	Count   int                 `yaml:"count"   json:"count"`
	Matches []model.FlatElement `yaml:"matches" json:"matches"`
}

// AncestorResult is returned by the ancestor tool.
type AncestorResult struct {
	Source   string             `yaml:"source"             json:"source"`
	ID       int                `yaml:"id"                 json:"id"`
	Found    bool               `yaml:"found"              json:"found"`
	Ancestor *model.FlatElement `yaml:"ancestor,omitempty" json:"ancestor,omitempty"`
}

// MatrixResult is returned by the matrix tool.
type MatrixResult struct {
	Dimensions   []string         `yaml:"dimensions,flow" json:"dimensions"`
	Count        int              `yaml:"count"           json:"count"`
	Combinations []map[string]any `yaml:"combinations"    json:"combinations"`
}

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v any) string {
	text, err := output.Marshal(output.FormatYAML, v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return text
}

// readTree loads a tree through the cache. The provider mutex is held for
// the read only.
func (s *Server) readTree(opts platform.ReadOptions) ([]model.Element, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if s.provider.Reader == nil {
		return nil, fmt.Errorf("no tree reader configured: %w", platform.ErrUnsupported)
	}
	return s.cache.ReadElements(s.provider.Reader, opts)
}

func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	s.log.Debug().Str("tool", tool).Err(err).Msg("tool failed")
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) handleRead(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "")
	if path == "" {
		return s.toolError("read", fmt.Errorf("path is required")), nil
	}

	opts := platform.ReadOptions{
		Path:  path,
		Depth: intParam(params, "depth", 0),
		Roles: splitList(stringParam(params, "roles", "")),
		Prune: boolParam(params, "prune", false),
	}
	if bbox := stringParam(params, "bbox", ""); bbox != "" {
		b, err := platform.ParseBBox(bbox)
		if err != nil {
			return s.toolError("read", err), nil
		}
		opts.BBox = b
	}

	elements, err := s.readTree(opts)
	if err != nil {
		return s.toolError("read", err), nil
	}

	ts := time.Now().Unix()
	if boolParam(params, "flat", false) {
		return mcp.NewToolResultText(resultToText(output.ReadFlatResult{
			Source:   path,
			TS:       ts,
			Elements: model.FlattenElements(elements),
		})), nil
	}
	return mcp.NewToolResultText(resultToText(output.ReadResult{Source: path, TS: ts, Elements: elements})), nil
}

func (s *Server) handleFind(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "")
	if path == "" {
		return s.toolError("find", fmt.Errorf("path is required")), nil
	}

	elements, err := s.readTree(platform.ReadOptions{Path: path})
	if err != nil {
		return s.toolError("find", err), nil
	}

	root := model.NewForest(elements)
	if scopeID := intParam(params, "scope-id", 0); scopeID > 0 {
		root = root.ByID(scopeID)
		if root == nil {
			return s.toolError("find", fmt.Errorf("scope element with id %d not found", scopeID)), nil
		}
	}

	matches := suite.Search(root, s.taxonomy, suite.Check{
		Find:   stringParam(params, "type", ""),
		Text:   stringParam(params, "text", ""),
		Within: stringParam(params, "within", ""),
	})
	return mcp.NewToolResultText(resultToText(FindResult{
		Source:  path,
		Count:   len(matches),
		Matches: model.FlattenNodes(matches),
	})), nil
}

func (s *Server) handleAncestor(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "")
	id := intParam(params, "id", 0)
	role := stringParam(params, "type", "")
	if path == "" || id <= 0 || role == "" {
		return s.toolError("ancestor", fmt.Errorf("path, id and type are required")), nil
	}

	elements, err := s.readTree(platform.ReadOptions{Path: path})
	if err != nil {
		return s.toolError("ancestor", err), nil
	}

	start := model.NewForest(elements).ByID(id)
	if start == nil {
		return s.toolError("ancestor", fmt.Errorf("element with id %d not found", id)), nil
	}

	result := AncestorResult{Source: path, ID: id}
	if anc := start.Closest(s.taxonomy, role); anc != nil {
		flat := model.Flatten(anc)
		result.Found = true
		result.Ancestor = &flat
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleMatrix(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	limit := intParam(params, "limit", 0)

	var (
		dims []combo.Dimension
		err  error
	)
	if text := stringParam(params, "matrix", ""); text != "" {
		dims, err = combo.LoadMatrix(strings.NewReader(text))
	} else if path := stringParam(params, "path", ""); path != "" {
		dims, err = combo.LoadMatrixFile(path)
	} else {
		err = fmt.Errorf("matrix or path is required")
	}
	if err != nil {
		return s.toolError("matrix", err), nil
	}

	result, err := Enumerate(dims, limit)
	if err != nil {
		return s.toolError("matrix", err), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

// Enumerate lists up to limit combinations of dims (0 = all).
func Enumerate(dims []combo.Dimension, limit int) (MatrixResult, error) {
	engine, err := combo.FromDimensions(dims)
	if err != nil {
		return MatrixResult{}, err
	}
	result := MatrixResult{Dimensions: engine.Names(), Combinations: []map[string]any{}}
	for {
		if limit > 0 && len(result.Combinations) >= limit {
			break
		}
		combination := make(map[string]any, len(dims))
		if !engine.Next(combination) {
			break
		}
		result.Combinations = append(result.Combinations, combination)
	}
	result.Count = len(result.Combinations)
	return result, nil
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "")
	if path == "" {
		return s.toolError("run", fmt.Errorf("path is required")), nil
	}

	st, err := suite.Load(path)
	if err != nil {
		return s.toolError("run", err), nil
	}
	elements, err := s.readTree(platform.ReadOptions{Path: st.Tree})
	if err != nil {
		return s.toolError("run", fmt.Errorf("read tree: %w", err)), nil
	}

	report, err := suite.RunOn(ctx, st, elements, suite.Options{
		StopOnError: boolParam(params, "stop-on-error", false),
		Limit:       intParam(params, "limit", 0),
		Taxonomy:    s.taxonomy,
		Logger:      s.log,
	})
	if err != nil {
		return s.toolError("run", err), nil
	}
	if !report.OK {
		return mcp.NewToolResultError(resultToText(report)), nil
	}
	return mcp.NewToolResultText(resultToText(report)), nil
}

func (s *Server) handleDiff(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	before := stringParam(params, "before", "")
	after := stringParam(params, "after", "")
	if before == "" || after == "" {
		return s.toolError("diff", fmt.Errorf("before and after are required")), nil
	}
	role := stringParam(params, "type", "")

	prev, err := s.diffElements(before, role)
	if err != nil {
		return s.toolError("diff", err), nil
	}
	curr, err := s.diffElements(after, role)
	if err != nil {
		return s.toolError("diff", err), nil
	}
	return mcp.NewToolResultText(resultToText(model.DiffTrees(prev, curr))), nil
}

func (s *Server) diffElements(path, role string) ([]model.FlatElement, error) {
	elements, err := s.readTree(platform.ReadOptions{Path: path})
	if err != nil {
		return nil, err
	}
	if role == "" {
		return model.FlattenElements(elements), nil
	}
	return model.FlattenNodes(model.NewForest(elements).Find(s.taxonomy, role)), nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/platform"
	"github.com/mj1618/desktop-matrix/internal/suite"
	"github.com/spf13/cobra"
)

// newReader returns the configured tree reader. A fixture reader picks up
// roles added in the config file.
func newReader() (platform.Reader, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	if provider.Reader == nil {
		return nil, fmt.Errorf("no tree reader configured: %w", platform.ErrUnsupported)
	}
	if fr, ok := provider.Reader.(*platform.FileReader); ok {
		fr.Taxonomy = taxonomy()
	}
	return provider.Reader, nil
}

// loadForest reads the whole tree at path and links it for searching.
func loadForest(path string) (*model.Node, error) {
	reader, err := newReader()
	if err != nil {
		return nil, err
	}
	elements, err := reader.ReadElements(platform.ReadOptions{Path: path})
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", path).Int("roots", len(elements)).Msg("tree loaded")
	return model.NewForest(elements), nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// addSearchFlags adds the --type, --text, --within, --exact and --scope-id
// flags shared by commands that search a tree.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "Role to search for; sub-roles match too (e.g. \"btn\" finds \"chk\")")
	cmd.Flags().String("text", "", "Case-insensitive substring of title/value/description")
	cmd.Flags().String("within", "", "Only matches that have an ancestor with this role")
	cmd.Flags().Bool("exact", false, "Require exact match on title/value/description (default: substring)")
	cmd.Flags().Int("scope-id", 0, "Limit search to descendants of this element ID")
}

// searchFlags is the parsed form of addSearchFlags.
type searchFlags struct {
	check   suite.Check
	exact   bool
	scopeID int
}

func getSearchFlags(cmd *cobra.Command) searchFlags {
	var f searchFlags
	f.check.Find, _ = cmd.Flags().GetString("type")
	f.check.Text, _ = cmd.Flags().GetString("text")
	f.check.Within, _ = cmd.Flags().GetString("within")
	f.exact, _ = cmd.Flags().GetBool("exact")
	f.scopeID, _ = cmd.Flags().GetInt("scope-id")
	return f
}

// search runs f against root, honoring scope and exact matching.
func search(root *model.Node, f searchFlags) ([]*model.Node, error) {
	if f.scopeID > 0 {
		scope := root.ByID(f.scopeID)
		if scope == nil {
			return nil, fmt.Errorf("scope element with id %d not found", f.scopeID)
		}
		root = scope
	}
	matches := suite.Search(root, taxonomy(), f.check)
	if !f.exact || f.check.Text == "" {
		return matches, nil
	}
	textLower := strings.ToLower(f.check.Text)
	exact := matches[:0]
	for _, n := range matches {
		if exactTextMatch(*n.Element, textLower) {
			exact = append(exact, n)
		}
	}
	return exact, nil
}

func exactTextMatch(el model.Element, textLower string) bool {
	return exactFieldMatch(el.Title, textLower) ||
		exactFieldMatch(el.Value, textLower) ||
		exactFieldMatch(el.Description, textLower)
}

// exactFieldMatch returns true if field matches text case-insensitively,
// either directly or after stripping a trailing parenthetical suffix like " (⌘Enter)".
func exactFieldMatch(field, textLower string) bool {
	if strings.EqualFold(field, textLower) {
		return true
	}
	if idx := strings.LastIndex(field, "("); idx > 0 && strings.HasSuffix(strings.TrimRight(field, "\u202c"), ")") {
		stripped := strings.TrimRight(field[:idx], " \u202a")
		return strings.EqualFold(stripped, textLower)
	}
	return false
}

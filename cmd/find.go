package cmd

import (
	"fmt"

	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/output"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <snapshot>",
	Short: "Find elements of a role, sub-roles included",
	Long: `Search a UI element tree for every element whose role is the given role or
one of its sub-roles, in document order. A check box is a toggle, and a
toggle is a button, so --type btn also finds check boxes.

Examples:
  desktop-matrix find notes.yaml --type btn
  desktop-matrix find notes.yaml --type btn --text bold --within toolbar
  desktop-matrix find notes.yaml --text "Save" --exact`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	addSearchFlags(findCmd)
	findCmd.Flags().Int("limit", 0, "Max matching elements to return (0 = all)")
}

// findResult is the top-level output of the find command.
type findResult struct {
	OK      bool                `yaml:"ok"               json:"ok"`
	Action  string              `yaml:"action"           json:"action"`
	Type    string              `yaml:"type,omitempty"   json:"type,omitempty"`
	Text    string              `yaml:"text,omitempty"   json:"text,omitempty"`
	Within  string              `yaml:"within,omitempty" json:"within,omitempty"`
	Total   int                 `yaml:"total"            json:"total"`
	Matches []model.FlatElement `yaml:"matches"          json:"matches"`
}

func runFind(cmd *cobra.Command, args []string) error {
	f := getSearchFlags(cmd)
	limit, _ := cmd.Flags().GetInt("limit")
	if f.check.Find == "" && f.check.Text == "" {
		return fmt.Errorf("--type or --text is required")
	}

	root, err := loadForest(args[0])
	if err != nil {
		return err
	}
	matches, err := search(root, f)
	if err != nil {
		return err
	}

	total := len(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return output.Print(findResult{
		OK:      true,
		Action:  "find",
		Type:    f.check.Find,
		Text:    f.check.Text,
		Within:  f.check.Within,
		Total:   total,
		Matches: model.FlattenNodes(matches),
	})
}

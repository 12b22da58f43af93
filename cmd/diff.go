package cmd

import (
	"fmt"

	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/output"
	"github.com/mj1618/desktop-matrix/internal/tree"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <before> <after>",
	Short: "Compare two snapshots of a UI element tree",
	Long: `Compare two tree snapshots and report elements that were added, removed, or
changed. Elements are matched by role, title, description, and path rather
than by ID, so an insertion early in the tree does not shift every match.

With --type, only elements of that role (sub-roles included) are compared.
Exits non-zero with --fail-on-change when the trees differ.

Examples:
  desktop-matrix diff before.yaml after.yaml
  desktop-matrix diff before.yaml after.yaml --type btn --fail-on-change`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().String("type", "", "Only compare elements of this role, sub-roles included")
	diffCmd.Flags().Bool("fail-on-change", false, "Return an error when the trees differ")
}

// diffResult is the top-level output of the diff command.
type diffResult struct {
	OK             bool   `yaml:"ok"             json:"ok"`
	Action         string `yaml:"action"         json:"action"`
	Type           string `yaml:"type,omitempty" json:"type,omitempty"`
	model.TreeDiff `yaml:",inline"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	role, _ := cmd.Flags().GetString("type")
	failOnChange, _ := cmd.Flags().GetBool("fail-on-change")

	before, err := diffElements(args[0], role)
	if err != nil {
		return err
	}
	after, err := diffElements(args[1], role)
	if err != nil {
		return err
	}

	diff := model.DiffTrees(before, after)
	logger.Debug().
		Int("added", len(diff.Added)).
		Int("removed", len(diff.Removed)).
		Int("changed", len(diff.Changed)).
		Msg("trees compared")

	if err := output.Print(diffResult{
		OK:       diff.Empty(),
		Action:   "diff",
		Type:     role,
		TreeDiff: diff,
	}); err != nil {
		return err
	}
	if failOnChange && !diff.Empty() {
		return fmt.Errorf("trees differ: %d added, %d removed, %d changed",
			len(diff.Added), len(diff.Removed), len(diff.Changed))
	}
	return nil
}

// diffElements loads the tree at path and flattens it, keeping only
// elements of role when one is given.
func diffElements(path, role string) ([]model.FlatElement, error) {
	root, err := loadForest(path)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return model.FlattenNodes(tree.FindDescendants[*model.Node](root)), nil
	}
	return model.FlattenNodes(root.Find(taxonomy(), role)), nil
}

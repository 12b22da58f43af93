package cmd

import (
	"fmt"

	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/output"
	"github.com/spf13/cobra"
)

var ancestorCmd = &cobra.Command{
	Use:   "ancestor <snapshot>",
	Short: "Find the nearest enclosing element of a role",
	Long: `Walk up from an element to the closest ancestor whose role is the given role
or one of its sub-roles. The element itself is never its own ancestor.

Examples:
  desktop-matrix ancestor notes.yaml --id 8 --type group
  desktop-matrix ancestor notes.yaml --id 4 --type window`,
	Args: cobra.ExactArgs(1),
	RunE: runAncestor,
}

func init() {
	rootCmd.AddCommand(ancestorCmd)
	ancestorCmd.Flags().Int("id", 0, "Starting element ID")
	ancestorCmd.Flags().String("type", "", "Ancestor role; sub-roles match too")
	ancestorCmd.MarkFlagRequired("id")
	ancestorCmd.MarkFlagRequired("type")
}

// ancestorResult is the top-level output of the ancestor command.
type ancestorResult struct {
	OK       bool               `yaml:"ok"                 json:"ok"`
	Action   string             `yaml:"action"             json:"action"`
	ID       int                `yaml:"id"                 json:"id"`
	Type     string             `yaml:"type"               json:"type"`
	Element  model.FlatElement  `yaml:"element"            json:"element"`
	Ancestor *model.FlatElement `yaml:"ancestor,omitempty" json:"ancestor,omitempty"`
}

func runAncestor(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("id")
	role, _ := cmd.Flags().GetString("type")

	root, err := loadForest(args[0])
	if err != nil {
		return err
	}
	start := root.ByID(id)
	if start == nil {
		return fmt.Errorf("element with id %d not found", id)
	}

	result := ancestorResult{
		Action:  "ancestor",
		ID:      id,
		Type:    role,
		Element: model.Flatten(start),
	}
	if anc := start.Closest(taxonomy(), role); anc != nil {
		flat := model.Flatten(anc)
		result.OK = true
		result.Ancestor = &flat
	}
	return output.Print(result)
}

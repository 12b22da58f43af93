package cmd

import (
	"time"

	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/output"
	"github.com/mj1618/desktop-matrix/internal/platform"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <snapshot>",
	Short: "Read a UI element tree snapshot",
	Long: `Read a captured UI element tree (YAML or JSON) and print it with element IDs
assigned in document order. Raw accessibility roles (AXButton, ...) are
mapped to compact codes.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().Int("depth", 0, "Max depth to traverse (0 = unlimited)")
	readCmd.Flags().String("roles", "", "Comma-separated roles to include; sub-roles match too (e.g. \"btn,input\")")
	readCmd.Flags().String("bbox", "", "Only include elements within bounding box (x,y,w,h)")
	readCmd.Flags().String("text", "", "Only include elements whose title/value/description contains this text")
	readCmd.Flags().Bool("flat", false, "Flatten the tree into a list with path breadcrumbs")
	readCmd.Flags().Bool("prune", false, "Remove anonymous group/other elements with no title/value/description")
}

func runRead(cmd *cobra.Command, args []string) error {
	depth, _ := cmd.Flags().GetInt("depth")
	rolesStr, _ := cmd.Flags().GetString("roles")
	bboxStr, _ := cmd.Flags().GetString("bbox")
	text, _ := cmd.Flags().GetString("text")
	flat, _ := cmd.Flags().GetBool("flat")
	prune, _ := cmd.Flags().GetBool("prune")

	opts := platform.ReadOptions{
		Path:  args[0],
		Depth: depth,
		Roles: splitList(rolesStr),
		Prune: prune,
	}
	if bboxStr != "" {
		bbox, err := platform.ParseBBox(bboxStr)
		if err != nil {
			return err
		}
		opts.BBox = bbox
	}

	reader, err := newReader()
	if err != nil {
		return err
	}
	elements, err := reader.ReadElements(opts)
	if err != nil {
		return err
	}
	if text != "" {
		elements = model.FilterByText(elements, text)
	}

	ts := time.Now().Unix()
	if flat {
		return output.Print(output.ReadFlatResult{
			Source:   opts.Path,
			TS:       ts,
			Elements: model.FlattenElements(elements),
		})
	}
	return output.Print(output.ReadResult{Source: opts.Path, TS: ts, Elements: elements})
}

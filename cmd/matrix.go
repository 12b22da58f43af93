package cmd

import (
	"os"

	"github.com/mj1618/desktop-matrix/internal/combo"
	"github.com/mj1618/desktop-matrix/internal/output"
	"github.com/spf13/cobra"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix <matrix.yaml | ->",
	Short: "Enumerate every combination of a test matrix",
	Long: `Print every combination of a test matrix. The last dimension varies fastest,
like nested loops written in dimension order. A matrix is either a mapping of
name to values or a list of {name, values} entries; "-" reads stdin.

Examples:
  desktop-matrix matrix browsers.yaml
  echo '{os: [mac, win], size: [s, m, l]}' | desktop-matrix matrix - --limit 4`,
	Args: cobra.ExactArgs(1),
	RunE: runMatrix,
}

func init() {
	rootCmd.AddCommand(matrixCmd)
	matrixCmd.Flags().Int("limit", 0, "Max combinations to print (0 = all)")
}

// matrixResult is the top-level output of the matrix command.
type matrixResult struct {
	OK           bool             `yaml:"ok"              json:"ok"`
	Action       string           `yaml:"action"          json:"action"`
	Dimensions   []string         `yaml:"dimensions,flow" json:"dimensions"`
	Total        int              `yaml:"total"           json:"total"`
	Combinations []map[string]any `yaml:"combinations"    json:"combinations"`
}

func runMatrix(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	var (
		dims []combo.Dimension
		err  error
	)
	if args[0] == "-" {
		dims, err = combo.LoadMatrix(os.Stdin)
	} else {
		dims, err = combo.LoadMatrixFile(args[0])
	}
	if err != nil {
		return err
	}
	result, err := enumerateMatrix(dims, limit)
	if err != nil {
		return err
	}
	return output.Print(result)
}

func enumerateMatrix(dims []combo.Dimension, limit int) (matrixResult, error) {
	engine, err := combo.FromDimensions(dims)
	if err != nil {
		return matrixResult{}, err
	}
	result := matrixResult{
		OK:           true,
		Action:       "matrix",
		Dimensions:   engine.Names(),
		Total:        engine.Count(),
		Combinations: []map[string]any{},
	}
	for i, combination := range engine.All() {
		if limit > 0 && i >= limit {
			break
		}
		result.Combinations = append(result.Combinations, combination)
	}
	return result, nil
}

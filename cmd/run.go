package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mj1618/desktop-matrix/internal/output"
	"github.com/mj1618/desktop-matrix/internal/suite"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <suite.yaml>",
	Short: "Run a data-driven suite against a tree snapshot",
	Long: `Run every check of a suite once per combination of its matrix. Checks may
reference dimensions as ${name} in find, text, and within.

Suite format:
  name: toolbar controls
  tree: notes.yaml            # relative to the suite file
  stop_on_error: false
  matrix:
    kind: [btn, chk]
    label: [Bold, Highlight]
  checks:
    - find: ${kind}
      text: ${label}
      within: toolbar
      expect: exists          # exists (default), gone, or count
    - find: menu
      expect: count
      count: 0

The command exits non-zero when any check fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuite,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("stop-on-error", false, "Stop at the first failing combination")
	runCmd.Flags().Int("limit", 0, "Max combinations to run (0 = all)")
	runCmd.Flags().Int("parallel", 1, "Combinations to evaluate concurrently")
}

func runSuite(cmd *cobra.Command, args []string) error {
	s, err := suite.Load(args[0])
	if err != nil {
		return err
	}
	reader, err := newReader()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := suite.Run(ctx, s, reader, suite.Options{
		StopOnError: cfg.Suite.StopOnError,
		Limit:       cfg.Suite.Limit,
		Parallel:    cfg.Suite.Parallel,
		Taxonomy:    taxonomy(),
		Logger:      logger,
	})
	if err != nil && report.Total == 0 {
		return err
	}
	if printErr := output.Print(report); printErr != nil {
		return printErr
	}
	if err != nil {
		return err
	}
	if !report.OK {
		return fmt.Errorf("%d of %d checks failed", report.Failed, report.Total)
	}
	return nil
}

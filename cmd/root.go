package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/desktop-matrix/internal/config"
	"github.com/mj1618/desktop-matrix/internal/logging"
	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/output"
	"github.com/mj1618/desktop-matrix/internal/version"
	"github.com/spf13/cobra"
)

var (
	// cfg is loaded by the root command before any subcommand runs.
	cfg    = &config.Config{Format: "yaml", LogLevel: "info"}
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "desktop-matrix",
	Short: "Search UI element trees and run data-driven checks against them",
	Long: `desktop-matrix reads captured UI element trees, finds controls by role
(sub-roles included, so "btn" also finds check boxes and radio buttons), and
runs data-driven suites that evaluate checks for every combination of a test
matrix.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./config.yaml or ~/.config/desktop-matrix/config.yaml)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = setup
}

// setup loads configuration and applies it to the output and logging
// packages. Explicit flags beat environment variables, which beat the
// config file.
func setup(cmd *cobra.Command, args []string) error {
	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	loaded, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	cfg = loaded

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	output.OutputFormat = format
	// JSON on a terminal is for humans.
	output.PrettyOutput = cfg.Pretty || (format == output.FormatJSON && !output.IsOutputPiped())

	logger = logging.New(cfg.LogLevel).With().Str("cmd", cmd.Name()).Logger()
	logger.Debug().Str("format", string(format)).Msg("configured")
	return nil
}

// taxonomy returns the default role taxonomy extended by configured roles.
func taxonomy() model.RoleTaxonomy {
	if len(cfg.Roles) == 0 {
		return model.DefaultTaxonomy
	}
	return model.DefaultTaxonomy.With(cfg.Roles)
}

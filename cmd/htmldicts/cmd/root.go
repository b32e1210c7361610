// Package cmd provides the CLI commands for htmldicts.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/setia/htmldicts/internal/config"
	herrors "github.com/setia/htmldicts/internal/errors"
	"github.com/setia/htmldicts/internal/logging"
	"github.com/setia/htmldicts/internal/output"
	"github.com/setia/htmldicts/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the htmldicts CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "htmldicts",
		Short: "Search Ossetian dictionaries across Latin and Cyrillic spellings",
		Long: `htmldicts searches an index of Ossetian dictionary entries.

A query is expanded into its Cyrillic or Latin transliteration and its
common alternative spellings. Every variant is searched, and the hits are
merged into one ranked list with at most a few entries per dictionary.

Build an index first:
  htmldicts index entries.jsonl

Then search in either script:
  htmldicts search tærqūs
  htmldicts search тæрхъус --context expanded`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("htmldicts version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.htmldicts/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newVariantsCmd())
	cmd.AddCommand(newTranslitCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging installs the slog default. The configured log file wins over
// stderr; --debug forces debug level and a log file.
func startLogging(_ *cobra.Command, _ []string) error {
	logCfg := logging.DefaultConfig()
	if cfg, err := loadConfig(); err == nil {
		logCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
		logCfg.MaxFiles = cfg.Logging.MaxFiles
		if cfg.Logging.File != "" {
			logCfg.FilePath = cfg.Logging.File
			logCfg.Level = cfg.Logging.Level
			logCfg.WriteToStderr = false
		}
	}
	if debugMode {
		dbg := logging.DebugConfig()
		dbg.MaxSizeMB = logCfg.MaxSizeMB
		dbg.MaxFiles = logCfg.MaxFiles
		if logCfg.FilePath != "" {
			dbg.FilePath = logCfg.FilePath
		}
		logCfg = dbg
	}

	cleanup, err := logging.Install(logCfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	loggingCleanup = cleanup

	if debugMode {
		slog.Debug("debug_logging_enabled",
			slog.String("log_file", logCfg.FilePath),
			slog.String("version", version.Version))
	}
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command and prints any error in CLI form, or as JSON
// when the failing command was run with --format json.
func Execute() error {
	c, err := NewRootCmd().ExecuteC()
	if err != nil {
		_, _ = fmt.Fprint(os.Stderr, formatError(c, err))
	}
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return err
}

func formatError(c *cobra.Command, err error) string {
	if c != nil {
		if f := c.Flags().Lookup("format"); f != nil && f.Value.String() == string(output.FormatJSON) {
			if data, jerr := herrors.FormatJSON(err); jerr == nil {
				return string(data) + "\n"
			}
		}
	}
	return herrors.FormatForCLI(err)
}

// loadConfig loads configuration for the working directory.
func loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		dir = ""
	}
	return config.Load(dir)
}

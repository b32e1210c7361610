package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/setia/htmldicts/internal/logging"
	"github.com/setia/htmldicts/internal/output"
)

func newLogsCmd() *cobra.Command {
	var (
		lines   int
		level   string
		pattern string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent debug log entries",
		Long: `Show the last entries of the htmldicts log file. Logs are written when
a command runs with --debug or when logging.file is configured.`,
		Example: `  htmldicts logs
  htmldicts logs -n 200 --level warn
  htmldicts logs --grep variant_query_failed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				if cfg, err := loadConfig(); err == nil {
					file = cfg.Logging.File
				}
			}
			path, err := logging.FindLogFile(file)
			if err != nil {
				return err
			}

			vc := logging.ViewerConfig{
				Level:   level,
				NoColor: !output.IsTTY(cmd.OutOrStdout()) || output.DetectNoColor(),
			}
			if pattern != "" {
				re, err := regexp.Compile(pattern)
				if err != nil {
					return fmt.Errorf("invalid --grep pattern: %w", err)
				}
				vc.Pattern = re
			}

			viewer := logging.NewViewer(vc, cmd.OutOrStdout())
			entries, err := viewer.Tail(path, lines)
			if err != nil {
				return err
			}
			viewer.Print(entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of log lines to read")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level: debug, info, warn, error")
	cmd.Flags().StringVar(&pattern, "grep", "", "Only show lines matching this regular expression")
	cmd.Flags().StringVar(&file, "file", "", "Log file (default from config or ~/.htmldicts/logs/htmldicts.log)")

	return cmd
}

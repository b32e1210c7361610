package cmd

import (
	"github.com/spf13/cobra"

	"github.com/setia/htmldicts/internal/output"
	"github.com/setia/htmldicts/internal/store"
)

type healthReport struct {
	Status  string `json:"status"`
	Path    string `json:"path"`
	Entries uint64 `json:"entries"`
}

func newHealthCmd() *cobra.Command {
	var indexFlag string
	var format string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the dictionary index is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := indexPath(cfg, indexFlag)
			idx, err := store.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = idx.Close() }()

			if err := idx.Health(cmd.Context()); err != nil {
				return err
			}
			count, err := idx.Count()
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			if f == output.FormatJSON {
				return out.JSON(healthReport{Status: "available", Path: path, Entries: count})
			}
			out.Successf("Index available: %d entries at %s", count, path)
			if count == 0 {
				out.Warning("The index is empty; rebuild it with: htmldicts index <entries.jsonl>")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&indexFlag, "index", "", "Index path (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")

	return cmd
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	herrors "github.com/setia/htmldicts/internal/errors"
	"github.com/setia/htmldicts/internal/output"
	"github.com/setia/htmldicts/internal/preflight"
	"github.com/setia/htmldicts/internal/store"
)

func newIndexCmd() *cobra.Command {
	var indexFlag string
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "index <entries.jsonl>",
		Short: "Build the dictionary index from JSON Lines entries",
		Long: `Build the dictionary index from a JSON Lines file with one entry per
line:

  {"id":"doc_1","term":"tærqūs","definition":"hare","source":"Abaev.html"}

Optional fields are expanded_context and full_context. The new index is
built beside the old one and swapped in when complete, so searches keep
working during a rebuild.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd.Context(), cmd, args[0], indexFlag, checkOnly)
		},
	}

	cmd.Flags().StringVar(&indexFlag, "index", "", "Index path (default from config)")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only run preflight checks, do not build")

	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, entriesPath, indexFlag string, checkOnly bool) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := indexPath(cfg, indexFlag)
	out := output.New(cmd.OutOrStdout())

	if err := runPreflight(ctx, cmd, entriesPath, path, checkOnly); err != nil || checkOnly {
		return err
	}

	lock := store.NewIndexLock(path)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	entries, err := store.LoadEntriesFile(entriesPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return herrors.ValidationError(herrors.ErrCodeInvalidInput,
			fmt.Sprintf("no entries found in %s", entriesPath))
	}

	building := path + ".building"
	if err := buildIndex(ctx, building, entries, out); err != nil {
		_ = os.RemoveAll(building)
		return err
	}

	if err := os.RemoveAll(path); err != nil {
		return herrors.New(herrors.ErrCodeIndexFailed, "failed to remove previous index", err)
	}
	if err := os.Rename(building, path); err != nil {
		return herrors.New(herrors.ErrCodeIndexFailed, "failed to move new index into place", err)
	}

	slog.Info("index_built",
		slog.String("path", path),
		slog.Int("entries", len(entries)),
		slog.Duration("duration", time.Since(start)))

	out.Successf("Indexed %d entries into %s", len(entries), path)
	return nil
}

// runPreflight fails early on a missing input, an unwritable index directory
// or too little disk space. Results are printed only for --check.
func runPreflight(ctx context.Context, cmd *cobra.Command, entriesPath, path string, verbose bool) error {
	checker := preflight.New(preflight.WithOutput(cmd.OutOrStdout()))
	results := checker.RunIndexChecks(ctx, entriesPath, path)
	if verbose {
		checker.PrintResults(results)
	}

	failed, ok := checker.FirstFailure(results)
	if !ok {
		return nil
	}
	slog.Warn("index_preflight_failed",
		slog.String("check", failed.Name),
		slog.String("message", failed.Message))

	code := herrors.ErrCodeIndexFailed
	if failed.Name == "entries_file" {
		code = herrors.ErrCodeFileNotFound
	}
	return herrors.New(code, fmt.Sprintf("preflight check %s failed: %s", failed.Name, failed.Message), nil)
}

func buildIndex(ctx context.Context, path string, entries []store.Entry, out *output.Writer) error {
	idx, err := store.Create(path)
	if err != nil {
		return err
	}

	for begin := 0; begin < len(entries); begin += store.DefaultBatchSize {
		end := min(begin+store.DefaultBatchSize, len(entries))
		if err := idx.Index(ctx, entries[begin:end]); err != nil {
			_ = idx.Close()
			return err
		}
		if out.UseColor() {
			out.Progress(end, len(entries), "entries")
		}
	}

	return idx.Close()
}

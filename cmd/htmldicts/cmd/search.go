package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/setia/htmldicts/internal/config"
	"github.com/setia/htmldicts/internal/output"
	"github.com/setia/htmldicts/internal/search"
	"github.com/setia/htmldicts/internal/store"
	"github.com/setia/htmldicts/internal/variants"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit          int
	limitPerSource int
	noTranslit     bool
	contextSize    string
	source         string
	format         string
	indexPath      string
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the dictionary index",
		Long: `Search the dictionary index in Latin or Cyrillic script.

The query is expanded into its transliteration and alternative spellings
unless --no-translit is given. Hits from every variant are merged, ranked
by score and limited per dictionary, or filtered to one dictionary with
--source.

Examples:
  htmldicts search tærqūs
  htmldicts search тæрхъус --limit 10 --limit-per-source 2
  htmldicts search don --source abaev --context full
  htmldicts search fyd --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (1-50, default from config)")
	cmd.Flags().IntVar(&opts.limitPerSource, "limit-per-source", 0, "Maximum results per dictionary (1-50, default from config)")
	cmd.Flags().BoolVar(&opts.noTranslit, "no-translit", false, "Search only the query as typed")
	cmd.Flags().StringVarP(&opts.contextSize, "context", "c", "", "Context size: default, expanded, full")
	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "Only show entries whose dictionary name contains this")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringVar(&opts.indexPath, "index", "", "Index path (default from config)")

	return cmd
}

// buildRequest applies flags over configured defaults.
func buildRequest(cmd *cobra.Command, cfg *config.Config, query string, opts searchOptions) search.Request {
	req := search.Request{
		Query:          strings.TrimSpace(query),
		Limit:          cfg.Search.Limit,
		LimitPerSource: cfg.Search.LimitPerSource,
		Transliterate:  cfg.Search.Transliteration,
		ContextSize:    search.ContextSize(cfg.Search.ContextSize),
		Source:         strings.TrimSpace(opts.source),
	}
	if cmd.Flags().Changed("limit") {
		req.Limit = opts.limit
	}
	if cmd.Flags().Changed("limit-per-source") {
		req.LimitPerSource = opts.limitPerSource
	}
	if opts.noTranslit {
		req.Transliterate = false
	}
	if cmd.Flags().Changed("context") {
		req.ContextSize = search.ContextSize(opts.contextSize)
	}
	if size, err := search.ParseContextSize(string(req.ContextSize)); err == nil {
		req.ContextSize = size
	}
	return req
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req := buildRequest(cmd, cfg, query, opts)
	if err := req.Validate(); err != nil {
		return err
	}

	idx, err := store.Open(indexPath(cfg, opts.indexPath))
	if err != nil {
		return err
	}
	defer func() { _ = idx.Close() }()

	searcher := newSearcher(cfg, idx)

	slog.Debug("search_started",
		slog.String("query", req.Query),
		slog.Int("limit", req.Limit),
		slog.Bool("transliterate", req.Transliterate))

	result, err := searcher.Search(ctx, req)
	if err != nil {
		return err
	}

	return output.New(cmd.OutOrStdout()).SearchResult(result, format)
}

func newSearcher(cfg *config.Config, backend search.Backend) *search.Searcher {
	opts := append(cfg.SearcherOptions(),
		search.WithExpander(newExpander(cfg)))
	return search.NewSearcher(backend, opts...)
}

func newExpander(cfg *config.Config) *variants.Expander {
	return variants.New(variants.WithCacheSize(cfg.Search.VariantCacheSize))
}

func indexPath(cfg *config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.Index.Path
}

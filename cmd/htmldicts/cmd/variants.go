package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	herrors "github.com/setia/htmldicts/internal/errors"
	"github.com/setia/htmldicts/internal/output"
)

func newVariantsCmd() *cobra.Command {
	var format string
	var spellingOnly bool

	cmd := &cobra.Command{
		Use:   "variants <word>",
		Short: "List the variants a search would query",
		Long: `List every variant searched for a word: the word itself, its
transliteration into the other script, and alternative spellings that
differ from it in one letter.

Examples:
  htmldicts variants tærqūs
  htmldicts variants тæрхъус --format json
  htmldicts variants dzæg --spelling-only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			word := strings.TrimSpace(args[0])
			if word == "" {
				return herrors.ValidationError(herrors.ErrCodeQueryEmpty, "word cannot be empty")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			expander := newExpander(cfg)

			list := expander.AllScriptVariants(word)
			if spellingOnly {
				list = expander.SpellingVariants(word)
			}
			return output.New(cmd.OutOrStdout()).Variants(word, list, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&spellingOnly, "spelling-only", false, "Only list one-letter spelling alternatives")

	return cmd
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	herrors "github.com/setia/htmldicts/internal/errors"
	"github.com/setia/htmldicts/internal/output"
	"github.com/setia/htmldicts/internal/translit"
)

func newTranslitCmd() *cobra.Command {
	var to string
	var format string

	cmd := &cobra.Command{
		Use:   "translit <text>",
		Short: "Transliterate Ossetian text between Latin and Cyrillic",
		Long: `Transliterate Ossetian text. By default the direction is detected:
text containing Cyrillic-only letters is converted to Latin, anything
else to Cyrillic. Characters without a mapping are kept as they are.

Examples:
  htmldicts translit dzhaba
  htmldicts translit Хъæд
  htmldicts translit --to latin тæрхъус`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")

			t := translit.New()
			dir, err := parseDirection(to, t, text)
			if err != nil {
				return err
			}
			return output.New(cmd.OutOrStdout()).Conversion(text, dir, t.ConvertReport(text, dir), f)
		},
	}

	cmd.Flags().StringVar(&to, "to", "auto", "Target script: auto, cyrillic, latin")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func parseDirection(to string, t *translit.Transliterator, text string) (translit.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(to)) {
	case "", "auto":
		return t.Detect(text), nil
	case "cyrillic", "cyr":
		return translit.LatinToCyrillic, nil
	case "latin", "lat":
		return translit.CyrillicToLatin, nil
	default:
		return 0, herrors.ValidationError(herrors.ErrCodeInvalidInput,
			fmt.Sprintf("--to must be auto, cyrillic or latin, got %q", to))
	}
}

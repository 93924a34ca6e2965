package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scribe/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	var asJSON bool
	var showKeywords bool

	cmd := &cobra.Command{
		Use:         "languages",
		Short:       "List languages the keyword classifier can detect",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := language.Supported()

			if asJSON {
				type entry struct {
					Code     string   `json:"code"`
					Name     string   `json:"name"`
					Keywords []string `json:"keywords"`
				}
				entries := make([]entry, 0, len(codes))
				for _, code := range codes {
					entries = append(entries, entry{
						Code:     code,
						Name:     language.DisplayName(code),
						Keywords: language.Keywords(code),
					})
				}
				return writeJSON(cmd, entries)
			}

			rows := make([][]string, 0, len(codes))
			for _, code := range codes {
				keywords := language.Keywords(code)
				row := []string{code, language.DisplayName(code), strconv.Itoa(len(keywords))}
				rows = append(rows, row)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Code", "Language", "Keywords"}, rows, 2))

			if showKeywords {
				out := cmd.OutOrStdout()
				for _, code := range codes {
					fmt.Fprintf(out, "%s:", code)
					for _, kw := range language.Keywords(code) {
						fmt.Fprintf(out, " %q", kw)
					}
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	cmd.Flags().BoolVar(&showKeywords, "keywords", false, "Also print each language's keyword set")
	return cmd
}

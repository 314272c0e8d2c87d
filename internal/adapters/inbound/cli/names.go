package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiready/aiready/internal/adapters/outbound/tui"
	"github.com/aiready/aiready/internal/domain"
)

func newNamesCmd(st *settings) *cobra.Command {
	var (
		lang       string
		kind       string
		jsonOutput bool
		ciMode     bool
	)

	cmd := &cobra.Command{
		Use:   "names <identifier>...",
		Short: "Check identifiers against a language's naming conventions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := domain.ParseLanguage(lang)
			if err != nil {
				return err
			}
			symbolKind, err := domain.ParseSymbolKind(kind)
			if err != nil {
				return err
			}

			svc, _ := newScanService(st.logger())
			checks := make([]tui.NameCheck, 0, len(args))
			flagged := 0
			for _, id := range args {
				c := tui.NameCheck{Identifier: id, Language: language, Kind: symbolKind}
				if issue, ok := svc.CheckName(language, id, symbolKind); ok {
					c.Issue = &issue
					flagged++
				}
				checks = append(checks, c)
			}

			if jsonOutput {
				if err := renderJSON(cmd, checks); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderNameChecks(checks))
			}

			if ciMode && flagged > 0 {
				return fmt.Errorf("%d of %d identifiers break %s conventions", flagged, len(checks), language)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", string(domain.LanguagePython), "Language (go, python, javascript, typescript)")
	cmd.Flags().StringVar(&kind, "kind", string(domain.KindFunction), "Symbol kind (function, class, const, variable, interface, type)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if any identifier is flagged")

	return cmd
}

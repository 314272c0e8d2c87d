package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aiready/aiready/internal/adapters/outbound/config"
	"github.com/aiready/aiready/internal/domain"
)

// languageGlobs restricts a generated config to one language's sources.
var languageGlobs = map[domain.Language][]string{
	domain.LanguageGo:         {"**/*.go"},
	domain.LanguagePython:     {"**/*.py", "**/*.pyi"},
	domain.LanguageJavaScript: {"**/*.js", "**/*.jsx", "**/*.mjs", "**/*.cjs"},
	domain.LanguageTypeScript: {"**/*.ts", "**/*.tsx", "**/*.mts", "**/*.cts"},
}

func newInitCmd() *cobra.Command {
	var (
		lang  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .aiready.yaml configuration file",
		Long:  "Create a .aiready.yaml with the default thresholds, optionally limited to one language.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			name := config.FileNames[0]
			dest := filepath.Join(absPath, name)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", name)
				}
			}

			var include []string
			if lang != "" {
				l, err := domain.ParseLanguage(lang)
				if err != nil {
					return err
				}
				include = languageGlobs[l]
			}

			if err := os.WriteFile(dest, []byte(generateConfig(include)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Only scan this language (go, python, javascript, typescript)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .aiready.yaml")

	return cmd
}

func generateConfig(include []string) string {
	var b strings.Builder
	b.WriteString("# aiready configuration\n\n")

	if len(include) > 0 {
		b.WriteString("include:\n")
		for _, g := range include {
			fmt.Fprintf(&b, "  - %q\n", g)
		}
		b.WriteString("\n")
	}

	b.WriteString(`exclude:
  - "**/migrations/**"

min_severity: info

checks:
  magic_literals: true
  boolean_traps: true
  ambiguous_names: true
  undocumented_exports: true
  implicit_side_effects: true
  deep_callbacks: true
  dead_code: true

`)
	fmt.Fprintf(&b, "similarity_threshold: %.2f\n", domain.DefaultSimilarityThreshold)
	fmt.Fprintf(&b, "cluster_min_size: %d\n", domain.DefaultClusterMinSize)
	fmt.Fprintf(&b, "callback_depth: %d\n", domain.DefaultCallbackDepth)
	b.WriteString("\n# concurrency: 0  # 0 uses every CPU\n")
	return b.String()
}

package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aiready/aiready/internal/adapters/outbound/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// settings are process-level options resolved from persistent flags and
// AIREADY_* environment variables.
type settings struct {
	v   *viper.Viper
	log *logrus.Logger
}

func newSettings() *settings {
	v := viper.New()
	v.SetEnvPrefix("AIREADY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "text")
	return &settings{v: v}
}

func (s *settings) init(cmd *cobra.Command) error {
	log, err := logging.New(s.v.GetString("log-level"), s.v.GetString("log-format"), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	s.log = log
	configureColor(cmd.OutOrStdout(), s.v.GetBool("no-color"))
	return nil
}

func (s *settings) logger() logrus.FieldLogger {
	if s.log == nil {
		return logging.Discard()
	}
	return s.log
}

func newRootCmd() *cobra.Command {
	st := newSettings()
	cmd := &cobra.Command{
		Use:   "aiready",
		Short: "Find code that confuses AI coding assistants",
		Long: "aiready scans Python, JavaScript, TypeScript and Go sources for naming drift, " +
			"duplicated patterns and ambiguity signals, and rates how risky the codebase is for AI-assisted work.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.init(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")
	pf.Bool("no-color", false, "Disable colored output")
	_ = st.v.BindPFlags(pf)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd(st))
	cmd.AddCommand(newNamesCmd(st))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(st))
	return cmd
}

// configureColor drops to plain text when output is not a terminal or the
// user asked for no color.
func configureColor(out io.Writer, disabled bool) {
	if disabled || os.Getenv("NO_COLOR") != "" || !isTerminal(out) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

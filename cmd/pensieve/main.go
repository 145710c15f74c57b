package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/pensieve"
)

var rootCmd = &cobra.Command{
	Use:   "pensieve",
	Short: "Evaluate propositional logic and arithmetic expressions",
	Long: `pensieve evaluates infix expressions. In logic mode it prints the truth
table of each comma-separated expression and whether they are equivalent; in
arith mode it prints the value. It starts an interactive prompt when stdin is
a terminal and evaluates stdin line by line otherwise.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(versionCmd)
	addFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pensieve:", err)
		os.Exit(1)
	}
}

// addFlags registers the configuration flags on the root command.
func addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/pensieve/config.toml)")
	cmd.PersistentFlags().String("mode", "logic", "expression grammar (logic|arith)")
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Bool("debug", false, "print postfix form and variables of each expression")
	cmd.PersistentFlags().Int("prec", pensieve.DefaultPrec, "precision of calculations in bits")
	cmd.PersistentFlags().String("fmt", "%.15g", "result formatting string")
	cmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	cmd.Flags().String("in", "", "input file for line mode (- for stdin)")
}

// env is everything a command needs after configuration is resolved.
type env struct {
	cfg    config
	s      *session
	log    *zap.Logger
	closer io.Closer
}

func (e *env) Close() error {
	_ = e.log.Sync()
	return e.closer.Close()
}

// setup resolves configuration from the config file, environment, and flags,
// and creates the logger and evaluation session. out is the stream whose
// terminal-ness decides --color auto.
func setup(cmd *cobra.Command, out *os.File) (*env, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile()
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyFlags(cmd); err != nil {
		return nil, err
	}
	g, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	log, closer, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	mode, _ := readColorMode(cfg.Color)
	pal := newPalette(useColor(mode, out))
	s, err := newSession(cfg, g, pal, log)
	if err != nil {
		closer.Close()
		return nil, err
	}
	log.Debug("configured",
		zap.String("config", path),
		zap.String("mode", cfg.Mode),
		zap.Int("prec", cfg.Prec),
		zap.Bool("color", pal.on),
	)
	return &env{cfg: cfg, s: s, log: log, closer: closer}, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, os.Stdout)
	if err != nil {
		return err
	}
	defer e.Close()

	in, err := cmd.Flags().GetString("in")
	if err != nil {
		return fmt.Errorf("failed to get in flag: %w", err)
	}
	switch in {
	case "":
		if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
			return runREPL(e.s, e.cfg.History, os.Stdin, os.Stdout)
		}
		return runLines(e.s, os.Stdin, cmd.OutOrStdout())
	case "-":
		return runLines(e.s, os.Stdin, cmd.OutOrStdout())
	default:
		f, err := os.Open(in)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		return runLines(e.s, f, cmd.OutOrStdout())
	}
}

// runLines is the non-interactive line mode: each line of r is handled as if
// typed at the prompt, until EOF or a quit command.
func runLines(s *session, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out, quit := s.handle(sc.Text())
		if out != "" {
			if _, err := fmt.Fprintln(w, out); err != nil {
				return err
			}
		}
		if quit {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

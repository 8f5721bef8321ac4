package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	roskylog "rosky/internal/log"
	"rosky/internal/util"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// errReported marks a failure whose diagnostic has already been printed.
var errReported = errors.New("error reported")

type globalFlags struct {
	cfgFile  string
	logLevel string
	logFile  string
	noColor  bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "rosky",
		Short: "rosky - a small dynamically typed scripting language",
		Long: `rosky runs .rosky scripts with a tree-walking interpreter.

Commands:
  run     - execute a script
  repl    - start an interactive session
  tokens  - dump the token stream of a script as YAML
  version - print version information`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "Config file (default: $ROSKY_CONFIG or ./rosky.toml)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, none")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable coloured diagnostics")

	rootCmd.AddCommand(
		newRunCmd(flags),
		newReplCmd(flags),
		newTokensCmd(flags),
		newVersionCmd(),
	)
	return rootCmd
}

// env is what every command gets after the configuration is resolved.
type env struct {
	config util.Configuration
	logger *slog.Logger
	closer io.Closer
}

func (e *env) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// setup loads the configuration, applies flag overrides and installs the
// logger as the slog default.
func setup(cmd *cobra.Command, flags *globalFlags) (*env, error) {
	cfg, err := util.LoadConfiguration(flags.cfgFile)
	if err != nil {
		return nil, err
	}
	cfg.Version = Version
	cfg.BuildDate = BuildDate
	cfg.Commit = Commit

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if flags.noColor {
		cfg.Color = util.ColorNever
	}

	logger, closer, err := roskylog.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v; falling back to stderr\n", err)
	}
	slog.SetDefault(logger)

	return &env{config: cfg, logger: logger, closer: closer}, nil
}

// useColor decides whether diagnostics written to w get styled.
func useColor(cfg util.Configuration, w io.Writer) bool {
	switch cfg.Color {
	case util.ColorAlways:
		return true
	case util.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

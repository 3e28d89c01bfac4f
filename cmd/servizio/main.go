package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

// Exit codes.
const (
	exitInvalid = 1 // code or vector rejected
	exitUsage   = 2 // bad flag value
	exitIO      = 3 // configuration or file error
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, ee.msg)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	logLevel string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "servizio",
		Short:         "Command-line utility to process INCOM Style Codes",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(cmd, g))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.BoolVar(&g.verbose, "verbose", false, "Print processing steps to stderr")

	root.AddCommand(
		newDecodeCmd(),
		newEncodeCmd(),
		newScoreCmd(),
		newValidCmd(),
		newProcessCmd(),
		newPresetsCmd(),
		newServeCmd(),
	)
	return root
}

func newLogger(cmd *cobra.Command, g *globalFlags) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(g.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	if g.verbose && level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

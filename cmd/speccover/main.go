// Package main provides the speccover binary entry point.
// Speccover recovers behavior scenarios from specification and QA
// documents, then reports test coverage and redundant tests.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/speccover/commands"
)

// Version and BuildTime identify the build; overridden at link time.
var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

const appName = "speccover"

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	opts := &commands.Options{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "QA coverage analysis for behavior scenarios",
		Long: `Speccover ingests two sets of behavior-specification documents (source
behaviors and QA tests), recovers structured scenarios from their text,
and answers which behaviors are covered, which are missing, and which
QA tests are redundant with each other.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.ConfigPath = configPath
			opts.Logger = newLogger(logLevel)
			slog.SetDefault(opts.Logger)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(commands.NewAnalyzeCmd(opts))
	cmd.AddCommand(commands.NewDuplicatesCmd(opts))
	cmd.AddCommand(commands.NewParseCmd(opts))
	cmd.AddCommand(commands.NewWatchCmd(opts))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// newLogger builds the process logger at the requested level.
func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

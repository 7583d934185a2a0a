package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/efflang/ec/pkg/ioctx"
)

// Config holds the driver's configuration, filled from effc.toml (if
// found) and then overridden by whichever flags the invocation set.
type Config struct {
	Backend string
	OutDir  string
	KOutput string
	Debug   bool
}

func main() {
	cfg := &Config{Backend: "ml", OutDir: ".", KOutput: "text"}

	rootCmd := &cobra.Command{
		Use:   "effc",
		Short: "Effect-typed language compiler driver",
		Long: `effc type-checks definition groups and lowers Lifted IR modules to the
ML back end. It has no front end of its own — check/compile operate on
this binary's built-in fixtures, standing in for modules a real parser
and lifter would otherwise hand it.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if cfg.Debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			cwd, _ := os.Getwd()
			if _, project, err := FindProjectConfig(cwd); err == nil && project != nil {
				mergeProjectConfig(cfg, project)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfg.Backend, "backend", cfg.Backend, "Target back end (only \"ml\" is implemented)")
	rootCmd.PersistentFlags().StringVar(&cfg.OutDir, "out", cfg.OutDir, "Directory emitted files are written into")
	rootCmd.PersistentFlags().StringVar(&cfg.KOutput, "Koutput", cfg.KOutput, "Diagnostic rendering: \"text\" or \"yaml\"")

	rootCmd.AddCommand(checkCmd(cfg))
	rootCmd.AddCommand(compileCmd(cfg))

	ctx := context.Background()
	ctx = ioctx.StdoutToContext(ctx, os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)

	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

// mergeProjectConfig applies effc.toml's settings as defaults, letting
// any flag the invocation actually set take precedence (cobra has
// already parsed flags into cfg by the time PersistentPreRunE runs, so
// this only fills fields a flag left at its built-in default).
func mergeProjectConfig(cfg *Config, p *ProjectConfig) {
	if p.Backend != "" && cfg.Backend == "ml" {
		cfg.Backend = p.Backend
	}
	if p.OutDir != "" && cfg.OutDir == "." {
		cfg.OutDir = p.OutDir
	}
	if p.KOutput != "" && cfg.KOutput == "text" {
		cfg.KOutput = p.KOutput
	}
}

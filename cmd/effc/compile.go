package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/efflang/ec/pkg/mlast"
	"github.com/efflang/ec/pkg/mlback"
)

func compileCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <fixture>",
		Short: "Lower a Lifted IR module to the ML back end",
		Long: `compile runs the ML Transformer over one of this binary's built-in
fixture Lifted IR modules, standing in for the externally-lifted IR a
real front end + lifter pipeline would otherwise hand it, and emits one
.sml file per module into the configured output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Backend != "" && cfg.Backend != "ml" {
				return fmt.Errorf("unsupported backend %q (only \"ml\" is implemented)", cfg.Backend)
			}

			mod, err := lookupCompileFixture(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return recoverInvariant(out, cfg.KOutput, func() error {
				top, fatal := mlback.Transform(mod)
				if fatal != nil {
					renderFatal(out, fatal, cfg.KOutput)
					return fmt.Errorf("compilation failed")
				}

				return writeModule(cfg.OutDir, mod.Path, top)
			})
		},
	}
	return cmd
}

// writeModule renders top and writes it to <outDir>/<path with '/'→'_'>.sml.
func writeModule(outDir, path string, top *mlast.Toplevel) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	name := strings.ReplaceAll(path, "/", "_") + ".sml"
	dest := filepath.Join(outDir, name)

	if err := os.WriteFile(dest, []byte(mlast.Emit(top)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

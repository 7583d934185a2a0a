package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/efflang/ec/pkg/typectx"
	"github.com/efflang/ec/pkg/typer"
)

func checkCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <fixture>",
		Short: "Type-and-effect check a definition group",
		Long: `check runs the bidirectional Typer over one of this binary's built-in
fixture definition groups, standing in for a module a front end would
otherwise hand it, and reports every diagnostic it buffers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, _, err := lookupCheckFixture(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return recoverInvariant(out, cfg.KOutput, func() error {
				db, _ := buildPrelude()
				ctx := typectx.New(db)
				t := typer.New(ctx)

				t.CheckDefinitionGroup(defs)

				if renderDiagnostics(out, t.Bag, cfg.KOutput) {
					return fmt.Errorf("type checking failed")
				}
				return nil
			})
		},
	}
	return cmd
}

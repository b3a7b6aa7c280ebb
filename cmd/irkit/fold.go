package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"irkit/internal/diag"
	"irkit/internal/ir"
	"irkit/internal/observ"
	"irkit/internal/passes"
	"irkit/internal/pipeline"
	"irkit/internal/rewrite"
)

var foldCmd = &cobra.Command{
	Use:   "fold [flags] [module.irsnap]",
	Short: "Constant-fold a module to a fixpoint",
	Long:  `Fold runs the constant-folding pipeline on a module and prints it before and after. Without an argument a built-in demo module is used.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFold,
}

func init() {
	foldCmd.Flags().String("out", "", "write the folded module snapshot to this file")
}

func runFold(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	module, err := loadModule(path, reg)
	if err != nil {
		return err
	}
	if err := ir.Verify(module); err != nil {
		return fmt.Errorf("input module is inconsistent: %w", err)
	}

	colored := useColor(cmd, os.Stdout)
	heading := func(s string) string {
		if colored {
			return color.New(color.FgCyan, color.Bold).Sprint(s)
		}
		return s
	}

	fmt.Fprintln(cmd.OutOrStdout(), heading("before:"))
	fmt.Fprint(cmd.OutOrStdout(), ir.DumpString(module))

	timer := observ.NewTimer()
	bag := diag.NewBag(16)
	p := pipeline.New(passes.ConstFold()).
		WithVerifier(reg).
		WithTimer(timer).
		WithReporter(diag.BagReporter{Bag: bag})
	if err := p.Run(cmd.Context(), module); err != nil {
		var unsup *rewrite.UnsupportedOpError
		if errors.As(err, &unsup) {
			bag.Add(unsup.Diagnostic())
		}
		if derr := renderDiags(cmd, bag); derr != nil {
			return derr
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), heading("after:"))
	fmt.Fprint(cmd.OutOrStdout(), ir.DumpString(module))

	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		fmt.Fprint(cmd.OutOrStdout(), timer.Summary())
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		digest, err := saveModule(out, module)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", out, digest)
	}
	return nil
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"irkit/internal/diag"
	"irkit/internal/ir"
	"irkit/internal/observ"
	"irkit/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [irkit.toml]",
	Short: "Run a manifest-defined pipeline over snapshot files",
	Long:  `Run loads a pipeline manifest, applies its passes to every module snapshot it names and writes the transformed snapshots back in place. Independent modules run in parallel.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	manifestPath := "irkit.toml"
	if len(args) == 1 {
		manifestPath = args[0]
	}

	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}

	dir := filepath.Dir(manifestPath)
	files, err := manifest.ResolveModules(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%s: no module snapshots matched", manifestPath)
	}

	modules := make([]*ir.Operation, len(files))
	for i, f := range files {
		modules[i], err = loadModule(f, reg)
		if err != nil {
			return err
		}
	}

	// Modules run in parallel, so reports must go through a serialized
	// reporter.
	bag := diag.NewBag(32)
	p := pipeline.New(manifest.BuildPipeline()...).
		WithReporter(&diag.SyncReporter{Inner: diag.BagReporter{Bag: bag}})
	if manifest.Pipeline.Verify {
		p = p.WithVerifier(reg)
	}
	timer := observ.NewTimer()
	idx := timer.Begin("run")

	jobs := manifest.Pipeline.Jobs
	if flagJobs, _ := cmd.Root().PersistentFlags().GetInt("jobs"); flagJobs > 0 {
		jobs = flagJobs
	}
	if err := p.RunAll(cmd.Context(), modules, jobs); err != nil {
		if derr := renderDiags(cmd, bag); derr != nil {
			return derr
		}
		return err
	}
	timer.End(idx, fmt.Sprintf("%d modules", len(modules)))

	for i, f := range files {
		digest, err := saveModule(f, modules[i])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", f, digest)
	}

	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		fmt.Fprint(cmd.OutOrStdout(), timer.Summary())
	}
	return nil
}

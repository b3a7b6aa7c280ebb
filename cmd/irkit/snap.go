package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"irkit/internal/ir"
	"irkit/internal/snapshot"
)

var snapCmd = &cobra.Command{
	Use:   "snap [flags] out.irsnap",
	Short: "Write a module snapshot",
	Long:  `Snap serializes a module to a snapshot file and prints its content digest. With --in it re-encodes an existing snapshot; otherwise it writes the built-in demo module.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSnap,
}

func init() {
	snapCmd.Flags().String("in", "", "module snapshot to re-encode instead of the demo module")
	snapCmd.Flags().Bool("cache", false, "also store the snapshot in the user cache")
	snapCmd.Flags().Bool("print", false, "dump the module to stdout")
}

func runSnap(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	in, _ := cmd.Flags().GetString("in")
	module, err := loadModule(in, reg)
	if err != nil {
		return err
	}
	if err := ir.Verify(module); err != nil {
		return fmt.Errorf("module is inconsistent: %w", err)
	}

	if doPrint, _ := cmd.Flags().GetBool("print"); doPrint {
		fmt.Fprint(cmd.OutOrStdout(), ir.DumpString(module))
	}

	digest, err := saveModule(args[0], module)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", args[0], digest)

	if toCache, _ := cmd.Flags().GetBool("cache"); toCache {
		cache, err := snapshot.OpenDiskCache("irkit")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := cache.Put(digest, data); err != nil {
			return fmt.Errorf("failed to store in cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cached")
	}
	return nil
}

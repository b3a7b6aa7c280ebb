package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"irkit/internal/snapshot"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the user snapshot cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop every cached snapshot",
	Long:  `Clean removes the whole snapshot cache, e.g. after an irkit upgrade changed the snapshot schema.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := snapshot.OpenDiskCache("irkit")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}

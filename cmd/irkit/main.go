package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"irkit/internal/diag"
	"irkit/internal/diagfmt"
	"irkit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "irkit",
	Short: "SSA IR toolkit and rewrite driver",
	Long:  `irkit builds, transforms and snapshots SSA-form IR modules`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(foldCmd)
	rootCmd.AddCommand(snapCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("diag-format", "pretty", "diagnostic output format (pretty|json)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel module runs (0 = all CPUs)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the destination stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	return flag == "on" || (flag == "auto" && isTerminal(f))
}

// renderDiags writes the collected diagnostics to stderr in the format
// selected by --diag-format.
func renderDiags(cmd *cobra.Command, bag *diag.Bag) error {
	if bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	format, _ := cmd.Root().PersistentFlags().GetString("diag-format")
	switch format {
	case "json":
		return diagfmt.JSON(os.Stderr, bag)
	case "pretty":
		diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr)})
		return nil
	default:
		return fmt.Errorf("unknown diag format %q (want pretty or json)", format)
	}
}

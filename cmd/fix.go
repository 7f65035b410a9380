package cmd

import (
	"fmt"

	"github.com/AnyUserName/printprep-cli/internal/layout"
	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Collapse nested output folders into their grandparent's output folder",
	Long: `Converting nested source folders leaves an output folder next to every
subfolder. fix moves the converted files of each output folder two or more
levels below the source root into "{G}/{G}_resized", where G is the folder's
grandparent, and removes the emptied folders. It repeats until nothing moves.`,
	Args: cobra.NoArgs,
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, _ []string) error {
	opts, err := layoutOptions()
	if err != nil {
		return err
	}

	rep, err := layout.NewFixer(opts, log).Fix(cfg.SourceDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Found:       %d nested output folders\n", len(rep.Found))
	fmt.Fprintf(out, "  Moved:       %d files\n", rep.Moved)
	fmt.Fprintf(out, "  Removed:     %d folders\n", len(rep.Removed))
	for _, k := range rep.Kept {
		fmt.Fprintf(out, "    ⚠ not empty, kept: %s\n", k)
	}
	fmt.Fprintln(out)
	return printStructure(cmd, opts)
}

// printStructure lists the output folders directly under the source root.
func printStructure(cmd *cobra.Command, opts layout.Options) error {
	folders, err := layout.Structure(cfg.SourceDir, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "  Final structure:")
	for _, f := range folders {
		fmt.Fprintf(out, "    %-45s %4d files\n", f.Name, f.Files)
	}
	fmt.Fprintln(out)
	return nil
}

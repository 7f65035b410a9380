package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/layout"
	"github.com/spf13/cobra"
)

var cleanupYes bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete the output folders of every top-level source folder",
	Args:  cobra.NoArgs,
	RunE:  runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupYes, "yes", false, "do not ask for confirmation")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	existing, err := layout.ExistingDestinations(cfg.SourceDir, cfg.DestinationSuffix)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		fmt.Fprintln(out, "No destination folders found to clean up.")
		return nil
	}

	fmt.Fprintf(out, "Found %d existing destination folders:\n", len(existing))
	for _, d := range existing {
		fmt.Fprintf(out, "  - %s\n", d)
	}
	if !cleanupYes && !confirm(cmd, "Do you want to delete these folders?") {
		fmt.Fprintln(out, "Cleanup cancelled.")
		return nil
	}

	s := layout.RemoveDestinations(existing)
	for _, f := range s.Failures {
		log.WithField("path", f.Path).Errorf("Could not delete %s: %v", f.Path, f.Err)
	}
	fmt.Fprintf(out, "Deleted %d folders (%s)\n", s.OK, s)
	return nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s (yes/no): ", question)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes", "y":
		return true
	}
	return false
}

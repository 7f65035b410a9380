package cmd

import (
	"fmt"

	"github.com/AnyUserName/printprep-cli/internal/classify"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the folder, category and product tables against each other",
	Long: `check reports folder prefixes that re-sort into a different category,
category rules that can never match because an earlier rule shadows them, and
product prefixes that belong to no category.`,
	Args:        cobra.NoArgs,
	Annotations: noSource,
	RunE:        runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	issues := classify.Check(cfg.Folders, cfg.Categories, cfg.Products)

	if len(issues) == 0 {
		fmt.Fprintln(out, "  ✓ Tables are consistent")
		fmt.Fprintf(out, "  ✓ %d folders, %d categories, %d products\n",
			len(cfg.Folders), len(cfg.Categories), len(cfg.Products))
		return nil
	}

	fmt.Fprintf(out, "  ✗ Tables have %d issue(s):\n", len(issues))
	for _, i := range issues {
		fmt.Fprintf(out, "    • %s\n", i)
	}
	return fmt.Errorf("check failed with %d issues", len(issues))
}

package cmd

import (
	"fmt"
	"sort"

	"github.com/AnyUserName/printprep-cli/internal/classify"
	"github.com/AnyUserName/printprep-cli/internal/layout"
	"github.com/spf13/cobra"
)

var (
	resortConsolidated string
	resortDest         string
)

var resortCmd = &cobra.Command{
	Use:   "resort",
	Short: "Sort converted files from the consolidated folder into category folders",
	Long: `resort classifies every converted file in the consolidated folder by its
filename prefix and moves it into "{dest}/{category}_resized". Files whose
prefix matches no category stay where they are and are listed.

The consolidated folder defaults to "{source}/{source}_resized", which is
where fix collects folders nested two levels deep.`,
	Args: cobra.NoArgs,
	RunE: runResort,
}

func init() {
	resortCmd.Flags().StringVar(&resortConsolidated, "consolidated", "", "folder to sort (default {source}/{source}_resized)")
	resortCmd.Flags().StringVar(&resortDest, "dest", "", "root the category folders are created in (default source)")
	rootCmd.AddCommand(resortCmd)
}

func runResort(cmd *cobra.Command, _ []string) error {
	opts, err := layoutOptions()
	if err != nil {
		return err
	}
	consolidated := resortConsolidated
	if consolidated == "" {
		consolidated = layout.Consolidated(cfg.SourceDir, cfg.DestinationSuffix)
	}
	dest := resortDest
	if dest == "" {
		dest = cfg.SourceDir
	}

	rep := layout.NewResorter(opts, log).Resort(consolidated, dest, cfg.Categories)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Consolidated: %s\n", consolidated)
	categories := make([]string, 0, len(rep.Moved))
	for c := range rep.Moved {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(out, "    %-45s %4d files\n", c, len(rep.Moved[c]))
	}
	if len(rep.Unmatched) > 0 {
		fmt.Fprintf(out, "    %-45s %4d files\n", classify.Unmapped, len(rep.Unmatched))
		for _, name := range rep.Unmatched {
			fmt.Fprintf(out, "    • %s\n", name)
		}
	}
	fmt.Fprintf(out, "  Result:       %s\n", rep.Summary)
	fmt.Fprintln(out)
	return printStructure(cmd, opts)
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/discovery"
	"github.com/AnyUserName/printprep-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:         "stats <manifest>",
	Short:       "Display statistics for a run manifest",
	Args:        cobra.ExactArgs(1),
	Annotations: noSource,
	RunE:        runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	m, err := manifest.ReadJSON(args[0])
	if err != nil {
		return err
	}
	printStats(cmd, m)
	return nil
}

func printStats(cmd *cobra.Command, m *manifest.Manifest) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(out, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(out, "  Profile:          %s (%s)\n", m.Profile, m.Format)
	fmt.Fprintf(out, "  Source:           %s\n", m.SourceDir)
	fmt.Fprintln(out)

	s := m.Stats
	fmt.Fprintf(out, "  Converted:        %d\n", s.TotalFiles)
	fmt.Fprintf(out, "  Failed:           %d\n", s.Failed)
	fmt.Fprintf(out, "  Input size:       %s\n", discovery.FormatSize(s.TotalInputBytes))
	fmt.Fprintf(out, "  Output size:      %s\n", discovery.FormatSize(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Fprintf(out, "  Compression:      %.1f%% of original\n", ratio)
	}
	fmt.Fprintln(out)

	// Per output folder breakdown.
	type folderStat struct {
		count int
		bytes int64
	}
	folders := map[string]folderStat{}
	for _, e := range m.Files {
		dir := filepath.ToSlash(filepath.Dir(filepath.FromSlash(e.Output)))
		fs := folders[dir]
		fs.count++
		fs.bytes += e.Size
		folders[dir] = fs
	}
	var names []string
	for n := range folders {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) > 0 {
		fmt.Fprintln(out, "  Output folders:")
		for _, n := range names {
			fmt.Fprintf(out, "    %-45s %4d files  %s\n", n, folders[n].count, discovery.FormatSize(folders[n].bytes))
		}
		fmt.Fprintln(out)
	}

	// Failures by kind.
	if len(m.Failures) > 0 {
		kinds := map[string]int{}
		for _, f := range m.Failures {
			kinds[f.Kind]++
		}
		var parts []string
		for k, n := range kinds {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
		sort.Strings(parts)
		fmt.Fprintf(out, "  Failures (%s):\n", strings.Join(parts, ", "))
		for _, f := range m.Failures {
			fmt.Fprintf(out, "    ⚠ %s: %s\n", f.Source, f.Error)
		}
		fmt.Fprintln(out)
	}

	// Entries whose output is gone.
	var missing int
	for key := range m.Files {
		if _, err := os.Stat(filepath.Join(m.SourceDir, filepath.FromSlash(key))); err != nil {
			missing++
		}
	}
	if missing > 0 {
		fmt.Fprintf(out, "  Warnings: %d outputs no longer on disk (moved by fix/resort?)\n\n", missing)
	}
}

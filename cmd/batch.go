package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/printprep-cli/internal/config"
	"github.com/AnyUserName/printprep-cli/internal/discovery"
	"github.com/AnyUserName/printprep-cli/internal/encoder"
	"github.com/AnyUserName/printprep-cli/internal/manifest"
	"github.com/AnyUserName/printprep-cli/internal/pipeline"
	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
)

var (
	batchFolder      string
	batchFormat      string
	batchDryRun      bool
	batchInteractive bool
	batchDiscover    bool
	batchManifest    string
	batchProgress    bool
	maxWidth         int
	maxHeight        int
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&batchFolder, "folder", "f", "", "process one top-level folder by name")
	f.StringVar(&batchFormat, "format", "", "process only one input format (e.g. .png, jpg)")
	f.BoolVar(&batchDryRun, "dry-run", false, "show what would be processed without processing")
	f.BoolVarP(&batchInteractive, "interactive", "i", false, "interactive mode")
	f.BoolVarP(&batchDiscover, "discover", "d", false, "discover and show image statistics")
	f.StringVar(&batchManifest, "manifest", "", "write a JSON manifest of the run to this path")
	f.BoolVar(&batchProgress, "progress", false, "show a progress bar")
	f.IntVar(&maxWidth, "max-width", 0, "maximum output width (0 = profile default)")
	f.IntVar(&maxHeight, "max-height", 0, "maximum output height (0 = profile default)")
}

func runBatch(cmd *cobra.Command, _ []string) error {
	formats := pipeline.NewFilter(cfg.SupportedFormats)

	switch {
	case batchDiscover:
		s, err := discovery.Scan(cfg.SourceDir, formats, cfg.DestinationSuffix)
		if err != nil {
			return err
		}
		discovery.WriteDiscover(cmd.OutOrStdout(), s)
		return nil
	case batchDryRun:
		return dryRun(cmd, formats)
	case batchInteractive:
		return runInteractive(cmd, formats)
	case batchFolder != "":
		return convert(cmd, batchFolder, formats)
	case batchFormat != "":
		fmt.Fprintf(cmd.OutOrStdout(), "Processing only %s files...\n", config.NormalizeExt(batchFormat))
		return convert(cmd, "", pipeline.OnlyFormat(batchFormat))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), "Processing all folders...")
		return convert(cmd, "", formats)
	}
}

func dryRun(cmd *cobra.Command, formats pipeline.Filter) error {
	s, err := discovery.Scan(cfg.SourceDir, formats, cfg.DestinationSuffix)
	if err != nil {
		return err
	}
	p := cfg.EffectiveProfile()
	discovery.WriteDryRun(cmd.OutOrStdout(), s, &p)
	return nil
}

// convert runs stage 1 over one top-level folder, or over every top-level
// folder when folder is empty.
func convert(cmd *cobra.Command, folder string, formats pipeline.Filter) error {
	start := time.Now()
	out := cmd.OutOrStdout()

	p := cfg.EffectiveProfile()
	conv, err := pipeline.NewConverter(p, encoder.NewRegistry(), log)
	if err != nil {
		return err
	}
	log.Debugf("profile: %s (%s, quality=%d, max=%dx%d)", p.Name, p.Format, p.Quality, p.MaxWidth, p.MaxHeight)

	root := cfg.SourceDir
	if folder != "" {
		root = filepath.Join(cfg.SourceDir, folder)
		if _, err := os.Stat(root); err != nil {
			fmt.Fprintf(out, "Folder not found: %s\n", folder)
			return nil
		}
		fmt.Fprintf(out, "Processing single folder: %s\n", folder)
	}

	w := pipeline.NewWalker(conv, cfg.Folders, cfg.DestinationSuffix, log)

	var m *manifest.Manifest
	if batchManifest != "" {
		m = manifest.New(p.Name, conv.Extension(), cfg.SourceDir)
	}
	var bar *pb.ProgressBar
	if batchProgress {
		bar = startProgress(root, folder != "", formats)
	}
	w.OnResult = func(c pipeline.Conversion) {
		if bar != nil {
			bar.Increment()
		}
		if m != nil {
			record(m, c)
		}
	}

	if folder != "" {
		w.Walk(root, formats)
	} else if _, err := w.WalkAll(root, formats); err != nil {
		return err
	}

	if bar != nil {
		bar.Finish()
	}
	counts := w.Counts()
	printBatchReport(cmd, counts, time.Since(start))

	if m != nil {
		if err := manifest.WriteJSON(m, batchManifest); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		fmt.Fprintf(out, "  Manifest:    %s\n\n", batchManifest)
	}
	return nil
}

// startProgress sizes a progress bar from a discovery pre-count.
func startProgress(root string, single bool, formats pipeline.Filter) *pb.ProgressBar {
	total := 0
	if single {
		if s, err := discovery.Scan(root, formats, cfg.DestinationSuffix); err == nil {
			total, _ = s.Totals()
		}
	} else if top, err := discovery.TopLevel(root, formats, cfg.DestinationSuffix); err == nil {
		for _, t := range top {
			total += t.Images
		}
	}
	return pb.StartNew(total)
}

func record(m *manifest.Manifest, c pipeline.Conversion) {
	src := relTo(m.SourceDir, c.Source.Path)
	if !c.OK {
		f := manifest.Failure{Source: src, Kind: c.Kind.String()}
		if c.Err != nil {
			f.Error = c.Err.Error()
		}
		m.Failures = append(m.Failures, f)
		return
	}
	out := relTo(m.SourceDir, c.Dest)
	m.Files[out] = manifest.Entry{
		Source:     src,
		Output:     out,
		Width:      c.Width,
		Height:     c.Height,
		SourceSize: c.Source.Size,
		Size:       c.Size,
		Hash:       c.Hash,
	}
}

func relTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func printBatchReport(cmd *cobra.Command, c pipeline.Counts, elapsed time.Duration) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Processed:   %d images\n", c.Processed)
	fmt.Fprintf(out, "  Errors:      %d images\n", c.Failed)
	fmt.Fprintf(out, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(out)
}

package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/printprep-cli/internal/classify"
	"github.com/AnyUserName/printprep-cli/internal/report"
	"github.com/sirupsen/logrus"
)

// ResortReport summarizes a Resort run.
type ResortReport struct {
	Moved     map[string][]string // category -> filenames now in its folder
	Unmatched []string            // filenames left in the consolidated folder
	Removed   bool                // consolidated folder was removed
	Summary   report.Summary
}

// Resorter distributes converted files from one consolidated folder into
// per-category output folders by filename prefix.
type Resorter struct {
	opts Options
	log  logrus.FieldLogger
}

// NewResorter creates a resorter.
func NewResorter(opts Options, log logrus.FieldLogger) *Resorter {
	return &Resorter{opts: opts, log: log}
}

// Consolidated returns the default consolidated folder for root, which is
// where Fix collapses folders nested two levels deep.
func Consolidated(root, suffix string) string {
	return filepath.Join(root, filepath.Base(root)+suffix)
}

// CategoryDir returns the output folder of category under destRoot.
func (r *Resorter) CategoryDir(destRoot, category string) string {
	return filepath.Join(destRoot, category+r.opts.Suffix)
}

// Resort moves every converted file in consolidated into
// "{destRoot}/{category}{suffix}/", where category comes from the first
// matching prefix in t. Files that match no prefix stay where they are and
// are listed in the report. Finally the consolidated folder is removed if
// it is empty.
func (r *Resorter) Resort(consolidated, destRoot string, t classify.Table) ResortReport {
	rep := ResortReport{Moved: map[string][]string{}}
	log := r.log.WithField("folder", consolidated)

	names, err := convertedFiles(consolidated, r.opts.Ext)
	if err != nil {
		rep.Summary.Add(report.Failure(report.KindMissingSource, consolidated, err))
		log.Errorf("No consolidated folder found: %v", err)
		return rep
	}
	log.Infof("Found %d %s files to reorganize", len(names), r.opts.Ext)

	targets := map[string]bool{}
	for _, name := range names {
		src := filepath.Join(consolidated, name)
		category, ok := classify.Classify(name, t)
		if !ok {
			rep.Unmatched = append(rep.Unmatched, name)
			rep.Summary.Add(report.Failure(report.KindUnmapped, src, nil))
			log.Warnf("Unknown category for: %s", name)
			continue
		}

		dir := r.CategoryDir(destRoot, category)
		targets[filepath.Clean(dir)] = true
		if err := os.MkdirAll(dir, 0o755); err != nil {
			rep.Summary.Add(report.Failure(report.KindWrite, dir, err))
			log.Errorf("Cannot create %s: %v", dir, err)
			continue
		}

		dst := filepath.Join(dir, name)
		if filepath.Clean(dst) != filepath.Clean(src) {
			if err := moveFile(src, dst); err != nil {
				rep.Summary.Add(report.Failure(report.KindMove, src, err))
				log.Errorf("Cannot move %s: %v", name, err)
				continue
			}
			log.Infof("Moving %s -> %s", name, filepath.Base(dir))
		}
		rep.Moved[category] = append(rep.Moved[category], name)
		rep.Summary.Add(report.Success(dst))
	}

	if targets[filepath.Clean(consolidated)] {
		return rep
	}
	if err := os.Remove(consolidated); err != nil {
		rep.Summary.Add(report.Failure(report.KindCleanup, consolidated, err))
		log.Warnf("Could not remove consolidated folder (not empty): %s", consolidated)
		return rep
	}
	rep.Removed = true
	log.Infof("Removed empty consolidated folder: %s", consolidated)
	return rep
}

// FolderCount is one output folder and the number of converted files in it.
type FolderCount struct {
	Name  string
	Files int
}

// Structure lists the output folders directly under root, sorted by name.
func Structure(root string, opts Options) ([]FolderCount, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}
	var out []FolderCount
	for _, e := range entries {
		if !e.IsDir() || !hasSuffix(e.Name(), opts.Suffix) {
			continue
		}
		names, err := convertedFiles(filepath.Join(root, e.Name()), opts.Ext)
		if err != nil {
			return nil, err
		}
		out = append(out, FolderCount{Name: e.Name(), Files: len(names)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

package layout

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/report"
	"github.com/sirupsen/logrus"
)

// Options are shared by the layout passes.
type Options struct {
	Suffix string // destination suffix, e.g. "_resized"
	Ext    string // converted file extension with dot, e.g. ".webp"
}

// FixReport summarizes a Fix run.
type FixReport struct {
	Found   []string // nested output folders that were collapsed
	Moved   int
	Removed []string
	Kept    []string // folders that could not be removed
	Summary report.Summary
}

// Fixer collapses nested output folders. The walker gives every subfolder
// its own sibling output folder; Fixer moves the converted files of each
// output folder at depth two or more into "{G}/{base(G)}{suffix}", where G
// is that folder's grandparent.
type Fixer struct {
	opts Options
	log  logrus.FieldLogger
}

// NewFixer creates a fixer.
func NewFixer(opts Options, log logrus.FieldLogger) *Fixer {
	return &Fixer{opts: opts, log: log}
}

// Fix collapses nested output folders under root until none remain that can
// be moved. Folder removal failures are reported, never forced.
func (f *Fixer) Fix(root string) (FixReport, error) {
	var rep FixReport
	f.log.Infof("Fixing folder structure in %s", root)

	done := map[string]bool{}
	for {
		found, err := f.find(root)
		if err != nil {
			return rep, err
		}

		progress := false
		for _, dir := range found {
			if done[dir] {
				continue
			}
			done[dir] = true
			rep.Found = append(rep.Found, dir)
			if f.collapse(dir, &rep) {
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	f.log.Infof("Folder structure fix completed: %d folders, %d files moved", len(rep.Found), rep.Moved)
	return rep, nil
}

// Destination returns where the contents of output folder dir belong.
func (f *Fixer) Destination(dir string) string {
	g := filepath.Dir(filepath.Dir(dir))
	return filepath.Join(g, filepath.Base(g)+f.opts.Suffix)
}

// find returns output folders at depth >= 2 below root, deepest first.
// Top-level output folders are already where they belong.
func (f *Fixer) find(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root || !strings.HasSuffix(d.Name(), f.opts.Suffix) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if depth(rel) >= 2 && f.Destination(path) != path {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.SliceStable(found, func(i, j int) bool {
		return depth(found[i]) > depth(found[j])
	})
	return found, nil
}

// collapse moves dir's converted files to its destination and removes dir.
// It reports whether anything changed on disk.
func (f *Fixer) collapse(dir string, rep *FixReport) bool {
	dest := f.Destination(dir)
	log := f.log.WithField("path", dir)
	log.Infof("Processing: %s -> %s", dir, dest)

	names, err := convertedFiles(dir, f.opts.Ext)
	if err != nil {
		rep.Summary.Add(report.Failure(report.KindMissingSource, dir, err))
		log.Errorf("Cannot read %s: %v", dir, err)
		return false
	}
	log.Infof("Found %d %s files", len(names), f.opts.Ext)

	changed := false
	if len(names) > 0 {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			rep.Summary.Add(report.Failure(report.KindWrite, dest, err))
			log.Errorf("Cannot create %s: %v", dest, err)
			return false
		}
	}
	for _, name := range names {
		src := filepath.Join(dir, name)
		if err := moveFile(src, filepath.Join(dest, name)); err != nil {
			rep.Summary.Add(report.Failure(report.KindMove, src, err))
			log.Errorf("Cannot move %s: %v", name, err)
			continue
		}
		rep.Moved++
		rep.Summary.Add(report.Success(src))
		changed = true
		log.Debugf("Moving: %s", name)
	}

	if err := os.Remove(dir); err != nil {
		rep.Kept = append(rep.Kept, dir)
		rep.Summary.Add(report.Failure(report.KindCleanup, dir, err))
		log.Warnf("Could not remove folder (not empty): %s", dir)
		return changed
	}
	rep.Removed = append(rep.Removed, dir)
	log.Infof("Removed empty folder: %s", dir)
	return true
}

func depth(rel string) int {
	return len(strings.Split(filepath.Clean(rel), string(filepath.Separator)))
}

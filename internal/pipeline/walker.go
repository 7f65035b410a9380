package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/classify"
	"github.com/AnyUserName/printprep-cli/internal/report"
	"github.com/sirupsen/logrus"
)

// Counts aggregates a walker's per-file outcomes.
type Counts struct {
	Processed int
	Failed    int
}

// Walker converts every recognized image under a folder tree into sibling
// "{folder}{suffix}" directories. Subfolders are recursed into and get their
// own sibling output folder, so nested sources produce nested outputs; the
// layout fixer collapses those afterwards.
type Walker struct {
	conv    *Converter
	folders classify.Table
	suffix  string
	log     logrus.FieldLogger
	counts  Counts

	// OnResult, if set, is called after every file conversion.
	OnResult func(Conversion)
}

// NewWalker creates a walker naming outputs with the folder table.
func NewWalker(conv *Converter, folders classify.Table, suffix string, log logrus.FieldLogger) *Walker {
	return &Walker{conv: conv, folders: folders, suffix: suffix, log: log}
}

// Counts returns the totals accumulated over every call so far.
func (w *Walker) Counts() Counts {
	return w.counts
}

// DestPath returns the output path for an image file inside folder:
// {parent}/{folder}{suffix}/{prefix}_{stem}.{ext}.
func (w *Walker) DestPath(folder, file string) string {
	name := filepath.Base(folder)
	prefix := classify.FolderPrefix(name, w.folders)
	stem := strings.TrimSuffix(file, filepath.Ext(file))
	return filepath.Join(filepath.Dir(folder), name+w.suffix,
		fmt.Sprintf("%s_%s.%s", prefix, stem, w.conv.Extension()))
}

// ConvertFile converts one file and records the outcome.
func (w *Walker) ConvertFile(src, dst string) Conversion {
	c := w.conv.Convert(src, dst)
	if c.OK {
		w.counts.Processed++
	} else {
		w.counts.Failed++
	}
	if w.OnResult != nil {
		w.OnResult(c)
	}
	return c
}

// WalkAll processes every top-level folder of root. Loose files directly in
// root are not converted. It fails only when root itself cannot be read.
func (w *Walker) WalkAll(root string, filter Filter) (Counts, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return w.counts, fmt.Errorf("read source directory: %w", err)
	}

	w.log.Infof("Starting image processing from: %s", root)
	for _, e := range entries {
		if !e.IsDir() || IsOutputDir(e.Name(), w.suffix) {
			continue
		}
		w.Walk(filepath.Join(root, e.Name()), filter)
	}

	w.log.Info("Processing complete!")
	w.log.Infof("Successfully processed: %d images", w.counts.Processed)
	w.log.Infof("Errors encountered: %d images", w.counts.Failed)
	return w.counts, nil
}

// Walk processes one folder recursively. A missing or unreadable folder is
// reported and skipped.
func (w *Walker) Walk(folder string, filter Filter) report.Result {
	name := filepath.Base(folder)
	entries, err := os.ReadDir(folder)
	if err != nil {
		w.log.WithField("path", folder).Errorf("Folder not found: %s: %v", name, err)
		return report.Failure(report.KindMissingSource, folder, err)
	}

	w.log.Infof("Processing folder: %s -> %s", name, classify.FolderPrefix(name, w.folders))

	for _, e := range entries {
		path := filepath.Join(folder, e.Name())
		switch {
		case e.IsDir():
			if IsOutputDir(e.Name(), w.suffix) {
				continue
			}
			w.Walk(path, filter)
		case isFile(e, path) && filter.Match(e.Name()):
			w.ConvertFile(path, w.DestPath(folder, e.Name()))
		}
	}
	return report.Success(folder)
}

// isFile reports whether e is a regular file, following symlinks.
func isFile(e fs.DirEntry, path string) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

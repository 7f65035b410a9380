// Package discovery reports what a conversion run would touch without
// touching anything.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/pipeline"
	"github.com/h2non/filetype"
)

// PreviewLimit is how many files per folder a report lists by name.
const PreviewLimit = 3

// FormatCount is one entry of a folder's extension histogram.
type FormatCount struct {
	Ext   string
	Count int
}

// File is a recognized image found by Scan.
type File struct {
	Name string
	Path string
	Ext  string
	Size int64
}

// Folder holds the statistics of one directory that contains images.
type Folder struct {
	Rel       string        // path relative to the scanned root, "." for the root
	Images    int           // recognized images directly in the folder
	Formats   []FormatCount // in order of first appearance
	TotalSize int64
	Preview   []File   // first PreviewLimit images
	Mismatch  []string // images whose content does not match their extension
}

// Stats is the result of Scan. Folders are in walk order.
type Stats struct {
	Root    string
	Folders []*Folder
}

// Totals sums images and bytes over every folder.
func (s Stats) Totals() (images int, size int64) {
	for _, f := range s.Folders {
		images += f.Images
		size += f.TotalSize
	}
	return images, size
}

// Scan walks root and collects per-folder statistics for every file the
// filter accepts. Output folders (names ending in suffix) are not entered.
// Scan never modifies the tree.
func Scan(root string, filter pipeline.Filter, suffix string) (Stats, error) {
	s := Stats{Root: root}
	byDir := map[string]*Folder{}
	var order []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != root && pipeline.IsOutputDir(d.Name(), suffix) {
				return filepath.SkipDir
			}
			order = append(order, path)
			return nil
		}
		if !filter.Match(d.Name()) {
			return nil
		}

		dir := filepath.Dir(path)
		f := byDir[dir]
		if f == nil {
			rel, _ := filepath.Rel(root, dir)
			f = &Folder{Rel: rel}
			byDir[dir] = f
		}

		file := File{Name: d.Name(), Path: path, Ext: strings.ToLower(filepath.Ext(d.Name()))}
		if info, err := d.Info(); err == nil {
			file.Size = info.Size()
		}
		f.add(file)
		if mismatched(path, file.Ext) {
			f.Mismatch = append(f.Mismatch, d.Name())
		}
		return nil
	})
	if err != nil {
		return s, fmt.Errorf("scan %s: %w", root, err)
	}

	for _, dir := range order {
		if f := byDir[dir]; f != nil {
			s.Folders = append(s.Folders, f)
		}
	}
	return s, nil
}

func (f *Folder) add(file File) {
	f.Images++
	f.TotalSize += file.Size
	if len(f.Preview) < PreviewLimit {
		f.Preview = append(f.Preview, file)
	}
	for i := range f.Formats {
		if f.Formats[i].Ext == file.Ext {
			f.Formats[i].Count++
			return
		}
	}
	f.Formats = append(f.Formats, FormatCount{Ext: file.Ext, Count: 1})
}

// Exts returns the folder's extensions in order of first appearance.
func (f *Folder) Exts() []string {
	out := make([]string, len(f.Formats))
	for i, fc := range f.Formats {
		out[i] = fc.Ext
	}
	return out
}

var extAliases = map[string]string{"jpeg": "jpg", "tiff": "tif"}

// mismatched reports whether the file's magic bytes identify a known type
// other than the one its extension names. Unknown content is not flagged.
func mismatched(path, ext string) bool {
	kind, err := filetype.MatchFile(path)
	if err != nil || kind == filetype.Unknown {
		return false
	}
	want := strings.TrimPrefix(ext, ".")
	if a, ok := extAliases[want]; ok {
		want = a
	}
	return kind.Extension != want
}

// TopFolder is a top-level source folder and the number of images below it.
type TopFolder struct {
	Name   string
	Images int
}

// TopLevel counts the images under each top-level folder of root, recursing
// the way the walker does. Folders without images are omitted, so every
// entry can be converted by name.
func TopLevel(root string, filter pipeline.Filter, suffix string) ([]TopFolder, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	var out []TopFolder
	for _, e := range entries {
		if !e.IsDir() || pipeline.IsOutputDir(e.Name(), suffix) {
			continue
		}
		s, err := Scan(filepath.Join(root, e.Name()), filter, suffix)
		if err != nil {
			return nil, err
		}
		if n, _ := s.Totals(); n > 0 {
			out = append(out, TopFolder{Name: e.Name(), Images: n})
		}
	}
	return out, nil
}

// FormatSize renders n bytes in 1024 steps with one decimal, from B up to GB.
func FormatSize(n int64) string {
	if n == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(n)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}

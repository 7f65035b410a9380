package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/config"
)

// Filter is the set of input extensions (lowercase, with dot) a run accepts.
// It is passed per call rather than stored on the walker, so restricting a
// run to one format never touches shared state.
type Filter map[string]bool

// NewFilter builds a filter from extensions such as ".png" or "JPG".
func NewFilter(exts []string) Filter {
	f := make(Filter, len(exts))
	for _, e := range exts {
		if e = config.NormalizeExt(e); e != "" {
			f[e] = true
		}
	}
	return f
}

// OnlyFormat returns a filter accepting a single extension.
func OnlyFormat(ext string) Filter {
	return NewFilter([]string{ext})
}

// Match reports whether name has an accepted extension. Only the extension
// is compared case-insensitively.
func (f Filter) Match(name string) bool {
	return f[strings.ToLower(filepath.Ext(name))]
}

// IsOutputDir reports whether a directory name denotes converted output.
func IsOutputDir(name, suffix string) bool {
	return suffix != "" && strings.HasSuffix(name, suffix)
}

// ImageRecord describes a source image as found on disk.
type ImageRecord struct {
	Path   string
	Folder string // name of the parent folder
	Ext    string // lowercase, with dot
	Format string // decoder name, e.g. "png"
	Size   int64
	Width  int
	Height int
}

// Inspect reads an image's size and pixel dimensions without decoding the
// pixel data.
func Inspect(path string) (ImageRecord, error) {
	rec := ImageRecord{
		Path:   path,
		Folder: filepath.Base(filepath.Dir(path)),
		Ext:    strings.ToLower(filepath.Ext(path)),
	}

	info, err := os.Stat(path)
	if err != nil {
		return rec, err
	}
	rec.Size = info.Size()

	f, err := os.Open(path)
	if err != nil {
		return rec, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return rec, fmt.Errorf("decode config %s: %w", path, err)
	}
	rec.Format = format
	rec.Width = cfg.Width
	rec.Height = cfg.Height
	return rec, nil
}

package layout

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// moveFile renames src to dst, replacing dst. When rename fails (e.g. across
// devices) it falls back to copy and remove.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return os.Remove(src)
}

// copyFile copies src to dst, preserving the modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CopyFile copies src to dst, leaving src in place.
func CopyFile(src, dst string) error {
	return copyFile(src, dst)
}

// hasExt reports whether name ends in ext (".webp"), case-insensitively.
func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// convertedFiles lists the regular files in dir with extension ext, in
// directory order.
func convertedFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && hasExt(e.Name(), ext) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

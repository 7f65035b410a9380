package layout

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/report"
)

func hasSuffix(name, suffix string) bool {
	return suffix != "" && strings.HasSuffix(name, suffix)
}

// ExistingDestinations returns the output folder of every top-level source
// folder of root that already has one.
func ExistingDestinations(root, suffix string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || hasSuffix(e.Name(), suffix) {
			continue
		}
		dest := filepath.Join(root, e.Name()+suffix)
		if info, err := os.Stat(dest); err == nil && info.IsDir() {
			out = append(out, dest)
		}
	}
	return out, nil
}

// RemoveDestinations deletes each folder and everything below it. Callers
// are expected to have confirmed with the user.
func RemoveDestinations(paths []string) report.Summary {
	var s report.Summary
	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			s.Add(report.Failure(report.KindCleanup, p, err))
			continue
		}
		s.Add(report.Success(p))
	}
	return s
}

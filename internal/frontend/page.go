package frontend

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/report"
)

// imagesLiteral matches an `images: [...]` array literal in a page source.
var imagesLiteral = regexp.MustCompile(`images:\s*\[[^\]]*\]`)

var errNoImagesLiteral = errors.New("no images array literal found")

// RenderImages renders the array literal that replaces an existing one.
func RenderImages(refs []string) string {
	var b strings.Builder
	b.WriteString("images: [\n")
	for i, r := range refs {
		fmt.Fprintf(&b, "      '%s'", r)
		if i < len(refs)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("    ]")
	return b.String()
}

// RewritePage replaces every images array literal in the page at path with
// one listing refs. A page without such a literal is left untouched.
func RewritePage(path string, refs []string) report.Result {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := report.KindWrite
		if os.IsNotExist(err) {
			kind = report.KindMissingSource
		}
		return report.Failure(kind, path, err)
	}

	src := string(data)
	if !imagesLiteral.MatchString(src) {
		return report.Failure(report.KindRewriteMiss, path, errNoImagesLiteral)
	}
	out := imagesLiteral.ReplaceAllLiteralString(src, RenderImages(refs))
	if out == src {
		return report.Success(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return report.Failure(report.KindWrite, path, err)
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return report.Failure(report.KindWrite, path, err)
	}
	return report.Success(path)
}

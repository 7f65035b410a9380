package discovery

import (
	"fmt"
	"io"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/pipeline"
	"github.com/AnyUserName/printprep-cli/internal/profile"
)

// WriteDryRun lists what a conversion run would process. When p is not nil
// each previewed file also shows its planned output size.
func WriteDryRun(w io.Writer, s Stats, p *profile.Profile) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w, "DRY RUN - No files will be modified")
	fmt.Fprintln(w, rule)

	for _, f := range s.Folders {
		fmt.Fprintf(w, "📁 %s\n", f.Rel)
		fmt.Fprintf(w, "   Would process: %d images\n", f.Images)
		fmt.Fprintf(w, "   Formats: %s\n", strings.Join(f.Exts(), ", "))
		for _, file := range f.Preview {
			fmt.Fprintf(w, "     - %s (%s)%s\n", file.Name, file.Ext, planned(file, p))
		}
		if more := f.Images - len(f.Preview); more > 0 {
			fmt.Fprintf(w, "     ... and %d more files\n", more)
		}
		fmt.Fprintln(w)
	}

	total, _ := s.Totals()
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "TOTAL: Would process %d images\n", total)
	fmt.Fprintln(w, rule)
}

func planned(file File, p *profile.Profile) string {
	if p == nil {
		return ""
	}
	rec, err := pipeline.Inspect(file.Path)
	if err != nil {
		return " unreadable"
	}
	tw, th := p.Dimensions(rec.Width, rec.Height)
	return fmt.Sprintf(" %dx%d -> %dx%d", rec.Width, rec.Height, tw, th)
}

// WriteDiscover prints the discovery report.
func WriteDiscover(w io.Writer, s Stats) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "IMAGE DISCOVERY REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Source Directory: %s\n\n", s.Root)

	for _, f := range s.Folders {
		fmt.Fprintf(w, "📁 %s\n", f.Rel)
		fmt.Fprintf(w, "   Images: %d\n", f.Images)
		fmt.Fprintf(w, "   Size: %s\n", FormatSize(f.TotalSize))
		fmt.Fprintf(w, "   Formats: %s\n", strings.Join(f.Exts(), ", "))
		for _, fc := range f.Formats {
			fmt.Fprintf(w, "     %s: %d files\n", fc.Ext, fc.Count)
		}
		if len(f.Mismatch) > 0 {
			fmt.Fprintf(w, "   ⚠ Content does not match extension: %s\n", strings.Join(f.Mismatch, ", "))
		}
		fmt.Fprintln(w)
	}

	images, size := s.Totals()
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "TOTAL: %d images, %s\n", images, FormatSize(size))
	fmt.Fprintln(w, rule)
}

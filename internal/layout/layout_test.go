package layout

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/AnyUserName/printprep-cli/internal/classify"
	"github.com/AnyUserName/printprep-cli/internal/report"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opts = Options{Suffix: "_resized", Ext: ".webp"}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), 0o644))
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestFixCollapsesNestedOutputs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "print pictures")
	touch(t, filepath.Join(root, "banners and large formats", "vinyl banners_resized", "vinyl_banners_1.webp"))
	touch(t, filepath.Join(root, "banners and large formats", "custom flags_resized", "custom_flags_1.webp"))
	touch(t, filepath.Join(root, "banners and large formats_resized", "banners_top.webp"))

	log, _ := logtest.NewNullLogger()
	rep, err := NewFixer(opts, log).Fix(root)
	require.NoError(t, err)

	consolidated := filepath.Join(root, "print pictures_resized")
	assert.Equal(t, []string{"custom_flags_1.webp", "vinyl_banners_1.webp"}, listNames(t, consolidated))
	assert.NoDirExists(t, filepath.Join(root, "banners and large formats", "vinyl banners_resized"))
	assert.NoDirExists(t, filepath.Join(root, "banners and large formats", "custom flags_resized"))
	assert.Equal(t, 2, rep.Moved)
	assert.Len(t, rep.Removed, 2)
	assert.Empty(t, rep.Kept)

	// top-level outputs stay where they are
	assert.FileExists(t, filepath.Join(root, "banners and large formats_resized", "banners_top.webp"))

	// a second run finds nothing to do
	rep, err = NewFixer(opts, log).Fix(root)
	require.NoError(t, err)
	assert.Empty(t, rep.Found)
}

func TestFixConvergesFromDeeperNesting(t *testing.T) {
	root := filepath.Join(t.TempDir(), "src")
	touch(t, filepath.Join(root, "cat", "sub", "deep_resized", "deep_a.webp"))
	touch(t, filepath.Join(root, "cat", "sub_resized", "sub_b.webp"))

	log, _ := logtest.NewNullLogger()
	_, err := NewFixer(opts, log).Fix(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"deep_a.webp", "sub_b.webp"}, listNames(t, filepath.Join(root, "src_resized")))
	assert.NoDirExists(t, filepath.Join(root, "cat", "cat_resized"))
	assert.NoDirExists(t, filepath.Join(root, "cat", "sub", "deep_resized"))
}

func TestFixKeepsNonEmptyFolder(t *testing.T) {
	root := filepath.Join(t.TempDir(), "src")
	nested := filepath.Join(root, "cat", "sub_resized")
	touch(t, filepath.Join(nested, "sub_a.webp"))
	touch(t, filepath.Join(nested, "readme.txt"))

	log, hook := logtest.NewNullLogger()
	rep, err := NewFixer(opts, log).Fix(root)
	require.NoError(t, err)

	assert.Equal(t, []string{nested}, rep.Kept)
	assert.Equal(t, 1, rep.Summary.ByKind[report.KindCleanup])
	assert.FileExists(t, filepath.Join(nested, "readme.txt"))
	assert.FileExists(t, filepath.Join(root, "src_resized", "sub_a.webp"))

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Message == "Could not remove folder (not empty): "+nested {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestResortConservation(t *testing.T) {
	root := filepath.Join(t.TempDir(), "print pictures")
	consolidated := Consolidated(root, opts.Suffix)
	before := []string{
		"banners_a.webp", "vinyl_banners_b.webp", "business_cards_c.webp",
		"a3__posters_d.webp", "custom_mugs_e.webp", "mystery_f.webp",
	}
	for _, n := range before {
		touch(t, filepath.Join(consolidated, n))
	}
	touch(t, filepath.Join(consolidated, "notes.txt"))

	log, _ := logtest.NewNullLogger()
	rep := NewResorter(opts, log).Resort(consolidated, root, classify.DefaultCategoryTable())

	var after []string
	for _, cat := range []string{
		"banners and large formats", "business cards",
		"marketing and promotional materials", "promotional products and giveaways",
	} {
		after = append(after, listNames(t, filepath.Join(root, cat+"_resized"))...)
	}
	sort.Strings(after)
	assert.Equal(t, []string{
		"a3__posters_d.webp", "banners_a.webp", "business_cards_c.webp",
		"custom_mugs_e.webp", "vinyl_banners_b.webp",
	}, after)

	assert.Equal(t, []string{"mystery_f.webp"}, rep.Unmatched)
	assert.Equal(t, []string{"mystery_f.webp", "notes.txt"}, listNames(t, consolidated))
	assert.False(t, rep.Removed)
	assert.Equal(t, 1, rep.Summary.ByKind[report.KindUnmapped])
	assert.Equal(t, 1, rep.Summary.ByKind[report.KindCleanup])
	assert.Equal(t, 5, rep.Summary.OK)
}

func TestResortRemovesEmptyConsolidated(t *testing.T) {
	root := filepath.Join(t.TempDir(), "src")
	consolidated := Consolidated(root, opts.Suffix)
	touch(t, filepath.Join(consolidated, "stickers_1.webp"))

	log, _ := logtest.NewNullLogger()
	rep := NewResorter(opts, log).Resort(consolidated, root, classify.DefaultCategoryTable())

	assert.True(t, rep.Removed)
	assert.NoDirExists(t, consolidated)
	assert.Equal(t, []string{"stickers_1.webp"}, rep.Moved["stickers and labels"])
}

func TestResortNoOpWhenAlreadyPlaced(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "banners and large formats_resized")
	touch(t, filepath.Join(folder, "banners_img1.webp"))
	table := classify.Table{{Prefix: "banners_", Slug: "banners and large formats"}}

	log, _ := logtest.NewNullLogger()
	rep := NewResorter(opts, log).Resort(folder, root, table)

	assert.FileExists(t, filepath.Join(folder, "banners_img1.webp"))
	assert.False(t, rep.Removed)
	assert.Zero(t, rep.Summary.Failed)
}

func TestResortMissingConsolidated(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	rep := NewResorter(opts, log).Resort(filepath.Join(t.TempDir(), "nope"), t.TempDir(), nil)
	assert.Equal(t, 1, rep.Summary.ByKind[report.KindMissingSource])
}

func TestStructure(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b_resized", "1.webp"))
	touch(t, filepath.Join(root, "b_resized", "2.webp"))
	touch(t, filepath.Join(root, "a_resized", "1.webp"))
	touch(t, filepath.Join(root, "a", "x.png"))

	got, err := Structure(root, opts)
	require.NoError(t, err)
	assert.Equal(t, []FolderCount{{"a_resized", 1}, {"b_resized", 2}}, got)
}

func TestDestinationsCleanup(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "business cards", "c.png"))
	touch(t, filepath.Join(root, "business cards_resized", "business_cards_c.webp"))
	touch(t, filepath.Join(root, "stickers and labels", "s.png"))

	found, err := ExistingDestinations(root, "_resized")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "business cards_resized")}, found)

	s := RemoveDestinations(found)
	assert.Equal(t, 1, s.OK)
	assert.NoDirExists(t, filepath.Join(root, "business cards_resized"))
	assert.FileExists(t, filepath.Join(root, "business cards", "c.png"))
}

func TestCopyFilePreservesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.webp")
	touch(t, src)
	require.NoError(t, CopyFile(src, filepath.Join(dir, "b.webp")))
	assert.FileExists(t, src)
	data, err := os.ReadFile(filepath.Join(dir, "b.webp"))
	require.NoError(t, err)
	assert.Equal(t, "a.webp", string(data))
}

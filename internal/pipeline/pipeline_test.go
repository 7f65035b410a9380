package pipeline

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/printprep-cli/internal/classify"
	"github.com/AnyUserName/printprep-cli/internal/config"
	"github.com/AnyUserName/printprep-cli/internal/encoder"
	"github.com/AnyUserName/printprep-cli/internal/profile"
	"github.com/AnyUserName/printprep-cli/internal/report"
	"github.com/chai2010/webp"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int, alpha uint8) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 40, A: alpha})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func webpConfig(t *testing.T, path string) image.Config {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := webp.DecodeConfig(f)
	require.NoError(t, err)
	return cfg
}

func newWalker(t *testing.T, p profile.Profile) (*Walker, *logtest.Hook) {
	t.Helper()
	log, hook := logtest.NewNullLogger()
	conv, err := NewConverter(p, encoder.NewRegistry(), log)
	require.NoError(t, err)
	return NewWalker(conv, classify.DefaultFolderTable(), "_resized", log), hook
}

func allFormats() Filter {
	return NewFilter([]string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".gif", ".webp"})
}

func TestConvertMissingSourceCountsOnlyFailure(t *testing.T) {
	w, hook := newWalker(t, profile.Get("web"))
	dir := t.TempDir()

	c := w.ConvertFile(filepath.Join(dir, "nope.png"), filepath.Join(dir, "out", "x.webp"))

	assert.False(t, c.OK)
	assert.Equal(t, report.KindMissingSource, c.Kind)
	assert.Equal(t, Counts{Processed: 0, Failed: 1}, w.Counts())
	assert.NoDirExists(t, filepath.Join(dir, "out"))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, filepath.Join(dir, "nope.png"), hook.LastEntry().Data["path"])
}

func TestConvertRejectsNonImageContent(t *testing.T) {
	w, _ := newWalker(t, profile.Get("web"))
	dir := t.TempDir()
	src := filepath.Join(dir, "flyer.png")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4\n%fake pdf body\n"), 0o644))

	c := w.ConvertFile(src, filepath.Join(dir, "flyer.webp"))
	assert.Equal(t, report.KindDecode, c.Kind)
	assert.Contains(t, c.Err.Error(), "not an image")
}

func TestConvertUndecodable(t *testing.T) {
	w, _ := newWalker(t, profile.Get("web"))
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(src, []byte("definitely not pixels"), 0o644))

	c := w.ConvertFile(src, filepath.Join(dir, "broken.webp"))
	assert.Equal(t, report.KindDecode, c.Kind)
	assert.Equal(t, 1, w.Counts().Failed)
}

func TestConvertResizesWithinBounds(t *testing.T) {
	p := profile.Get("web")
	p.MaxWidth, p.MaxHeight = 100, 100
	w, _ := newWalker(t, p)
	dir := t.TempDir()
	src := filepath.Join(dir, "wide.png")
	writePNG(t, src, 400, 200, 255)

	dst := filepath.Join(dir, "deep", "er", "wide.webp")
	c := w.ConvertFile(src, dst)
	require.True(t, c.OK, "%v", c.Err)

	assert.Equal(t, 100, c.Width)
	assert.Equal(t, 50, c.Height)
	assert.Equal(t, 400, c.Source.Width)
	assert.Equal(t, "png", c.Source.Format)
	assert.Len(t, c.Hash, 16)

	cfg := webpConfig(t, dst)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestConvertFlattensTransparencyOntoWhite(t *testing.T) {
	w, _ := newWalker(t, profile.Get("web"))
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.png")
	writePNG(t, src, 32, 32, 0)

	dst := filepath.Join(dir, "logo.webp")
	require.True(t, w.ConvertFile(src, dst).OK)

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	img, err := webp.Decode(f)
	require.NoError(t, err)

	r, g, b, a := img.At(16, 16).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.Greater(t, r>>8, uint32(245))
	assert.Greater(t, g>>8, uint32(245))
	assert.Greater(t, b>>8, uint32(245))
}

func TestFlattenKeepsOpaqueFormats(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(0, 0, color.Gray{Y: 10})
	out := flatten(gray)
	assert.Equal(t, color.NRGBA{R: 10, G: 10, B: 10, A: 255}, out.NRGBAAt(0, 0))

	pal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Transparent, color.Black})
	pal.SetColorIndex(1, 1, 1)
	out = flatten(pal)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(1, 1))
}

func TestWalkAllEndToEnd(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "banners and large formats")
	writePNG(t, filepath.Join(folder, "img1.png"), 300, 200, 255)
	require.NoError(t, os.WriteFile(filepath.Join(folder, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "loose.png"), nil, 0o644))

	w, _ := newWalker(t, profile.Get("web"))
	var seen []Conversion
	w.OnResult = func(c Conversion) { seen = append(seen, c) }

	counts, err := w.WalkAll(root, allFormats())
	require.NoError(t, err)
	assert.Equal(t, Counts{Processed: 1, Failed: 0}, counts)
	require.Len(t, seen, 1)

	out := filepath.Join(root, "banners and large formats_resized", "banners_img1.webp")
	require.FileExists(t, out)
	cfg := webpConfig(t, out)
	assert.LessOrEqual(t, cfg.Width, 300)
	assert.LessOrEqual(t, cfg.Height, 200)

	// loose root files are not converted
	assert.NoFileExists(t, filepath.Join(root, "loose_resized"))
}

func TestWalkNestedFoldersProduceNestedOutputs(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "banners and large formats", "vinyl banners", "v1.png"), 20, 20, 255)
	writeJPEG(t, filepath.Join(root, "banners and large formats", "vinyl banners", "v2.JPG"), 20, 20)

	w, _ := newWalker(t, profile.Get("web"))
	w.Walk(filepath.Join(root, "banners and large formats"), allFormats())

	assert.FileExists(t, filepath.Join(root, "banners and large formats", "vinyl banners_resized", "vinyl_banners_v1.webp"))
	assert.FileExists(t, filepath.Join(root, "banners and large formats", "vinyl banners_resized", "vinyl_banners_v2.webp"))
	// the parent had no direct images, so no output folder is created for it
	assert.NoDirExists(t, filepath.Join(root, "banners and large formats_resized"))
	assert.Equal(t, 2, w.Counts().Processed)
}

func TestWalkFormatFilter(t *testing.T) {
	root := t.TempDir()
	cat := filepath.Join(root, "stickers and labels")
	writePNG(t, filepath.Join(cat, "a.png"), 10, 10, 255)
	writeJPEG(t, filepath.Join(cat, "b.jpg"), 10, 10)

	w, _ := newWalker(t, profile.Get("web"))
	_, err := w.WalkAll(root, OnlyFormat("PNG"))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "stickers and labels_resized", "stickers_a.webp"))
	assert.NoFileExists(t, filepath.Join(root, "stickers and labels_resized", "stickers_b.webp"))
	assert.Equal(t, 1, w.Counts().Processed)
}

func TestWalkSkipsOutputFolders(t *testing.T) {
	root := t.TempDir()
	cat := filepath.Join(root, "business cards")
	writePNG(t, filepath.Join(cat, "old_resized", "x.png"), 10, 10, 255)

	w, _ := newWalker(t, profile.Get("web"))
	_, err := w.WalkAll(root, allFormats())
	require.NoError(t, err)
	assert.Equal(t, Counts{}, w.Counts())
}

func TestWalkMissingFolder(t *testing.T) {
	w, _ := newWalker(t, profile.Get("web"))
	res := w.Walk(filepath.Join(t.TempDir(), "gone"), allFormats())
	assert.Equal(t, report.KindMissingSource, res.Kind)
}

func TestWalkAllUnreadableRoot(t *testing.T) {
	w, _ := newWalker(t, profile.Get("web"))
	_, err := w.WalkAll(filepath.Join(t.TempDir(), "gone"), allFormats())
	assert.Error(t, err)
}

func TestDestPath(t *testing.T) {
	w, _ := newWalker(t, profile.Get("web"))
	got := w.DestPath(filepath.Join("/src", "photo and speciality"), "Canvas 01.tif")
	assert.Equal(t, filepath.Join("/src", "photo and speciality_resized", "photo_specialty_Canvas 01.webp"), got)
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards", "c.png")
	writePNG(t, path, 12, 7, 255)

	rec, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "cards", rec.Folder)
	assert.Equal(t, ".png", rec.Ext)
	assert.Equal(t, 12, rec.Width)
	assert.Equal(t, 7, rec.Height)
	assert.Positive(t, rec.Size)
}

func TestFilterMatch(t *testing.T) {
	f := NewFilter([]string{"png", ".JPG"})
	assert.True(t, f.Match("a.PNG"))
	assert.True(t, f.Match("b.jpg"))
	assert.False(t, f.Match("c.jpeg"))
	assert.False(t, f.Match("png"))
}

func TestWalkAllConvertsNetpbm(t *testing.T) {
	root := t.TempDir()
	cards := filepath.Join(root, "business cards")
	require.NoError(t, os.MkdirAll(cards, 0o755))
	ppm := "P3\n2 2\n255\n255 0 0  0 255 0\n0 0 255  255 255 255\n"
	require.NoError(t, os.WriteFile(filepath.Join(cards, "card.ppm"), []byte(ppm), 0o644))
	pgm := "P2\n3 1\n255\n0 128 255\n"
	require.NoError(t, os.WriteFile(filepath.Join(cards, "gray.pgm"), []byte(pgm), 0o644))

	w, _ := newWalker(t, profile.Get("web"))
	counts, err := w.WalkAll(root, NewFilter(config.DefaultSupportedFormats))
	require.NoError(t, err)
	assert.Equal(t, Counts{Processed: 2, Failed: 0}, counts)

	out := filepath.Join(root, "business cards_resized", "business_cards_card.webp")
	cfg := webpConfig(t, out)
	assert.Equal(t, 2, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
	assert.FileExists(t, filepath.Join(root, "business cards_resized", "business_cards_gray.webp"))
}

func TestConvertWebPSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "stickers", "s.webp")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, webp.Encode(f, image.NewNRGBA(image.Rect(0, 0, 24, 12)), &webp.Options{Quality: 90}))
	require.NoError(t, f.Close())

	w, _ := newWalker(t, profile.Get("web"))
	c := w.ConvertFile(src, filepath.Join(dir, "out.webp"))
	require.True(t, c.OK, "%v", c.Err)
	assert.Equal(t, "webp", c.Source.Format)
	assert.Equal(t, 24, c.Width)
	assert.Equal(t, 12, c.Height)
}

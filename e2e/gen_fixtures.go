//go:build ignore

// gen_fixtures creates a small category tree for smoke-testing printprep.
// Usage: go run gen_fixtures.go <source_dir>
//
// Then, for example:
//
//	printprep --source <source_dir> --dry-run
//	printprep --source <source_dir> && printprep --source <source_dir> fix
//	printprep --source <source_dir> resort
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <source_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	n := 0

	// Top-level images, one per category.
	for _, cat := range []string{
		"banners and large formats",
		"business cards",
		"stickers and labels",
	} {
		writeJPEG(filepath.Join(dir, cat, "overview.jpg"), gradient(2400, 1350))
		n++
	}

	// Nested product folders; their outputs are what fix collapses.
	nested := map[string][]string{
		"banners and large formats":          {"vinyl banners", "custom flags"},
		"promotional products and giveaways": {"custom mugs"},
	}
	for cat, subs := range nested {
		for _, sub := range subs {
			for i := 1; i <= 3; i++ {
				name := fmt.Sprintf("photo-%d.png", i)
				writePNG(filepath.Join(dir, cat, sub, name), solidWithBorder(800, 600, uint8(i*60)))
				n++
			}
		}
	}

	// Transparent logo, flattened onto white when converted.
	writePNG(filepath.Join(dir, "stickers and labels", "logo.png"), alphaGradient(300, 300))
	n++

	// Something that is not an image despite its extension.
	must(os.WriteFile(filepath.Join(dir, "business cards", "broken.jpg"), []byte("not an image"), 0o644))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d images (+1 broken) in %s\n", n, dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func create(path string) *os.File {
	must(os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	must(err)
	return f
}

func writePNG(path string, img *image.NRGBA) {
	f := create(path)
	defer f.Close()
	must(png.Encode(f, img))
}

func writeJPEG(path string, img *image.NRGBA) {
	f := create(path)
	defer f.Close()
	must(jpeg.Encode(f, img, &jpeg.Options{Quality: 85}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

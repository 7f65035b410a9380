package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
)

// AVIFEncoder encodes images to AVIF by shelling out to avifenc.
// Install: brew install libavif / apt install libavif-bin
type AVIFEncoder struct {
	once        sync.Once
	available   bool
	avifencPath string
}

func (e *AVIFEncoder) Format() string    { return "avif" }
func (e *AVIFEncoder) Extension() string { return "avif" }

func (e *AVIFEncoder) Available() bool {
	e.once.Do(func() {
		path, err := exec.LookPath("avifenc")
		if err == nil {
			e.available = true
			e.avifencPath = path
		}
	})
	return e.available
}

func (e *AVIFEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("avifenc not found in PATH; install with: apt install libavif-bin")
	}

	// avifenc quantizers run 0 (best) to 63 (worst).
	q := 63 - (clampQuality(quality) * 63 / 100)

	dir, err := os.MkdirTemp("", "printprep_avif_*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	srcPath := filepath.Join(dir, "src.png")
	dstPath := filepath.Join(dir, "dst.avif")

	f, err := os.Create(srcPath)
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp png: %w", err)
	}

	cmd := exec.Command(e.avifencPath,
		"--min", strconv.Itoa(q),
		"--max", strconv.Itoa(q),
		"--speed", "6",
		srcPath,
		dstPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("avifenc: %w: %s", err, string(out))
	}

	return os.ReadFile(dstPath)
}

package encoder

import (
	"bytes"
	"image"

	"github.com/chai2010/webp"
)

// WebPEncoder encodes lossy WebP through libwebp (cgo).
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }
func (e *WebPEncoder) Available() bool   { return true }

func (e *WebPEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	opts := &webp.Options{
		Lossless: false,
		Quality:  float32(clampQuality(quality)),
	}
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package pipeline

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/encoder"
	"github.com/AnyUserName/printprep-cli/internal/hasher"
	"github.com/AnyUserName/printprep-cli/internal/profile"
	"github.com/AnyUserName/printprep-cli/internal/report"
	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"

	// WebP sources decode through chai2010/webp, registered by the encoder
	// package.
	_ "github.com/biessek/golang-ico"
	_ "github.com/spakin/netpbm"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// sniffLen is how many leading bytes filetype needs to match a signature.
const sniffLen = 261

// Conversion is the outcome of converting one file.
type Conversion struct {
	report.Result
	Source ImageRecord
	Dest   string
	Width  int
	Height int
	Size   int64
	Hash   string
}

// Converter resizes and re-encodes single images.
type Converter struct {
	profile profile.Profile
	enc     encoder.Encoder
	log     logrus.FieldLogger
}

// NewConverter resolves the profile's output format against the registry.
// An unsupported format is a configuration error.
func NewConverter(p profile.Profile, registry *encoder.Registry, log logrus.FieldLogger) (*Converter, error) {
	enc, err := registry.Resolve(p.Format)
	if err != nil {
		return nil, err
	}
	return &Converter{profile: p, enc: enc, log: log}, nil
}

// Extension returns the output file extension without dot.
func (c *Converter) Extension() string {
	return c.enc.Extension()
}

// Profile returns the profile conversions run with.
func (c *Converter) Profile() profile.Profile {
	return c.profile
}

// Convert reads src, flattens it onto white when it carries transparency,
// fits it within the profile bounds and writes it to dst in the output
// format. An existing dst is overwritten. Failures are returned in the
// result and logged; Convert never panics past its boundary.
func (c *Converter) Convert(src, dst string) (conv Conversion) {
	conv.Dest = dst
	conv.Source.Path = src
	log := c.log.WithField("path", src)

	defer func() {
		if r := recover(); r != nil {
			conv.Result = report.Failure(report.KindDecode, src, fmt.Errorf("panic: %v", r))
		}
		if !conv.OK {
			log.WithField("kind", conv.Kind).Errorf("Error processing %s: %v", src, conv.Err)
		}
	}()

	log.Infof("Processing: %s", filepath.Base(src))

	img, rec, res := c.decode(src)
	conv.Source = rec
	if !res.OK {
		conv.Result = res
		return conv
	}
	log.Infof("Original: %dx%d (%s)", rec.Width, rec.Height, rec.Format)

	w, h := c.profile.Dimensions(rec.Width, rec.Height)
	if w <= 0 || h <= 0 {
		conv.Result = report.Failure(report.KindInvalidDimensions, src,
			fmt.Errorf("%dx%d scales to %dx%d", rec.Width, rec.Height, w, h))
		return conv
	}
	log.Infof("Resizing to: %dx%d", w, h)

	var out image.Image = flatten(img)
	if w != rec.Width || h != rec.Height {
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		conv.Result = report.Failure(report.KindWrite, src, fmt.Errorf("create %s: %w", filepath.Dir(dst), err))
		return conv
	}

	data, err := c.enc.Encode(out, c.profile.Quality)
	if err != nil {
		conv.Result = report.Failure(report.KindEncode, src, fmt.Errorf("encode %s: %w", c.enc.Format(), err))
		return conv
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		conv.Result = report.Failure(report.KindWrite, src, fmt.Errorf("write %s: %w", dst, err))
		return conv
	}

	conv.Result = report.Success(src)
	conv.Width = w
	conv.Height = h
	conv.Size = int64(len(data))
	conv.Hash = hasher.ContentHash(data, 16)
	log.Infof("Saved: %s", dst)
	return conv
}

// decode opens src, rejects content that is recognizably not an image, and
// decodes it.
func (c *Converter) decode(src string) (image.Image, ImageRecord, report.Result) {
	rec := ImageRecord{Path: src, Folder: filepath.Base(filepath.Dir(src)), Ext: strings.ToLower(filepath.Ext(src))}

	f, err := os.Open(src)
	if err != nil {
		kind := report.KindDecode
		if os.IsNotExist(err) {
			kind = report.KindMissingSource
		}
		return nil, rec, report.Failure(kind, src, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		rec.Size = info.Size()
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, rec, report.Failure(report.KindDecode, src, err)
	}
	if kind, _ := filetype.Match(head[:n]); kind != filetype.Unknown && kind.MIME.Type != "image" {
		return nil, rec, report.Failure(report.KindDecode, src,
			fmt.Errorf("content is %s, not an image", kind.MIME.Value))
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, rec, report.Failure(report.KindDecode, src, err)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, rec, report.Failure(report.KindDecode, src, fmt.Errorf("decode: %w", err))
	}
	b := img.Bounds()
	rec.Format = format
	rec.Width = b.Dx()
	rec.Height = b.Dy()
	return img, rec, report.Success(src)
}

// flatten returns an opaque copy of img. Paletted and alpha-carrying pixel
// formats are composited onto white; everything else is converted as is.
func flatten(img image.Image) *image.NRGBA {
	switch img.(type) {
	case *image.Paletted, *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64,
		*image.Alpha, *image.Alpha16, *image.NYCbCrA:
		b := img.Bounds()
		bg := imaging.New(b.Dx(), b.Dy(), color.White)
		return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
	default:
		return imaging.Clone(img)
	}
}

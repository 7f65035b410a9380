package encoder

import (
	"fmt"
	"strings"
)

// Registry holds the encoders usable on this machine.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	all := []Encoder{
		&WebPEncoder{},
		&AVIFEncoder{},
		&JPEGEncoder{},
		&PNGEncoder{},
	}

	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}

	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
// "jpg" is accepted as an alias of "jpeg".
func (r *Registry) Get(format string) Encoder {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "jpg" {
		format = "jpeg"
	}
	return r.encoders[format]
}

// Resolve is Get with an error naming the available formats.
func (r *Registry) Resolve(format string) (Encoder, error) {
	if enc := r.Get(format); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("target format %q not supported (%s)", format, r.String())
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	// Maintain priority order.
	for _, f := range []string{"webp", "avif", "jpeg", "png"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}

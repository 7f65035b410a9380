package profile

// Profile defines conversion parameters for a target use.
type Profile struct {
	Name      string
	Format    string // output format, e.g. "webp"
	Quality   int    // encoding quality 1-100
	MaxWidth  int
	MaxHeight int
}

// DefaultName is the profile used when none is configured.
const DefaultName = "web"

// Built-in profiles.
var profiles = map[string]Profile{
	"web": {
		Name:      "web",
		Format:    "webp",
		Quality:   85,
		MaxWidth:  1920,
		MaxHeight: 1080,
	},
	"web-hq": {
		Name:      "web-hq",
		Format:    "webp",
		Quality:   92,
		MaxWidth:  2560,
		MaxHeight: 1440,
	},
	"thumb": {
		Name:      "thumb",
		Format:    "webp",
		Quality:   80,
		MaxWidth:  640,
		MaxHeight: 640,
	},
	"jpeg": {
		Name:      "jpeg",
		Format:    "jpeg",
		Quality:   85,
		MaxWidth:  1920,
		MaxHeight: 1080,
	},
}

// Get returns a profile by name. Falls back to web if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Names returns the built-in profile names.
func Names() []string {
	return []string{"web", "web-hq", "thumb", "jpeg"}
}

// Dimensions plans the output size of a w x h source under this profile.
func (p Profile) Dimensions(w, h int) (int, int) {
	return Plan(w, h, p.MaxWidth, p.MaxHeight)
}

// Plan returns the size of a w x h image scaled to fit within maxW x maxH,
// preserving aspect ratio. Images that already fit are returned unchanged;
// nothing is ever upscaled. Scaled dimensions are truncated, so degenerate
// inputs can yield 0; callers must reject non-positive results.
func Plan(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := float64(maxW) / float64(w)
	if hs := float64(maxH) / float64(h); hs < scale {
		scale = hs
	}
	return int(float64(w) * scale), int(float64(h) * scale)
}

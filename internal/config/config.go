package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/classify"
	"github.com/AnyUserName/printprep-cli/internal/profile"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the run configuration. It is built once by Load and passed to
// every component; nothing reads configuration from package state.
type Config struct {
	SourceDir         string `yaml:"source_dir"`
	DestinationSuffix string `yaml:"destination_suffix"`

	// Profile selects built-in conversion defaults; the fields below
	// override it when non-zero.
	Profile      string `yaml:"profile"`
	TargetFormat string `yaml:"target_format"`
	Quality      int    `yaml:"quality"`
	MaxWidth     int    `yaml:"max_width"`
	MaxHeight    int    `yaml:"max_height"`

	SupportedFormats []string `yaml:"supported_formats"`

	Folders    classify.Table     `yaml:"folders"`
	Categories classify.Table     `yaml:"categories"`
	Products   []classify.Product `yaml:"products"`

	Log      LogConfig      `yaml:"log"`
	Frontend FrontendConfig `yaml:"frontend"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// FrontendConfig locates the external project that stage 3 publishes into.
type FrontendConfig struct {
	PublicDir string `yaml:"public_dir"`
	AppDir    string `yaml:"app_dir"`    // product pages live at {app_dir}/{product.path}/{page_file}
	ImagesDir string `yaml:"images_dir"` // holds the *_resized category folders; defaults to {public_dir}/print images
	URLPrefix string `yaml:"url_prefix"`
	PageFile  string `yaml:"page_file"`
	MaxImages int    `yaml:"max_images"`
}

// DefaultSupportedFormats is the recognized input allow-set.
var DefaultSupportedFormats = []string{
	".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif",
	".gif", ".webp", ".ico", ".ppm", ".pgm", ".pbm",
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DestinationSuffix: "_resized",
		Profile:           profile.DefaultName,
		SupportedFormats:  append([]string(nil), DefaultSupportedFormats...),
		Folders:           classify.DefaultFolderTable(),
		Categories:        classify.DefaultCategoryTable(),
		Products:          classify.DefaultProducts(),
		Log: LogConfig{
			Level: "info",
			File:  "image_processing.log",
		},
		Frontend: FrontendConfig{
			URLPrefix: "/images/products",
			PageFile:  "page.tsx",
			MaxImages: 4,
		},
	}
}

// env holds the PRINTPREP_* overrides.
type env struct {
	SourceDir         string `envconfig:"SOURCE_DIR"`
	Profile           string `envconfig:"PROFILE"`
	TargetFormat      string `envconfig:"TARGET_FORMAT"`
	Quality           int    `envconfig:"QUALITY"`
	LogLevel          string `envconfig:"LOG_LEVEL"`
	LogFile           string `envconfig:"LOG_FILE"`
	FrontendPublicDir string `envconfig:"FRONTEND_PUBLIC_DIR"`
	FrontendAppDir    string `envconfig:"FRONTEND_APP_DIR"`
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "printprep"

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty) and PRINTPREP_* environment variables, in that order.
// The result is not validated; call Validate once flags are applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var e env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.applyEnv(e)

	cfg.SupportedFormats = normalizeExts(cfg.SupportedFormats)
	return &cfg, nil
}

func (c *Config) applyEnv(e env) {
	if e.SourceDir != "" {
		c.SourceDir = e.SourceDir
	}
	if e.Profile != "" {
		c.Profile = e.Profile
	}
	if e.TargetFormat != "" {
		c.TargetFormat = e.TargetFormat
	}
	if e.Quality != 0 {
		c.Quality = e.Quality
	}
	if e.LogLevel != "" {
		c.Log.Level = e.LogLevel
	}
	if e.LogFile != "" {
		c.Log.File = e.LogFile
	}
	if e.FrontendPublicDir != "" {
		c.Frontend.PublicDir = e.FrontendPublicDir
	}
	if e.FrontendAppDir != "" {
		c.Frontend.AppDir = e.FrontendAppDir
	}
}

// Validate checks that required configuration fields are set and sane.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if c.DestinationSuffix == "" {
		return fmt.Errorf("destination_suffix is required")
	}
	if strings.ContainsRune(c.DestinationSuffix, filepath.Separator) {
		return fmt.Errorf("destination_suffix %q must not contain a path separator", c.DestinationSuffix)
	}
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100 (0 = profile default), got %d", c.Quality)
	}
	if c.MaxWidth < 0 || c.MaxHeight < 0 {
		return fmt.Errorf("max_width/max_height must be positive")
	}
	if len(c.SupportedFormats) == 0 {
		return fmt.Errorf("supported_formats is empty")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Frontend.MaxImages <= 0 {
		return fmt.Errorf("frontend.max_images must be positive, got %d", c.Frontend.MaxImages)
	}
	return nil
}

// CheckSource verifies that the source root is an accessible directory.
func (c *Config) CheckSource() error {
	info, err := os.Stat(c.SourceDir)
	if err != nil {
		return fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source directory %s is not a directory", c.SourceDir)
	}
	return nil
}

// EffectiveProfile resolves the named profile and applies overrides.
func (c *Config) EffectiveProfile() profile.Profile {
	p := profile.Get(c.Profile)
	if c.TargetFormat != "" {
		p.Format = strings.ToLower(strings.TrimPrefix(c.TargetFormat, "."))
	}
	if c.Quality > 0 {
		p.Quality = c.Quality
	}
	if c.MaxWidth > 0 {
		p.MaxWidth = c.MaxWidth
	}
	if c.MaxHeight > 0 {
		p.MaxHeight = c.MaxHeight
	}
	return p
}

// ImagesRoot returns the folder holding *_resized category folders for the
// front-end publish step.
func (f FrontendConfig) ImagesRoot() string {
	if f.ImagesDir != "" {
		return f.ImagesDir
	}
	return filepath.Join(f.PublicDir, "print images")
}

// NormalizeExt lowercases ext and ensures a leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		if e = NormalizeExt(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/AnyUserName/printprep-cli/internal/config"
	"github.com/AnyUserName/printprep-cli/internal/encoder"
	"github.com/AnyUserName/printprep-cli/internal/layout"
	"github.com/AnyUserName/printprep-cli/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"

	configPath   string
	sourceDir    string
	profileName  string
	quality      int
	targetFormat string
	verbose      bool

	// Set up by PersistentPreRunE for every command that needs them.
	cfg       *config.Config
	log       *logrus.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "printprep",
	Short: "Batch image converter and reorganizer for print product catalogs",
	Long: `printprep converts a tree of category folders full of product photos
into web-ready images, then reorganizes the results.

  printprep             convert every top-level folder into {folder}_resized
  printprep fix         collapse nested output folders
  printprep resort      sort converted files back into category folders
  printprep publish     copy images into the front-end and update product pages`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runBatch,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&sourceDir, "source", "", "source root (overrides source_dir)")
	pf.StringVarP(&profileName, "profile", "p", "", "conversion profile (web, web-hq, thumb, jpeg)")
	pf.IntVarP(&quality, "quality", "q", 0, "quality 1-100 (0 = profile default)")
	pf.StringVar(&targetFormat, "target-format", "", "output format (webp, jpeg, png, avif)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"printprep %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// annotationNoSource marks commands that run without a source tree.
const annotationNoSource = "printprep/no-source"

var noSource = map[string]string{annotationNoSource: "true"}

// setup loads configuration, applies flags and opens the logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		c.SourceDir = sourceDir
	}
	if flags.Changed("profile") {
		c.Profile = profileName
	}
	if flags.Changed("quality") {
		c.Quality = quality
	}
	if flags.Changed("target-format") {
		c.TargetFormat = targetFormat
	}
	if flags.Changed("max-width") {
		c.MaxWidth = maxWidth
	}
	if flags.Changed("max-height") {
		c.MaxHeight = maxHeight
	}

	if cmd.Annotations[annotationNoSource] == "" {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if err := c.CheckSource(); err != nil {
			return err
		}
	}

	l, closer, err := logging.New(c.Log, os.Stdout, verbose)
	if err != nil {
		return err
	}
	cfg, log, logCloser = c, l, closer
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// layoutOptions returns the options for the layout passes, with the
// extension of the configured output format.
func layoutOptions() (layout.Options, error) {
	enc, err := encoder.NewRegistry().Resolve(cfg.EffectiveProfile().Format)
	if err != nil {
		return layout.Options{}, err
	}
	return layout.Options{Suffix: cfg.DestinationSuffix, Ext: "." + enc.Extension()}, nil
}

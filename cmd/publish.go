package cmd

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/printprep-cli/internal/frontend"
	"github.com/spf13/cobra"
)

var (
	publishPublicDir string
	publishAppDir    string
	publishImagesDir string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Copy converted images into the front-end project and update product pages",
	Long: `publish scans every *_resized folder in the front-end images folder,
groups converted files by product prefix, copies the first images of each
product to {public}/images/products/{product}/{product}-{n}.{ext} and rewrites
the product page's images array to reference exactly those copies.
Source files are never moved.`,
	Args:        cobra.NoArgs,
	Annotations: noSource,
	RunE:        runPublish,
}

func init() {
	f := publishCmd.Flags()
	f.StringVar(&publishPublicDir, "public-dir", "", "front-end public folder (overrides frontend.public_dir)")
	f.StringVar(&publishAppDir, "app-dir", "", "front-end app folder (overrides frontend.app_dir)")
	f.StringVar(&publishImagesDir, "images-dir", "", "folder holding the *_resized category folders")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, _ []string) error {
	fc := cfg.Frontend
	if publishPublicDir != "" {
		fc.PublicDir = publishPublicDir
	}
	if publishAppDir != "" {
		fc.AppDir = publishAppDir
	}
	if publishImagesDir != "" {
		fc.ImagesDir = publishImagesDir
	}
	if fc.PublicDir == "" || fc.AppDir == "" {
		return errors.New("frontend.public_dir and frontend.app_dir are required")
	}

	opts, err := layoutOptions()
	if err != nil {
		return err
	}
	p := frontend.NewPublisher(fc, cfg.DestinationSuffix, opts.Ext, log)

	c, err := p.Collect(fc.ImagesRoot(), cfg.Products)
	if err != nil {
		return err
	}
	rep := p.Publish(c)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	for _, pub := range rep.Products {
		fmt.Fprintf(out, "  %-30s %d images -> %s\n", pub.Product.Subcategory, len(pub.URLs), pub.Page)
	}
	if len(c.Unmatched) > 0 {
		fmt.Fprintf(out, "  No product for %d files:\n", len(c.Unmatched))
		for _, name := range c.Unmatched {
			fmt.Fprintf(out, "    • %s\n", name)
		}
	}
	for _, f := range rep.Summary.Failures {
		fmt.Fprintf(out, "    ⚠ %s\n", f)
	}
	fmt.Fprintf(out, "  Result: %s\n", rep.Summary)
	fmt.Fprintln(out)
	return nil
}

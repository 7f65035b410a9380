// Package frontend publishes converted images into a Next.js project: it
// copies a capped set of images per product into the public folder and
// points each product page at them.
package frontend

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/classify"
	"github.com/AnyUserName/printprep-cli/internal/config"
	"github.com/AnyUserName/printprep-cli/internal/layout"
	"github.com/AnyUserName/printprep-cli/internal/report"
	"github.com/sirupsen/logrus"
)

// Bucket holds the converted images collected for one product.
type Bucket struct {
	Product classify.Product
	Images  []string // absolute paths, in collection order
}

// Collection is the result of Collect.
type Collection struct {
	Buckets   []*Bucket // in product table order, empty buckets included
	Unmatched []string  // file names no product prefix matched
}

// Bucket returns the bucket for subcategory, or nil.
func (c Collection) Bucket(subcategory string) *Bucket {
	for _, b := range c.Buckets {
		if b.Product.Subcategory == subcategory {
			return b
		}
	}
	return nil
}

// Published is one product whose images were copied.
type Published struct {
	Product classify.Product
	URLs    []string
	Page    string // page file that was rewritten
}

// PublishReport summarizes a Publish run.
type PublishReport struct {
	Products []Published
	Summary  report.Summary
}

// Publisher copies converted images into the front-end project.
type Publisher struct {
	cfg    config.FrontendConfig
	suffix string
	ext    string // converted file extension with dot
	log    logrus.FieldLogger
}

// NewPublisher creates a publisher. suffix identifies output folders and ext
// (".webp") the converted files inside them.
func NewPublisher(cfg config.FrontendConfig, suffix, ext string, log logrus.FieldLogger) *Publisher {
	return &Publisher{cfg: cfg, suffix: suffix, ext: ext, log: log}
}

// Collect groups the converted files of every output folder directly under
// imagesDir by product. Files keep directory order within each folder.
func (p *Publisher) Collect(imagesDir string, products []classify.Product) (Collection, error) {
	var c Collection
	for _, prod := range products {
		c.Buckets = append(c.Buckets, &Bucket{Product: prod})
	}

	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return c, fmt.Errorf("read images dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() || !strings.HasSuffix(e.Name(), p.suffix) {
			continue
		}
		dir := filepath.Join(imagesDir, e.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			p.log.WithField("folder", dir).Warnf("Cannot read %s: %v", dir, err)
			continue
		}
		p.log.Infof("Scanning %s", e.Name())

		for _, f := range files {
			if !f.Type().IsRegular() || !strings.EqualFold(filepath.Ext(f.Name()), p.ext) {
				continue
			}
			i := matchIndex(f.Name(), products)
			if i < 0 {
				c.Unmatched = append(c.Unmatched, f.Name())
				p.log.Debugf("No product for %s", f.Name())
				continue
			}
			c.Buckets[i].Images = append(c.Buckets[i].Images, filepath.Join(dir, f.Name()))
		}
	}
	return c, nil
}

func matchIndex(name string, products []classify.Product) int {
	for i, prod := range products {
		if strings.HasPrefix(name, prod.Prefix) {
			return i
		}
	}
	return -1
}

// Publish copies the first MaxImages images of each non-empty bucket to
// "{public}/images/products/{sub}/{sub}-{i}.{ext}" and rewrites the
// product's page to reference exactly those copies. Sources are never
// moved or altered.
func (p *Publisher) Publish(c Collection) PublishReport {
	var rep PublishReport
	for _, b := range c.Buckets {
		if len(b.Images) == 0 {
			continue
		}
		sub := b.Product.Subcategory
		log := p.log.WithField("product", sub)

		images := b.Images
		if len(images) > p.cfg.MaxImages {
			images = images[:p.cfg.MaxImages]
		}

		outDir := filepath.Join(p.cfg.PublicDir, "images", "products", sub)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			rep.Summary.Add(report.Failure(report.KindWrite, outDir, err))
			log.Errorf("Cannot create %s: %v", outDir, err)
			continue
		}

		var urls []string
		for _, src := range images {
			name := fmt.Sprintf("%s-%d%s", sub, len(urls)+1, strings.ToLower(filepath.Ext(src)))
			if err := layout.CopyFile(src, filepath.Join(outDir, name)); err != nil {
				rep.Summary.Add(report.Failure(report.KindCopy, src, err))
				log.Errorf("Cannot copy %s: %v", src, err)
				continue
			}
			rep.Summary.Add(report.Success(src))
			urls = append(urls, p.URL(sub, name))
		}
		log.Infof("Copied %d images for %s", len(urls), sub)
		if len(urls) == 0 {
			continue
		}

		page := p.PagePath(b.Product)
		res := RewritePage(page, urls)
		rep.Summary.Add(res)
		if res.OK {
			log.Infof("Updated %s", page)
		} else {
			log.WithField("kind", res.Kind).Warnf("Could not update %s: %v", page, res.Err)
		}
		rep.Products = append(rep.Products, Published{Product: b.Product, URLs: urls, Page: page})
	}
	return rep
}

// URL returns the public URL of a published file.
func (p *Publisher) URL(subcategory, name string) string {
	return strings.TrimSuffix(p.cfg.URLPrefix, "/") + "/" + subcategory + "/" + name
}

// PagePath returns the page file for product.
func (p *Publisher) PagePath(product classify.Product) string {
	return filepath.Join(p.cfg.AppDir, filepath.FromSlash(product.Path), p.cfg.PageFile)
}

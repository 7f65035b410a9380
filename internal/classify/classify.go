package classify

import "strings"

// Unmapped is reported for names no rule matches.
const Unmapped = "unmapped"

// Rule maps a name prefix to a slug.
type Rule struct {
	Prefix string `yaml:"prefix"`
	Slug   string `yaml:"slug"`
}

// Table is an ordered prefix table. Matching is first-match-wins in
// declaration order, not longest-match.
type Table []Rule

// Product describes where a converted image is published in the front-end
// project.
type Product struct {
	Prefix      string `yaml:"prefix"`
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
	Path        string `yaml:"path"` // page directory relative to the app dir
}

// Classify returns the slug of the first rule whose prefix name starts with.
// Comparison is case-sensitive.
func Classify(name string, t Table) (string, bool) {
	for _, r := range t {
		if strings.HasPrefix(name, r.Prefix) {
			return r.Slug, true
		}
	}
	return "", false
}

// FolderPrefix returns the filename prefix for files converted out of a
// folder. Folders without a rule get their name lowercased with spaces
// replaced by underscores.
func FolderPrefix(folder string, t Table) string {
	if slug, ok := Classify(folder, t); ok {
		return slug
	}
	return Normalize(folder)
}

// Normalize lowercases name and replaces spaces with underscores.
func Normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// MatchProduct returns the first product whose prefix name starts with.
func MatchProduct(name string, products []Product) (Product, bool) {
	for _, p := range products {
		if strings.HasPrefix(name, p.Prefix) {
			return p, true
		}
	}
	return Product{}, false
}

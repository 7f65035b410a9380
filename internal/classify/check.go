package classify

import (
	"fmt"
	"strings"
)

// IssueKind names a class of table inconsistency.
type IssueKind string

const (
	// IssueDrift: a folder's filename prefix does not classify back to the
	// same folder at re-sort time.
	IssueDrift IssueKind = "drift"
	// IssueShadowed: an earlier rule's prefix is a prefix of this rule's, so
	// this rule never matches.
	IssueShadowed IssueKind = "shadowed"
	// IssueOrphan: a product prefix belongs to no category.
	IssueOrphan IssueKind = "orphan"
)

// Issue is one inconsistency found by Check.
type Issue struct {
	Kind    IssueKind
	Table   string
	Prefix  string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s %q: %s", i.Kind, i.Table, i.Prefix, i.Message)
}

// Check reports inconsistencies between the folder, category and product
// tables. The tables are maintained independently and can drift; Check only
// reports, it never rewrites a table.
func Check(folders, categories Table, products []Product) []Issue {
	var issues []Issue

	for _, r := range folders {
		probe := r.Slug + "_"
		cat, ok := Classify(probe, categories)
		switch {
		case !ok:
			issues = append(issues, Issue{
				Kind:    IssueDrift,
				Table:   "folders",
				Prefix:  r.Prefix,
				Message: fmt.Sprintf("files named %s* match no category rule", probe),
			})
		case cat != r.Prefix:
			issues = append(issues, Issue{
				Kind:    IssueDrift,
				Table:   "folders",
				Prefix:  r.Prefix,
				Message: fmt.Sprintf("files named %s* are re-sorted into %q", probe, cat),
			})
		}
	}

	issues = append(issues, shadowed("folders", prefixes(folders))...)
	issues = append(issues, shadowed("categories", prefixes(categories))...)

	productPrefixes := make([]string, len(products))
	for i, p := range products {
		productPrefixes[i] = p.Prefix
		if _, ok := Classify(p.Prefix, categories); !ok {
			issues = append(issues, Issue{
				Kind:    IssueOrphan,
				Table:   "products",
				Prefix:  p.Prefix,
				Message: fmt.Sprintf("subcategory %q has no re-sort category", p.Subcategory),
			})
		}
	}
	issues = append(issues, shadowed("products", productPrefixes)...)

	return issues
}

func prefixes(t Table) []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Prefix
	}
	return out
}

func shadowed(table string, ps []string) []Issue {
	var issues []Issue
	for j := range ps {
		for i := 0; i < j; i++ {
			if strings.HasPrefix(ps[j], ps[i]) {
				issues = append(issues, Issue{
					Kind:    IssueShadowed,
					Table:   table,
					Prefix:  ps[j],
					Message: fmt.Sprintf("unreachable, earlier prefix %q matches first", ps[i]),
				})
				break
			}
		}
	}
	return issues
}

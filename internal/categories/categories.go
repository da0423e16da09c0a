// Package categories groups the distinct category and subcategory labels
// present in the deal catalog for the filter UI.
package categories

import (
	"sort"

	"github.com/mpocar/dealer-finder/pkg/models"
)

// Name wraps a label for the wire shape {"name": ...}.
type Name struct {
	Name string `json:"name"`
}

// Category is one catalog category and its subcategories, both
// alphabetically sorted.
type Category struct {
	Category      Name   `json:"category"`
	Subcategories []Name `json:"subcategories"`
}

// Extract groups all distinct (category, subcategory) pairs seen in the
// deals. Subcategories are deduplicated by value; empty subcategory labels
// are skipped. Labels are free text and compared byte-wise, which is
// alphabetical for the ASCII labels the catalog uses.
func Extract(deals []models.Deal) []Category {
	grouped := make(map[string]map[string]struct{})
	for _, d := range deals {
		subs, ok := grouped[d.Category]
		if !ok {
			subs = make(map[string]struct{})
			grouped[d.Category] = subs
		}
		if d.Subcategory != "" {
			subs[d.Subcategory] = struct{}{}
		}
	}

	out := make([]Category, 0, len(grouped))
	for name, subs := range grouped {
		c := Category{
			Category:      Name{Name: name},
			Subcategories: make([]Name, 0, len(subs)),
		}
		for sub := range subs {
			c.Subcategories = append(c.Subcategories, Name{Name: sub})
		}
		sort.Slice(c.Subcategories, func(i, j int) bool {
			return c.Subcategories[i].Name < c.Subcategories[j].Name
		})
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Category.Name < out[j].Category.Name
	})

	return out
}

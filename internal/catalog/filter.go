// internal/catalog/filter.go
package catalog

import "strings"

// Filter returns the items whose title or author contains search (case-insensitive)
// and whose category equals category, keeping catalog order. An empty search matches
// everything; AllCategories (or "") disables the category predicate. Items without a
// title are never returned.
func Filter(items []Item, search, category string) []Item {
	term := strings.ToLower(search)
	anyCategory := category == "" || category == AllCategories

	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		if !anyCategory && item.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(item.Title), term) &&
			!strings.Contains(strings.ToLower(item.Author), term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

package logic

import "polyscope/internal/domain"

// DeriveCategories extracts the category filter list from a trending
// market sample: deduplicated, in order of first appearance, empty
// categories skipped, truncated to max entries.
func DeriveCategories(markets []domain.Market, max int) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, m := range markets {
		if m.Category == "" || seen[m.Category] {
			continue
		}
		seen[m.Category] = true
		categories = append(categories, m.Category)
		if len(categories) == max {
			break
		}
	}
	return categories
}

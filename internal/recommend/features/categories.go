// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package features

import "strings"

// NumCategories is the number of interest categories.
const NumCategories = 8

// categories is the closed set of interest categories, in canonical order.
var categories = [NumCategories]string{
	"sports",
	"tech",
	"fashion",
	"entertainment",
	"business",
	"health",
	"travel",
	"food",
}

// synonyms maps alternative spellings to the canonical token.
// "technology" is the spelling used by the legacy ad catalog; the *_news style
// tokens are the content categories sent by the web client.
var synonyms = map[string]string{
	"technology":        "tech",
	"sports_news":       "sports",
	"tech_news":         "tech",
	"fashion_trends":    "fashion",
	"movie_reviews":     "entertainment",
	"business_insights": "business",
	"health_tips":       "health",
	"travel_guides":     "travel",
	"food_recipes":      "food",
}

// Categories returns the interest categories in canonical order.
func Categories() []string {
	out := make([]string, NumCategories)
	copy(out, categories[:])
	return out
}

var categoryIndex = func() map[string]int {
	idx := make(map[string]int, NumCategories)
	for i, c := range categories {
		idx[c] = i
	}
	return idx
}()

// Canonicalize normalizes a raw content category. It returns the canonical
// token and true for recognized categories, or the trimmed lowercase input
// and false otherwise.
func Canonicalize(raw string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(raw))
	if s, ok := synonyms[c]; ok {
		c = s
	}
	_, ok := categoryIndex[c]
	return c, ok
}

// CategoryIndex returns the position of a canonical category in Categories(),
// or -1 if it is not a category.
func CategoryIndex(category string) int {
	if i, ok := categoryIndex[category]; ok {
		return i
	}
	return -1
}

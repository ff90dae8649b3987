// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package ads

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/cel-go/cel"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/adinterest/internal/models"
	"github.com/tomtom215/adinterest/internal/recommend/features"
)

// CategoryEntry is one catalog category as declared in code or YAML.
type CategoryEntry struct {
	Name string    `yaml:"name"`
	Ads  []EntryAd `yaml:"ads"`
}

// EntryAd is a catalog ad with an optional targeting rule.
type EntryAd struct {
	models.Ad `yaml:",inline"`

	// Rule is a CEL expression over primary_interest, confidence and
	// interest_scores. Empty means always eligible.
	Rule string `yaml:"rule,omitempty"`
}

// catalogFile is the YAML document layout.
type catalogFile struct {
	Categories []CategoryEntry `yaml:"categories"`
}

type catalogAd struct {
	ad   models.Ad
	rule cel.Program
}

// Catalog is an immutable, ordered ad catalog.
type Catalog struct {
	order []string
	ads   map[string][]catalogAd
	total int
}

var (
	ruleEnv     *cel.Env
	ruleEnvErr  error
	ruleEnvOnce sync.Once
)

func getRuleEnv() (*cel.Env, error) {
	ruleEnvOnce.Do(func() {
		ruleEnv, ruleEnvErr = cel.NewEnv(
			cel.Variable("primary_interest", cel.StringType),
			cel.Variable("confidence", cel.DoubleType),
			cel.Variable("interest_scores", cel.MapType(cel.StringType, cel.DoubleType)),
		)
	})
	return ruleEnv, ruleEnvErr
}

// NewCatalog builds a catalog from entries. Category names are canonicalized;
// unknown categories, duplicate categories, duplicate ad IDs and rules that do
// not compile are rejected.
func NewCatalog(entries []CategoryEntry) (*Catalog, error) {
	c := &Catalog{ads: make(map[string][]catalogAd, len(entries))}
	ids := make(map[string]struct{})

	for _, e := range entries {
		category, ok := features.Canonicalize(e.Name)
		if !ok {
			return nil, fmt.Errorf("unknown ad category %q", e.Name)
		}
		if _, dup := c.ads[category]; dup {
			return nil, fmt.Errorf("duplicate ad category %q", category)
		}

		list := make([]catalogAd, 0, len(e.Ads))
		for _, a := range e.Ads {
			if a.ID == "" {
				return nil, fmt.Errorf("ad in category %q has no id", category)
			}
			if _, dup := ids[a.ID]; dup {
				return nil, fmt.Errorf("duplicate ad id %q", a.ID)
			}
			ids[a.ID] = struct{}{}

			ca := catalogAd{ad: a.Ad}
			if a.Rule != "" {
				prg, err := compileRule(a.Rule)
				if err != nil {
					return nil, fmt.Errorf("ad %q: %w", a.ID, err)
				}
				ca.rule = prg
			}
			list = append(list, ca)
		}

		c.order = append(c.order, category)
		c.ads[category] = list
		c.total += len(list)
	}
	return c, nil
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("catalog %s has no categories", path)
	}
	return NewCatalog(f.Categories)
}

func compileRule(expr string) (cel.Program, error) {
	env, err := getRuleEnv()
	if err != nil {
		return nil, fmt.Errorf("rule environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile rule: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program rule: %w", err)
	}
	return prg, nil
}

// Categories returns the catalog categories in catalog order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Ads returns copies of the ads in category, which is canonicalized first.
// Unknown or absent categories yield an empty slice.
func (c *Catalog) Ads(category string) []models.Ad {
	category, _ = features.Canonicalize(category)
	list := c.ads[category]
	out := make([]models.Ad, len(list))
	for i := range list {
		out[i] = list[i].ad
	}
	return out
}

// Len returns the total number of ads.
func (c *Catalog) Len() int {
	return c.total
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultEntries)
	if err != nil {
		panic(fmt.Sprintf("built-in ad catalog is invalid: %v", err))
	}
	return c
}

const placeholderImage = "https://via.placeholder.com/300x200/"

var defaultEntries = []CategoryEntry{
	{Name: "sports", Ads: []EntryAd{
		{Ad: models.Ad{ID: "sports_1", Title: "Nike Running Shoes", Description: "Get 20% off on latest running shoes",
			ImageURL: placeholderImage + "FF6B6B/FFFFFF?text=Nike+Running", CTA: "Shop Now", URL: "#"}},
		{Ad: models.Ad{ID: "sports_2", Title: "Gym Membership", Description: "Join our premium gym network",
			ImageURL: placeholderImage + "4ECDC4/FFFFFF?text=Gym+Membership", CTA: "Join Now", URL: "#"}},
	}},
	{Name: "technology", Ads: []EntryAd{
		{Ad: models.Ad{ID: "tech_1", Title: "Latest Smartphone", Description: "Upgrade to the newest smartphone",
			ImageURL: placeholderImage + "45B7D1/FFFFFF?text=Smartphone", CTA: "Learn More", URL: "#"}},
		{Ad: models.Ad{ID: "tech_2", Title: "Programming Course", Description: "Learn Python, JavaScript, and more",
			ImageURL: placeholderImage + "96CEB4/FFFFFF?text=Coding+Course", CTA: "Start Learning", URL: "#"}},
	}},
	{Name: "fashion", Ads: []EntryAd{
		{Ad: models.Ad{ID: "fashion_1", Title: "Summer Collection", Description: "New arrivals for the summer season",
			ImageURL: placeholderImage + "FFEAA7/000000?text=Summer+Fashion", CTA: "Shop Collection", URL: "#"}},
		{Ad: models.Ad{ID: "fashion_2", Title: "Designer Handbags", Description: "Luxury handbags at great prices",
			ImageURL: placeholderImage + "DDA0DD/FFFFFF?text=Designer+Bags", CTA: "View Collection", URL: "#"}},
	}},
	{Name: "entertainment", Ads: []EntryAd{
		{Ad: models.Ad{ID: "entertainment_1", Title: "Streaming Service", Description: "Watch unlimited movies and shows",
			ImageURL: placeholderImage + "FF9999/FFFFFF?text=Streaming", CTA: "Start Free Trial", URL: "#"}},
		{Ad: models.Ad{ID: "entertainment_2", Title: "Concert Tickets", Description: "Get tickets for upcoming concerts",
			ImageURL: placeholderImage + "87CEEB/000000?text=Concert+Tickets", CTA: "Buy Tickets", URL: "#"}},
	}},
	{Name: "business", Ads: []EntryAd{
		{Ad: models.Ad{ID: "business_1", Title: "Business Software", Description: "Boost your productivity with our tools",
			ImageURL: placeholderImage + "98D8C8/000000?text=Business+Tools", CTA: "Try Free", URL: "#"}},
		{Ad: models.Ad{ID: "business_2", Title: "Investment Platform", Description: "Start investing with just $10",
			ImageURL: placeholderImage + "F7DC6F/000000?text=Invest+Now", CTA: "Start Investing", URL: "#"}},
	}},
}

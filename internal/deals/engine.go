// Package deals implements the deal discovery core: the filter pipeline,
// the sort dispatcher, and the recommendation scorer, plus the HTTP handler
// that exposes them.
package deals

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mpocar/dealer-finder/internal/geo"
	"github.com/mpocar/dealer-finder/pkg/models"
)

// SortKey selects the comparator used to order filtered results.
type SortKey string

const (
	SortRecommended  SortKey = "recommended"
	SortPriceLowHigh SortKey = "price-low-high"
	SortPriceHighLow SortKey = "price-high-low"
	SortDiscountDesc SortKey = "discount-high-low"
	SortRatingDesc   SortKey = "rating-high-low"
)

// ValidSortKeys lists the accepted sortBy values in the order they are
// reported to clients on validation failure.
var ValidSortKeys = []SortKey{
	SortRecommended,
	SortPriceLowHigh,
	SortPriceHighLow,
	SortDiscountDesc,
	SortRatingDesc,
}

// minSearchLength is the minimum trimmed query length, in characters, for
// the search filter to activate. Shorter queries are ignored rather than
// rejected.
const minSearchLength = 3

// defaultRadiusMiles is used when a request provides a location without a
// usable radius.
const defaultRadiusMiles = 10

// Criteria is a fully validated per-request filter and sort description.
// Zero-value fields mean "filter not active".
type Criteria struct {
	Search        string
	Categories    []string
	Subcategories []string
	MinPrice      *float64
	MaxPrice      *float64
	Location      *models.UserLocation
	SortBy        SortKey
}

// Source provides the catalog snapshot an Engine operates on. Implementations
// must return a slice the caller may reorder freely without affecting the
// underlying catalog.
type Source interface {
	Deals() ([]models.Deal, error)
}

// Static adapts a fixed slice of deals into a Source. Each call returns a
// fresh copy so the snapshot stays immutable.
type Static []models.Deal

// Deals implements Source.
func (s Static) Deals() ([]models.Deal, error) {
	cp := make([]models.Deal, len(s))
	copy(cp, s)
	return cp, nil
}

// Engine filters and orders the deal catalog according to request criteria.
type Engine struct {
	source Source
}

// NewEngine creates an Engine backed by the given catalog source.
func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// Query returns the deals matching the criteria, ordered by the requested
// sort key. Filters compose by logical AND and preserve catalog order; the
// final ordering comes from a stable sort, so ties retain their relative
// catalog position. An empty result is a valid outcome, not an error.
func (e *Engine) Query(c Criteria) ([]models.Deal, error) {
	result, err := e.source.Deals()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	result = filterSearch(result, c.Search)
	result = filterByCategory(result, c.Categories, func(d models.Deal) string { return d.Category })
	result = filterByCategory(result, c.Subcategories, func(d models.Deal) string { return d.Subcategory })
	result = filterPrice(result, c.MinPrice, c.MaxPrice)
	result = filterRadius(result, c.Location)

	if err := sortDeals(result, c.SortBy, c.Location); err != nil {
		return nil, err
	}

	return result, nil
}

// filterSearch keeps deals whose title, description, any tag, or merchant
// name contains the query, case-insensitively. Queries shorter than
// minSearchLength after trimming deactivate the filter.
func filterSearch(in []models.Deal, query string) []models.Deal {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchLength {
		return in
	}
	needle := strings.ToLower(query)

	out := in[:0:0]
	for _, d := range in {
		if dealMatches(d, needle) {
			out = append(out, d)
		}
	}
	return out
}

func dealMatches(d models.Deal, needle string) bool {
	if strings.Contains(strings.ToLower(d.Title), needle) ||
		strings.Contains(strings.ToLower(d.Description), needle) ||
		strings.Contains(strings.ToLower(d.MerchantName), needle) {
		return true
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// filterByCategory keeps deals whose label (category or subcategory,
// selected by key) is a member of accepted. An empty set deactivates the
// filter.
func filterByCategory(in []models.Deal, accepted []string, key func(models.Deal) string) []models.Deal {
	if len(accepted) == 0 {
		return in
	}

	set := make(map[string]struct{}, len(accepted))
	for _, label := range accepted {
		set[label] = struct{}{}
	}

	out := in[:0:0]
	for _, d := range in {
		if _, ok := set[key(d)]; ok {
			out = append(out, d)
		}
	}
	return out
}

// filterPrice keeps deals whose discount price falls within the given bounds.
// Either bound may be nil (unbounded). Bound ordering is validated upstream.
func filterPrice(in []models.Deal, minPrice, maxPrice *float64) []models.Deal {
	if minPrice == nil && maxPrice == nil {
		return in
	}

	out := in[:0:0]
	for _, d := range in {
		if minPrice != nil && d.DiscountPrice < *minPrice {
			continue
		}
		if maxPrice != nil && d.DiscountPrice > *maxPrice {
			continue
		}
		out = append(out, d)
	}
	return out
}

// filterRadius keeps deals within loc.Radius miles of the user. A nil
// location deactivates the filter.
func filterRadius(in []models.Deal, loc *models.UserLocation) []models.Deal {
	if loc == nil {
		return in
	}

	radius := loc.Radius
	if radius <= 0 {
		radius = defaultRadiusMiles
	}

	out := in[:0:0]
	for _, d := range in {
		distance := geo.Distance(loc.Latitude, loc.Longitude, d.Location.Lat, d.Location.Lng)
		if distance <= radius {
			out = append(out, d)
		}
	}
	return out
}

// sortDeals orders deals in place by the given key. The sort is stable so
// equal keys retain catalog order. An unknown key is an error; request
// parsing rejects unknown keys before they reach here, so this is a guard
// against programmatic misuse.
func sortDeals(deals []models.Deal, key SortKey, loc *models.UserLocation) error {
	switch key {
	case SortPriceLowHigh:
		sort.SliceStable(deals, func(i, j int) bool {
			return deals[i].DiscountPrice < deals[j].DiscountPrice
		})
	case SortPriceHighLow:
		sort.SliceStable(deals, func(i, j int) bool {
			return deals[i].DiscountPrice > deals[j].DiscountPrice
		})
	case SortDiscountDesc:
		sort.SliceStable(deals, func(i, j int) bool {
			return deals[i].DiscountPercentage > deals[j].DiscountPercentage
		})
	case SortRatingDesc:
		sort.SliceStable(deals, func(i, j int) bool {
			return deals[i].AverageRating > deals[j].AverageRating
		})
	case SortRecommended, "":
		type scored struct {
			deal  models.Deal
			score float64
		}
		ranked := make([]scored, len(deals))
		for i, d := range deals {
			ranked[i] = scored{deal: d, score: Score(d, loc)}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].score > ranked[j].score
		})
		for i := range ranked {
			deals[i] = ranked[i].deal
		}
	default:
		return fmt.Errorf("unknown sort key %q", key)
	}
	return nil
}

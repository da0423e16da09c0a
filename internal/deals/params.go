package deals

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mpocar/dealer-finder/pkg/models"
)

// ValidationError describes a rejected request parameter. It is a caller
// error: the handler converts it into a response with empty deals and a
// descriptive message rather than a transport-level failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ParseCriteria builds a Criteria from URL query parameters, applying the
// transport contract: comma-separated category lists, numeric bounds,
// latitude/longitude co-occurrence, and the 10 mile default radius.
func ParseCriteria(q url.Values) (Criteria, *ValidationError) {
	var c Criteria

	c.Search = strings.TrimSpace(q.Get("search"))

	c.SortBy = SortRecommended
	if raw := q.Get("sortBy"); raw != "" {
		key := SortKey(raw)
		if !validSortKey(key) {
			return Criteria{}, validationf("Invalid sort option '%s'. Valid options are: %s",
				raw, sortKeyList())
		}
		c.SortBy = key
	}

	minPrice, err := parseNumber(q.Get("minPrice"), "minPrice", nil, nil)
	if err != nil {
		return Criteria{}, err
	}
	maxPrice, err := parseNumber(q.Get("maxPrice"), "maxPrice", nil, nil)
	if err != nil {
		return Criteria{}, err
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return Criteria{}, validationf("minPrice cannot be greater than maxPrice")
	}
	c.MinPrice = minPrice
	c.MaxPrice = maxPrice

	latitude, err := parseNumber(q.Get("latitude"), "latitude", ptr(-90.0), ptr(90.0))
	if err != nil {
		return Criteria{}, err
	}
	longitude, err := parseNumber(q.Get("longitude"), "longitude", ptr(-180.0), ptr(180.0))
	if err != nil {
		return Criteria{}, err
	}
	if (latitude == nil) != (longitude == nil) {
		return Criteria{}, validationf("Both latitude and longitude must be provided together")
	}

	radius, err := parseNumber(q.Get("radius"), "radius", ptr(0.0), ptr(500.0))
	if err != nil {
		return Criteria{}, err
	}

	if latitude != nil {
		loc := &models.UserLocation{
			Latitude:  *latitude,
			Longitude: *longitude,
			Radius:    defaultRadiusMiles,
		}
		if radius != nil && *radius > 0 {
			loc.Radius = *radius
		}
		c.Location = loc
	}

	c.Categories = splitList(q.Get("categories"))
	c.Subcategories = splitList(q.Get("subcategories"))

	return c, nil
}

// parseNumber parses an optional numeric parameter, enforcing inclusive
// bounds when given. An empty value is simply absent.
func parseNumber(raw, name string, minVal, maxVal *float64) (*float64, *ValidationError) {
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, validationf("Invalid %s parameter: must be a number", name)
	}
	if minVal != nil && v < *minVal {
		return nil, validationf("Invalid %s parameter: must be at least %v", name, *minVal)
	}
	if maxVal != nil && v > *maxVal {
		return nil, validationf("Invalid %s parameter: must be at most %v", name, *maxVal)
	}

	return &v, nil
}

// splitList splits a comma-separated parameter into trimmed labels, dropping
// empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validSortKey(key SortKey) bool {
	for _, k := range ValidSortKeys {
		if k == key {
			return true
		}
	}
	return false
}

func sortKeyList() string {
	keys := make([]string, len(ValidSortKeys))
	for i, k := range ValidSortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

func ptr(v float64) *float64 { return &v }

package deals

import (
	"github.com/mpocar/dealer-finder/internal/geo"
	"github.com/mpocar/dealer-finder/pkg/models"
)

// Factor weights for the recommendation score. They sum to 1.0.
const (
	discountWeight   = 0.30
	distanceWeight   = 0.20
	ratingWeight     = 0.15
	featuredWeight   = 0.15
	popularityWeight = 0.20
)

// popularityMax is the sales count at which the popularity factor saturates.
const popularityMax = 1000

// Score returns the recommendation score for a deal, higher meaning more
// recommended. The score is a weighted sum of five factors: discount,
// distance from the user, average rating, featured status, and popularity.
//
// The discount factor uses the raw 0-100 percentage rather than a 0-1
// normalized value, so it dominates the other factors. That matches the
// scoring the product shipped with, and the relative ordering clients rely on,
// so it is kept as is.
//
// AverageRating is assumed to be in [0,5]; it is not clamped here.
// A nil loc awards the full distance weight so that requests without a
// location do not penalize any deal.
func Score(d models.Deal, loc *models.UserLocation) float64 {
	score := d.DiscountPercentage * discountWeight

	score += distanceScore(d, loc) * distanceWeight

	score += d.AverageRating / 5 * ratingWeight

	if d.FeaturedDeal {
		score += featuredWeight
	}

	popularity := float64(d.QuantitySold) / popularityMax
	if popularity > 1 {
		popularity = 1
	}
	score += popularity * popularityWeight

	return score
}

// distanceScore maps the user-to-deal distance onto [0,1], 1 being closest.
// Deals at or beyond the search radius score 0. A zero radius cannot be used
// as a divisor; only a deal at the exact user position gets full credit then.
func distanceScore(d models.Deal, loc *models.UserLocation) float64 {
	if loc == nil {
		return 1
	}

	distance := geo.Distance(loc.Latitude, loc.Longitude, d.Location.Lat, d.Location.Lng)

	if loc.Radius <= 0 {
		if distance == 0 {
			return 1
		}
		return 0
	}

	s := 1 - distance/loc.Radius
	if s < 0 {
		return 0
	}
	return s
}

package deals

import (
	"math"
	"testing"

	"github.com/mpocar/dealer-finder/internal/testutil"
	"github.com/mpocar/dealer-finder/pkg/models"
)

const scoreEpsilon = 1e-9

func TestScore_FeaturedBonusExact(t *testing.T) {
	plain := testutil.NewDeal(testutil.WithFeatured(false))
	featured := plain
	featured.FeaturedDeal = true

	diff := Score(featured, nil) - Score(plain, nil)
	if math.Abs(diff-featuredWeight) > scoreEpsilon {
		t.Errorf("featured bonus = %v, want exactly %v", diff, featuredWeight)
	}
}

func TestScore_NoLocationFullDistanceCredit(t *testing.T) {
	// Without a user location every deal gets the full distance weight,
	// regardless of where it is.
	near := testutil.NewDeal(testutil.WithCoordinates(37.7749, -122.4194))
	far := near
	far.Location.Lat = 40.7128
	far.Location.Lng = -74.0060

	if got, want := Score(near, nil), Score(far, nil); math.Abs(got-want) > scoreEpsilon {
		t.Errorf("no-location scores differ by location: %v != %v", got, want)
	}
}

func TestScore_MonotonicInDiscount(t *testing.T) {
	prev := -1.0
	for _, pct := range []float64{0, 10, 25, 50, 80, 100} {
		s := Score(testutil.NewDeal(testutil.WithDiscount(pct)), nil)
		if s <= prev {
			t.Errorf("score not increasing at discount %v: %v <= %v", pct, s, prev)
		}
		prev = s
	}
}

func TestScore_MonotonicInRating(t *testing.T) {
	prev := -1.0
	for _, rating := range []float64{0, 1, 2.5, 4, 5} {
		s := Score(testutil.NewDeal(testutil.WithRating(rating)), nil)
		if s <= prev {
			t.Errorf("score not increasing at rating %v: %v <= %v", rating, s, prev)
		}
		prev = s
	}
}

func TestScore_PopularityRampAndCap(t *testing.T) {
	prev := -1.0
	for _, sold := range []int{0, 100, 500, 999} {
		s := Score(testutil.NewDeal(testutil.WithQuantitySold(sold)), nil)
		if s <= prev {
			t.Errorf("score not increasing at quantitySold %d: %v <= %v", sold, s, prev)
		}
		prev = s
	}

	// Beyond 1000 units sold the popularity factor saturates.
	at1000 := Score(testutil.NewDeal(testutil.WithQuantitySold(1000)), nil)
	at5000 := Score(testutil.NewDeal(testutil.WithQuantitySold(5000)), nil)
	if math.Abs(at1000-at5000) > scoreEpsilon {
		t.Errorf("popularity not capped: score(1000)=%v, score(5000)=%v", at1000, at5000)
	}
}

func TestScore_DecreasesWithDistance(t *testing.T) {
	loc := &models.UserLocation{Latitude: 37.7749, Longitude: -122.4194, Radius: 10}

	// Same deal moved progressively farther from the user, within radius.
	atUser := testutil.NewDeal(testutil.WithCoordinates(37.7749, -122.4194))
	nearby := testutil.NewDeal(testutil.WithID(atUser.ID), testutil.WithCoordinates(37.79, -122.42))
	farther := testutil.NewDeal(testutil.WithID(atUser.ID), testutil.WithCoordinates(37.83, -122.42))

	s0, s1, s2 := Score(atUser, loc), Score(nearby, loc), Score(farther, loc)
	if !(s0 > s1 && s1 > s2) {
		t.Errorf("score not decreasing with distance: %v, %v, %v", s0, s1, s2)
	}
}

func TestScore_BeyondRadiusNoDistanceCredit(t *testing.T) {
	loc := &models.UserLocation{Latitude: 37.7749, Longitude: -122.4194, Radius: 10}

	// NYC is far beyond a 10 mile radius around SF; the distance factor
	// contributes nothing but the score never goes negative from it.
	nyc := testutil.NewDeal(testutil.WithCoordinates(40.7128, -74.0060))
	withLoc := Score(nyc, loc)

	noDistance := nyc.DiscountPercentage*discountWeight +
		nyc.AverageRating/5*ratingWeight +
		math.Min(1, float64(nyc.QuantitySold)/popularityMax)*popularityWeight

	if math.Abs(withLoc-noDistance) > scoreEpsilon {
		t.Errorf("beyond-radius score = %v, want %v (zero distance credit)", withLoc, noDistance)
	}
}

func TestScore_ZeroRadiusGuard(t *testing.T) {
	loc := &models.UserLocation{Latitude: 37.7749, Longitude: -122.4194, Radius: 0}

	// A zero radius must not divide by zero. Only a deal at the exact user
	// position earns distance credit.
	atUser := testutil.NewDeal(testutil.WithCoordinates(37.7749, -122.4194))
	nearby := testutil.NewDeal(testutil.WithID(atUser.ID), testutil.WithCoordinates(37.7750, -122.4194))

	sAt, sNear := Score(atUser, loc), Score(nearby, loc)
	if math.IsNaN(sAt) || math.IsNaN(sNear) {
		t.Fatal("zero radius produced NaN score")
	}
	if math.Abs(sAt-sNear-distanceWeight) > scoreEpsilon {
		t.Errorf("zero-radius credit: at-user=%v nearby=%v, want exactly %v apart",
			sAt, sNear, distanceWeight)
	}
}

func TestScore_DiscountUsesRawPercentage(t *testing.T) {
	// The discount factor intentionally multiplies the raw 0-100 percentage
	// by its weight, so a 50% discount alone contributes 15.0, not 0.15.
	d := testutil.NewDeal(
		testutil.WithDiscount(50),
		testutil.WithRating(0),
		testutil.WithQuantitySold(0),
		testutil.WithFeatured(false),
	)

	// No location: discount 50*0.30 + distance 0.20.
	want := 50*discountWeight + distanceWeight
	if got := Score(d, nil); math.Abs(got-want) > scoreEpsilon {
		t.Errorf("Score = %v, want %v", got, want)
	}
}

// Package geo provides great-circle distance calculations for the
// geo-radius filter and the recommendation scorer.
package geo

import "math"

// earthRadiusMiles is the mean Earth radius used by the haversine formula.
const earthRadiusMiles = 3958.8

// Distance returns the great-circle distance in miles between two
// (latitude, longitude) pairs given in degrees, using the haversine formula.
// It is symmetric and returns 0 (within floating-point epsilon) for
// identical points. Out-of-range coordinates are not validated here; callers
// validate request input before computing distances.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

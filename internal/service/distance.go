package service

import (
	"math"

	"cab/internal/domain"
)

const (
	earthRadiusKm = 6371.0
	milesPerKm    = 0.621371
)

// DistanceKm returns the great-circle distance in kilometers between
// two latitude/longitude pairs (degrees) using the Haversine formula.
// Total over finite inputs: equal points yield exactly 0.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1 = lat1 * (math.Pi / 180.0)
	lat2 = lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push a just above 1 for near-antipodal points,
	// which would make Sqrt(1-a) NaN.
	a = math.Min(1, a)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// KmToMiles converts kilometers to miles.
func KmToMiles(km float64) float64 {
	return km * milesPerKm
}

// DistanceMiles returns the great-circle distance in miles between two
// locations.
func DistanceMiles(from, to *domain.Location) float64 {
	return KmToMiles(DistanceKm(
		from.Coordinate.Latitude, from.Coordinate.Longitude,
		to.Coordinate.Latitude, to.Coordinate.Longitude,
	))
}

package domain

import "math"

// Mean earth radius in kilometers.
const earthRadiusKm = 6371

// Immutable geographic point (WGS84 degrees).
type GeoPoint struct {
	Lat float64
	Lng float64
}

// DistanceKm returns the great-circle distance between a and b in
// kilometers, using the haversine formula on a spherical earth.
// Symmetric, and zero for identical points. Coordinates are expected to
// be in range (lat [-90,90], lng [-180,180]); out-of-range input is a
// caller error and is not validated here.
func DistanceKm(a, b GeoPoint) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

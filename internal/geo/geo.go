package geo

import (
	"math"

	"go-school/internal/shared/apperror"
)

// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
const EarthRadiusMeters = 6371000

// DefaultRadiusMeters is the school-level fallback when no
// attendance_gps_radius setting is configured.
const DefaultRadiusMeters = 100

type Zone string

const (
	ZoneGreen  Zone = "green"
	ZoneOrange Zone = "orange"
	ZoneRed    Zone = "red"
)

// Classification is the derived result of one distance check. It is a value
// type; the persisted check-in row carries its fields.
type Classification struct {
	DistanceMeters float64
	Zone           Zone
	OutOfRange     bool
}

// Distance returns the great-circle distance in meters between two points
// given in decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// ValidateCoordinate rejects non-finite or out-of-domain lat/lon pairs.
// Range validation stops at the coordinate domain itself; plausibility of the
// location is the caller's problem.
func ValidateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return apperror.ErrInvalidCoordinate
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return apperror.ErrInvalidCoordinate
	}
	return nil
}

// Classify maps a distance and a configured radius onto the three-tier zone:
//
//	d <= r       green, in range
//	r < d <= 2r  orange, out of range
//	d > 2r       red, out of range
//
// A non-positive radius falls back to DefaultRadiusMeters.
func Classify(distanceMeters, radiusMeters float64) Classification {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	cls := Classification{DistanceMeters: distanceMeters, Zone: ZoneGreen}
	switch {
	case distanceMeters > 2*radiusMeters:
		cls.Zone = ZoneRed
		cls.OutOfRange = true
	case distanceMeters > radiusMeters:
		cls.Zone = ZoneOrange
		cls.OutOfRange = true
	}
	return cls
}

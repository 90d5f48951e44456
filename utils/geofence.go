package utils

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"p9e.in/frota/models"
)

// StationProximityThresholdM is how far (in meters) a refueling may be
// reported from its station before it gets flagged on reports.
const StationProximityThresholdM = 1000.0

// ValidateCoordinate rejects lat/lng pairs outside the valid ranges.
// The zero pair is allowed since mobile clients send 0,0 when the GPS
// fix is unavailable.
func ValidateCoordinate(lat, lng float64) error {
	if lat == 0 && lng == 0 {
		return nil
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %.6f fora do intervalo [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %.6f fora do intervalo [-180, 180]", lng)
	}
	return nil
}

// StationDistanceM returns the great-circle distance in meters between a
// reported refueling position and the station's registered coordinates.
// Returns -1 when either side has no usable fix.
func StationDistanceM(lat, lng float64, station models.GasStation) float64 {
	if (lat == 0 && lng == 0) || !station.HasCoordinates() {
		return -1
	}
	reported := orb.Point{lng, lat}
	registered := orb.Point{station.Longitude, station.Latitude}
	return geo.Distance(reported, registered)
}

// FarFromStation reports whether a refueling position is beyond the
// proximity threshold. Unknown distances are never flagged.
func FarFromStation(lat, lng float64, station models.GasStation) bool {
	d := StationDistanceM(lat, lng, station)
	return d >= 0 && d > StationProximityThresholdM
}

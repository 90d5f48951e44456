package utils

import (
	"testing"

	"p9e.in/frota/models"
)

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"valid brazilian coordinate", -23.96, -46.33, false},
		{"zero pair allowed", 0, 0, false},
		{"latitude too high", 91, 0.1, true},
		{"latitude too low", -90.5, 0.1, true},
		{"longitude too high", 10, 181, true},
		{"longitude too low", 10, -180.5, true},
		{"boundary values", 90, 180, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%v, %v) error = %v, wantErr %v", tt.lat, tt.lng, err, tt.wantErr)
			}
		})
	}
}

func TestStationDistanceM(t *testing.T) {
	station := models.GasStation{Name: "POSTO CENTRAL", Latitude: -23.9608, Longitude: -46.3336}

	t.Run("same point is roughly zero", func(t *testing.T) {
		d := StationDistanceM(-23.9608, -46.3336, station)
		if d < 0 || d > 1 {
			t.Errorf("distance = %v, expected ~0", d)
		}
	})

	t.Run("a degree of latitude is about 111 km", func(t *testing.T) {
		d := StationDistanceM(-24.9608, -46.3336, station)
		if d < 110_000 || d > 112_000 {
			t.Errorf("distance = %v, expected ~111 km", d)
		}
	})

	t.Run("missing reported fix", func(t *testing.T) {
		if d := StationDistanceM(0, 0, station); d != -1 {
			t.Errorf("distance = %v, expected -1", d)
		}
	})

	t.Run("station without coordinates", func(t *testing.T) {
		bare := models.GasStation{Name: "POSTO SEM GPS"}
		if d := StationDistanceM(-23.9608, -46.3336, bare); d != -1 {
			t.Errorf("distance = %v, expected -1", d)
		}
	})
}

func TestFarFromStation(t *testing.T) {
	station := models.GasStation{Name: "POSTO CENTRAL", Latitude: -23.9608, Longitude: -46.3336}

	if FarFromStation(-23.9608, -46.3336, station) {
		t.Error("point at the station flagged as far")
	}
	// ~111 km away.
	if !FarFromStation(-24.9608, -46.3336, station) {
		t.Error("point 111 km away not flagged")
	}
	// Unknown distance is never flagged.
	if FarFromStation(0, 0, station) {
		t.Error("unknown fix flagged as far")
	}
}

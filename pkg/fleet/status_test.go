package fleet

import (
	"testing"

	"github.com/google/uuid"

	"p9e.in/frota/models"
)

func TestDeriveStatus(t *testing.T) {
	vid := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		vehicle  models.Vehicle
		logs     []models.DailyLog
		expected string
	}{
		{
			name:     "no logs defaults to active",
			vehicle:  models.Vehicle{ID: vid, Status: models.StatusActive},
			logs:     nil,
			expected: "ATIVO",
		},
		{
			name:    "latest operating log is active",
			vehicle: models.Vehicle{ID: vid, Status: models.StatusActive},
			logs: []models.DailyLog{
				{VehicleID: vid, Date: "2025-08-29", NonOperatingReason: "MANUTENÇÃO"},
				{VehicleID: vid, Date: "2025-08-30", StartTime: "08:00", EndTime: "17:00"},
			},
			expected: "ATIVO",
		},
		{
			name:    "latest reason reported verbatim",
			vehicle: models.Vehicle{ID: vid, Status: models.StatusActive},
			logs: []models.DailyLog{
				{VehicleID: vid, Date: "2025-08-29", StartTime: "08:00", EndTime: "17:00"},
				{VehicleID: vid, Date: "2025-08-30", NonOperatingReason: "MANUTENÇÃO"},
			},
			expected: "MANUTENÇÃO",
		},
		{
			name:    "no signal maps back to active",
			vehicle: models.Vehicle{ID: vid, Status: models.StatusActive},
			logs: []models.DailyLog{
				{VehicleID: vid, Date: "2025-08-30", NonOperatingReason: "SEM SINAL"},
			},
			expected: "ATIVO",
		},
		{
			name:    "failed to start maps back to active",
			vehicle: models.Vehicle{ID: vid, Status: models.StatusActive},
			logs: []models.DailyLog{
				{VehicleID: vid, Date: "2025-08-30", NonOperatingReason: "NÃO LIGOU"},
			},
			expected: "ATIVO",
		},
		{
			name:    "stored inactive status overrides logs",
			vehicle: models.Vehicle{ID: vid, Status: models.StatusInactive},
			logs: []models.DailyLog{
				{VehicleID: vid, Date: "2025-08-30", StartTime: "08:00", EndTime: "17:00"},
			},
			expected: "INATIVO",
		},
		{
			name:    "only the latest log matters",
			vehicle: models.Vehicle{ID: vid, Status: models.StatusActive},
			logs: []models.DailyLog{
				{VehicleID: vid, Date: "2025-08-28", NonOperatingReason: "FÉRIAS"},
				{VehicleID: vid, Date: "2025-08-30", NonOperatingReason: "SEM OPERADOR"},
				{VehicleID: vid, Date: "2025-08-29", StartTime: "08:00", EndTime: "17:00"},
			},
			expected: "SEM OPERADOR",
		},
		{
			name:    "other vehicles' logs are ignored",
			vehicle: models.Vehicle{ID: vid, Status: models.StatusActive},
			logs: []models.DailyLog{
				{VehicleID: other, Date: "2025-08-30", NonOperatingReason: "MANUTENÇÃO"},
			},
			expected: "ATIVO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeriveStatus(tt.vehicle, tt.logs)
			if result != tt.expected {
				t.Errorf("DeriveStatus() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

package fleet

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"p9e.in/frota/models"
)

func countAlerts(alerts []Alert, alertType string) int {
	n := 0
	for _, a := range alerts {
		if a.Type == alertType {
			n++
		}
	}
	return n
}

func TestSpeedLimitFor(t *testing.T) {
	tests := []struct {
		vehicleType string
		expected    float64
	}{
		{models.VehicleTypeHeavy, 90},
		{models.VehicleTypeLiveLine, 90},
		{models.VehicleTypeLight, 100},
		{models.VehicleTypeMunck, 100},
		{"", 100},
		{"pesado ", 90},
	}
	for _, tt := range tests {
		if got := SpeedLimitFor(tt.vehicleType); got != tt.expected {
			t.Errorf("SpeedLimitFor(%q) = %v, expected %v", tt.vehicleType, got, tt.expected)
		}
	}
}

func TestSpeedingAlerts(t *testing.T) {
	now := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	heavy := models.Vehicle{ID: uuid.New(), Plate: "PES1234", VehicleType: models.VehicleTypeHeavy, Status: models.StatusActive}
	light := models.Vehicle{ID: uuid.New(), Plate: "LEV1234", VehicleType: models.VehicleTypeLight, Status: models.StatusActive}

	in := AlertInput{
		Vehicles: []models.Vehicle{heavy, light},
		Logs: []models.DailyLog{
			// 95 km/h breaches the heavy limit but not the light one.
			{VehicleID: heavy.ID, Date: "2025-08-29", PlateSnapshot: "PES1234", MaxSpeed: 95, StartTime: "08:00", EndTime: "17:00"},
			{VehicleID: light.ID, Date: "2025-08-29", PlateSnapshot: "LEV1234", MaxSpeed: 95, StartTime: "08:00", EndTime: "17:00"},
			// Outside the trailing window.
			{VehicleID: heavy.ID, Date: "2025-08-10", PlateSnapshot: "PES1234", MaxSpeed: 140, StartTime: "08:00", EndTime: "17:00"},
		},
		Role: models.RoleForeman,
		Now:  now,
	}

	alerts := GenerateAlerts(in)
	if got := countAlerts(alerts, AlertSpeeding); got != 1 {
		t.Fatalf("expected 1 speeding alert, got %d: %+v", got, alerts)
	}
	for _, a := range alerts {
		if a.Type == AlertSpeeding && a.Plate != "PES1234" {
			t.Errorf("speeding alert plate = %q, expected the heavy truck", a.Plate)
		}
	}
}

func TestSignalLossAlerts(t *testing.T) {
	now := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	vid := uuid.New()
	vehicle := models.Vehicle{ID: vid, Plate: "SIG1234", Status: models.StatusActive}

	mkLogs := func(reasons ...string) []models.DailyLog {
		var logs []models.DailyLog
		for i, reason := range reasons {
			logs = append(logs, models.DailyLog{
				VehicleID:          vid,
				Date:               time.Date(2025, 8, 20+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
				NonOperatingReason: reason,
			})
		}
		return logs
	}

	t.Run("fires at three consecutive trailing days", func(t *testing.T) {
		in := AlertInput{
			Vehicles: []models.Vehicle{vehicle},
			Logs:     mkLogs("", "SEM SINAL", "SEM SINAL", "SEM SINAL"),
			Role:     models.RoleForeman,
			Now:      now,
		}
		alerts := GenerateAlerts(in)
		if got := countAlerts(alerts, AlertSignalLoss); got != 1 {
			t.Fatalf("expected 1 signal-loss alert, got %d", got)
		}
		for _, a := range alerts {
			if a.Type == AlertSignalLoss && !strings.Contains(a.Message, "3 dias") {
				t.Errorf("message = %q, expected a 3-day streak", a.Message)
			}
		}
	})

	t.Run("does not fire at two", func(t *testing.T) {
		in := AlertInput{
			Vehicles: []models.Vehicle{vehicle},
			Logs:     mkLogs("SEM SINAL", "", "SEM SINAL", "SEM SINAL"),
			Role:     models.RoleForeman,
			Now:      now,
		}
		if got := countAlerts(GenerateAlerts(in), AlertSignalLoss); got != 0 {
			t.Errorf("expected no signal-loss alert for a 2-day streak, got %d", got)
		}
	})

	t.Run("an operating day resets the streak", func(t *testing.T) {
		in := AlertInput{
			Vehicles: []models.Vehicle{vehicle},
			Logs:     mkLogs("SEM SINAL", "SEM SINAL", "SEM SINAL", ""),
			Role:     models.RoleForeman,
			Now:      now,
		}
		if got := countAlerts(GenerateAlerts(in), AlertSignalLoss); got != 0 {
			t.Errorf("expected no alert once the newest log is operating, got %d", got)
		}
	})
}

func TestMissingLogAlerts(t *testing.T) {
	now := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	yesterday := "2025-08-29"

	active := models.Vehicle{ID: uuid.New(), Plate: "ATV1234", Status: models.StatusActive}
	inactive := models.Vehicle{ID: uuid.New(), Plate: "INA1234", Status: models.StatusInactive}
	covered := models.Vehicle{ID: uuid.New(), Plate: "COB1234", Status: models.StatusActive}

	base := AlertInput{
		Vehicles: []models.Vehicle{active, inactive, covered},
		Logs: []models.DailyLog{
			{VehicleID: covered.ID, Date: yesterday, StartTime: "08:00", EndTime: "17:00"},
		},
		Now: now,
	}

	t.Run("admin sees the missing vehicle only", func(t *testing.T) {
		in := base
		in.Role = models.RoleAdmin
		alerts := GenerateAlerts(in)
		if got := countAlerts(alerts, AlertMissingLog); got != 1 {
			t.Fatalf("expected 1 missing-log alert, got %d", got)
		}
		for _, a := range alerts {
			if a.Type == AlertMissingLog && a.Plate != "ATV1234" {
				t.Errorf("alert plate = %q, expected ATV1234", a.Plate)
			}
		}
	})

	t.Run("foreman viewers are not shown missing-log alerts", func(t *testing.T) {
		in := base
		in.Role = models.RoleForeman
		if got := countAlerts(GenerateAlerts(in), AlertMissingLog); got != 0 {
			t.Errorf("expected 0 alerts for foreman role, got %d", got)
		}
	})
}

func TestPendingPaymentAlerts(t *testing.T) {
	now := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	in := AlertInput{
		Refuelings: []models.RefuelingLog{
			{Date: "2025-08-28", PlateSnapshot: "ABC1234", TotalCost: 0},
			{Date: "2025-08-28", PlateSnapshot: "DEF5678", TotalCost: 312.50},
			{Date: "2025-08-01", PlateSnapshot: "GHI9012", TotalCost: 0}, // outside window
		},
		Role: models.RoleAdmin,
		Now:  now,
	}
	alerts := GenerateAlerts(in)
	if got := countAlerts(alerts, AlertPendingPayment); got != 1 {
		t.Fatalf("expected 1 pending-payment alert, got %d", got)
	}
}

func TestLateApprovalAlerts(t *testing.T) {
	now := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	in := AlertInput{
		Requisitions: []models.Requisition{
			{InternalNumber: 41, RequesterName: "PAULO", Status: models.RequisitionPending,
				RequestDate: "2025-08-28", RequestTime: "09:00"},
			{InternalNumber: 42, RequesterName: "MARIA", Status: models.RequisitionPending,
				RequestDate: "2025-08-30", RequestTime: "08:00"},
			{InternalNumber: 43, RequesterName: "JOSÉ", Status: models.RequisitionApproved,
				RequestDate: "2025-08-20", RequestTime: "09:00"},
		},
		Role: models.RoleAdmin,
		Now:  now,
	}
	alerts := GenerateAlerts(in)
	if got := countAlerts(alerts, AlertLateApproval); got != 1 {
		t.Fatalf("expected 1 late-approval alert, got %d: %+v", got, alerts)
	}
	for _, a := range alerts {
		if a.Type == AlertLateApproval && !strings.Contains(a.Message, "41") {
			t.Errorf("message = %q, expected requisition 41", a.Message)
		}
	}
}

func TestGenerateAlertsOrdering(t *testing.T) {
	now := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	vid := uuid.New()
	in := AlertInput{
		Vehicles: []models.Vehicle{
			{ID: vid, Plate: "ORD1234", VehicleType: models.VehicleTypeLight, Status: models.StatusActive},
		},
		Logs: []models.DailyLog{
			{VehicleID: vid, Date: "2025-08-27", PlateSnapshot: "ORD1234", MaxSpeed: 120, StartTime: "08:00", EndTime: "17:00"},
			{VehicleID: vid, Date: "2025-08-29", PlateSnapshot: "ORD1234", MaxSpeed: 110, StartTime: "08:00", EndTime: "17:00"},
		},
		Refuelings: []models.RefuelingLog{
			{Date: "2025-08-29", PlateSnapshot: "ORD1234", TotalCost: 0},
		},
		Role: models.RoleForeman,
		Now:  now,
	}

	alerts := GenerateAlerts(in)
	if len(alerts) < 3 {
		t.Fatalf("expected at least 3 alerts, got %d", len(alerts))
	}
	for i := 1; i < len(alerts); i++ {
		if alerts[i].Date > alerts[i-1].Date {
			t.Fatalf("alerts not ordered newest first at %d: %+v", i, alerts)
		}
	}
	last := alerts[len(alerts)-1]
	if last.Date != "2025-08-27" {
		t.Errorf("oldest alert date = %q, expected 2025-08-27", last.Date)
	}
}

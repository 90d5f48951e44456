package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"p9e.in/frota/config"
	"p9e.in/frota/middleware"
	"p9e.in/frota/models"
	"p9e.in/frota/pkg/fleet"
)

// fetchAll pulls a full table into memory. Read errors degrade to an
// empty collection with a log line; the dashboard renders what it can.
func fetchAll[T any](name string) []T {
	var rows []T
	if err := config.DB.Find(&rows).Error; err != nil {
		log.Printf("dashboard: failed to load %s: %v", name, err)
		return nil
	}
	return rows
}

// GetDashboard assembles the landing-page summary: derived status counts,
// top-5 rankings for the current month, and the month-over-month cost
// comparison.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	vehicles := fetchAll[models.Vehicle]("vehicles")
	logs := fetchAll[models.DailyLog]("daily_logs")
	refuelings := fetchAll[models.RefuelingLog]("refueling_logs")
	requisitions := fetchAll[models.Requisition]("requisitions")

	now := time.Now()
	monthStart := now.Format("2006-01") + "-01"
	today := now.Format("2006-01-02")

	logsByVehicle := make(map[string][]models.DailyLog)
	for _, l := range logs {
		key := l.VehicleID.String()
		logsByVehicle[key] = append(logsByVehicle[key], l)
	}

	statusCounts := make(map[string]int)
	for _, v := range vehicles {
		statusCounts[fleet.DeriveStatus(v, logsByVehicle[v.ID.String()])]++
	}

	pendingRequisitions := 0
	for _, rq := range requisitions {
		if rq.Status == models.RequisitionPending {
			pendingRequisitions++
		}
	}

	byPlate := fleet.AggregateByPlate(logs, refuelings, monthStart, today)
	byForeman := fleet.AggregateByForeman(refuelings, monthStart, today)

	resp := map[string]interface{}{
		"totalVehicles":       len(vehicles),
		"statusCounts":        statusCounts,
		"pendingRequisitions": pendingRequisitions,
		"topDistance":         fleet.TopN(byPlate, 5, func(t fleet.Totals) float64 { return t.DistanceKM }),
		"topFuelCost":         fleet.TopN(byPlate, 5, func(t fleet.Totals) float64 { return t.Cost }),
		"topForemanCost":      fleet.TopN(byForeman, 5, func(t fleet.Totals) float64 { return t.Cost }),
		"monthComparison":     fleet.MonthOverMonth(refuelings, now),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetAlerts runs the alert generator over the full collections for the
// viewer's role.
func GetAlerts(w http.ResponseWriter, r *http.Request) {
	in := fleet.AlertInput{
		Vehicles:     fetchAll[models.Vehicle]("vehicles"),
		Logs:         fetchAll[models.DailyLog]("daily_logs"),
		Refuelings:   fetchAll[models.RefuelingLog]("refueling_logs"),
		Requisitions: fetchAll[models.Requisition]("requisitions"),
		Role:         NormalizeRole(middleware.GetRole(r)),
		Now:          time.Now(),
	}

	alerts := fleet.GenerateAlerts(in)
	if alerts == nil {
		alerts = []fleet.Alert{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alerts)
}

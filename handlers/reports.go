package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"p9e.in/frota/config"
	"p9e.in/frota/models"
	"p9e.in/frota/pkg/fleet"
)

// GetVehicleTimeline returns the attribute-change history for one vehicle,
// newest first.
func GetVehicleTimeline(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	var logs []models.DailyLog
	if err := config.DB.Where("vehicle_id = ?", vehicle.ID).Find(&logs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	entries := fleet.AttributeTimeline(vehicle, logs)
	if entries == nil {
		entries = []fleet.TimelineEntry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

type vehicleReportDay struct {
	models.DailyLog
	WorkedDuration string `json:"workedDuration"`
	WorkedMinutes  int    `json:"workedMinutes"`
}

// GetVehicleReport builds the per-vehicle operational report for a window:
// each day with its net worked duration, plus period totals.
func GetVehicleReport(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	var logs []models.DailyLog
	q := config.DB.Where("vehicle_id = ?", vehicle.ID).Order("date asc")
	if start != "" {
		q = q.Where("date >= ?", start)
	}
	if end != "" {
		q = q.Where("date <= ?", end)
	}
	if err := q.Find(&logs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var refuelings []models.RefuelingLog
	rq := config.DB.Where("vehicle_id = ?", vehicle.ID.String())
	if start != "" {
		rq = rq.Where("date >= ?", start)
	}
	if end != "" {
		rq = rq.Where("date <= ?", end)
	}
	if err := rq.Find(&refuelings).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	days := make([]vehicleReportDay, len(logs))
	totalMinutes := 0
	totalDistance := 0.0
	operatingDays := 0
	for i, l := range logs {
		minutes := 0
		if l.Operating() {
			minutes = fleet.NetWorkMinutes(l.StartTime, l.EndTime, l.LunchStart, l.LunchEnd, l.ExtraStart, l.ExtraEnd)
			operatingDays++
		}
		days[i] = vehicleReportDay{
			DailyLog:       l,
			WorkedDuration: fleet.FormatMinutes(minutes),
			WorkedMinutes:  minutes,
		}
		totalMinutes += minutes
		totalDistance += l.DistanceKM
	}

	totalLiters := 0.0
	totalCost := 0.0
	for _, rf := range refuelings {
		totalLiters += rf.Quantity
		totalCost += rf.TotalCost
	}

	totals := fleet.Totals{Key: vehicle.Plate, DistanceKM: totalDistance, Liters: totalLiters, Cost: totalCost}
	resp := map[string]interface{}{
		"vehicle":       vehicle,
		"status":        fleet.DeriveStatus(vehicle, logs),
		"days":          days,
		"operatingDays": operatingDays,
		"totalMinutes":  totalMinutes,
		"totalWorked":   fleet.FormatMinutes(totalMinutes),
		"totalDistance": totalDistance,
		"totalLiters":   totalLiters,
		"totalCost":     totalCost,
		"kmPerLiter":    totals.KmPerLiter(),
		"timeline":      fleet.AttributeTimeline(vehicle, logs),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetConsumptionReport aggregates fuel consumption grouped by station,
// foreman or vehicle plate over an inclusive date window. Pagination
// applies to the rendered rows only; aggregation always runs over the
// whole window.
func GetConsumptionReport(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	var logs []models.DailyLog
	if err := config.DB.Find(&logs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var refuelings []models.RefuelingLog
	if err := config.DB.Find(&refuelings).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var rows []fleet.Totals
	switch group {
	case "station":
		rows = fleet.AggregateByStation(refuelings, start, end)
		rows = resolveStationNames(rows)
	case "foreman":
		rows = fleet.AggregateByForeman(refuelings, start, end)
	case "vehicle", "":
		rows = fleet.AggregateByPlate(logs, refuelings, start, end)
	default:
		http.Error(w, "group must be station, foreman or vehicle", http.StatusBadRequest)
		return
	}

	rows = fleet.TopN(rows, len(rows), func(t fleet.Totals) float64 { return t.Cost })

	page := 1
	limit := 50
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}
	total := len(rows)
	from := (page - 1) * limit
	if from > total {
		from = total
	}
	to := from + limit
	if to > total {
		to = total
	}

	resp := map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  rows[from:to],
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// resolveStationNames swaps station ids for display names where the
// station still exists.
func resolveStationNames(rows []fleet.Totals) []fleet.Totals {
	var stations []models.GasStation
	if err := config.DB.Find(&stations).Error; err != nil {
		return rows
	}
	names := make(map[string]string, len(stations))
	for _, s := range stations {
		names[s.ID.String()] = s.Name
	}
	for i := range rows {
		if name, ok := names[rows[i].Key]; ok {
			rows[i].Key = name
		}
	}
	return rows
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"p9e.in/frota/config"
	"p9e.in/frota/models"
)

func GetAllDailyLogs(w http.ResponseWriter, r *http.Request) {
	var logs []models.DailyLog
	q := config.DB.Order("date desc")
	if vehicleID := r.URL.Query().Get("vehicleId"); vehicleID != "" {
		q = q.Where("vehicle_id = ?", vehicleID)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		q = q.Where("date <= ?", to)
	}
	if err := q.Find(&logs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

func CreateDailyLog(w http.ResponseWriter, r *http.Request) {
	var item models.DailyLog
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if item.Date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", item.VehicleID).Error; err != nil {
		http.Error(w, "vehicle not found", http.StatusBadRequest)
		return
	}

	// Friendly pre-check; the composite unique index is the backstop
	// against a racing insert.
	var count int64
	config.DB.Model(&models.DailyLog{}).
		Where("vehicle_id = ? AND date = ?", item.VehicleID, item.Date).
		Count(&count)
	if count > 0 {
		http.Error(w, "daily log already exists for this vehicle and date", http.StatusConflict)
		return
	}

	// A reason day carries no operating numbers.
	if !item.Operating() {
		item.IgnitionTime = ""
		item.StartTime = ""
		item.EndTime = ""
		item.LunchStart = ""
		item.LunchEnd = ""
		item.ExtraStart = ""
		item.ExtraEnd = ""
		item.DistanceKM = 0
		item.MaxSpeed = 0
		item.SpeedingCount = 0
	}

	// Snapshots are stamped once here and never refreshed.
	item.DriverSnapshot = vehicle.Driver
	item.MunicipalitySnapshot = vehicle.Municipality
	item.ContractSnapshot = vehicle.Contract
	item.PlateSnapshot = vehicle.Plate
	item.ModelSnapshot = vehicle.Model

	if err := config.DB.Create(&item).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "daily log already exists for this vehicle and date", http.StatusConflict)
			return
		}
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func GetDailyLog(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var item models.DailyLog
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(item)
}

func UpdateDailyLog(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var item models.DailyLog
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	// Keep identity and snapshots as written at creation.
	keepVehicle := item.VehicleID
	keepDate := item.Date
	keepDriver := item.DriverSnapshot
	keepMunicipality := item.MunicipalitySnapshot
	keepContract := item.ContractSnapshot
	keepPlate := item.PlateSnapshot
	keepModel := item.ModelSnapshot

	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	item.VehicleID = keepVehicle
	item.Date = keepDate
	item.DriverSnapshot = keepDriver
	item.MunicipalitySnapshot = keepMunicipality
	item.ContractSnapshot = keepContract
	item.PlateSnapshot = keepPlate
	item.ModelSnapshot = keepModel

	if !item.Operating() {
		item.DistanceKM = 0
		item.MaxSpeed = 0
		item.SpeedingCount = 0
	}

	if err := config.DB.Save(&item).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(item)
}

func DeleteDailyLog(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	result := config.DB.Where("id = ?", id).Delete(&models.DailyLog{})
	if result.Error != nil {
		http.Error(w, "failed to delete record", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"p9e.in/frota/config"
	"p9e.in/frota/models"
	"p9e.in/frota/pkg/fleet"
)

func GetAllVehicles(w http.ResponseWriter, r *http.Request) {
	var vehicles []models.Vehicle
	q := config.DB.Order("plate asc")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", strings.ToUpper(status))
	}
	if municipality := r.URL.Query().Get("municipality"); municipality != "" {
		q = q.Where("municipality ILIKE ?", municipality)
	}
	if err := q.Find(&vehicles).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vehicles)
}

func CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var item models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	item.Plate = strings.ToUpper(strings.TrimSpace(item.Plate))
	if item.Plate == "" || item.Model == "" {
		http.Error(w, "plate and model are required", http.StatusBadRequest)
		return
	}
	if item.Status == "" {
		item.Status = models.StatusActive
	}
	if err := config.DB.Create(&item).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "plate already registered", http.StatusConflict)
			return
		}
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func GetVehicle(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var item models.Vehicle
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(item)
}

func UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var item models.Vehicle
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	item.Plate = strings.ToUpper(strings.TrimSpace(item.Plate))
	if err := config.DB.Save(&item).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(item)
}

func DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	result := config.DB.Where("id = ?", id).Delete(&models.Vehicle{})
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

// GetVehicleStatus returns the derived display status, computed from the
// stored lifecycle flag and the vehicle's latest daily log.
func GetVehicleStatus(w http.ResponseWriter, r *http.Request) {
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

	resp := map[string]interface{}{
		"vehicleId": vehicle.ID,
		"plate":     vehicle.Plate,
		"status":    fleet.DeriveStatus(vehicle, logs),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

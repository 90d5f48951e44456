package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/frota/config"
	"p9e.in/frota/models"
	"p9e.in/frota/utils"
)

func GetAllRefuelings(w http.ResponseWriter, r *http.Request) {
	var refuelings []models.RefuelingLog
	q := config.DB.Order("date desc")
	if vehicleID := r.URL.Query().Get("vehicleId"); vehicleID != "" {
		q = q.Where("vehicle_id = ?", vehicleID)
	}
	if stationID := r.URL.Query().Get("stationId"); stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		q = q.Where("date <= ?", to)
	}
	if err := q.Find(&refuelings).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(refuelings)
}

func CreateRefueling(w http.ResponseWriter, r *http.Request) {
	var item models.RefuelingLog
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if item.Date == "" || item.Product == "" {
		http.Error(w, "date and product are required", http.StatusBadRequest)
		return
	}
	if item.Quantity <= 0 {
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateCoordinate(item.Latitude, item.Longitude); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if item.External() {
		if item.ExternalType == "" {
			http.Error(w, "externalType is required for external equipment", http.StatusBadRequest)
			return
		}
	} else {
		var vehicle models.Vehicle
		if err := config.DB.First(&vehicle, "id = ?", item.VehicleID).Error; err != nil {
			http.Error(w, "vehicle not found", http.StatusBadRequest)
			return
		}
		// Snapshots are stamped once here and never refreshed.
		item.PlateSnapshot = vehicle.Plate
		item.ModelSnapshot = vehicle.Model
		item.ForemanSnapshot = vehicle.Foreman
		item.ContractSnapshot = vehicle.Contract
		item.MunicipalitySnapshot = vehicle.Municipality
	}

	if err := config.DB.Create(&item).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

// refuelingOut is a refueling annotated with how far from the registered
// station it was submitted.
type refuelingOut struct {
	models.RefuelingLog
	StationDistanceM float64 `json:"stationDistanceM,omitempty"`
	FarFromStation   bool    `json:"farFromStation,omitempty"`
}

func GetRefueling(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var item models.RefuelingLog
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	out := refuelingOut{RefuelingLog: item}
	var station models.GasStation
	if err := config.DB.First(&station, "id = ?", item.StationID).Error; err == nil {
		if d := utils.StationDistanceM(item.Latitude, item.Longitude, station); d >= 0 {
			out.StationDistanceM = d
			out.FarFromStation = utils.FarFromStation(item.Latitude, item.Longitude, station)
		}
	}
	json.NewEncoder(w).Encode(out)
}

func UpdateRefueling(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var item models.RefuelingLog
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	keepVehicle := item.VehicleID
	keepPlate := item.PlateSnapshot
	keepModel := item.ModelSnapshot
	keepForeman := item.ForemanSnapshot
	keepContract := item.ContractSnapshot
	keepMunicipality := item.MunicipalitySnapshot

	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	item.VehicleID = keepVehicle
	item.PlateSnapshot = keepPlate
	item.ModelSnapshot = keepModel
	item.ForemanSnapshot = keepForeman
	item.ContractSnapshot = keepContract
	item.MunicipalitySnapshot = keepMunicipality

	if err := config.DB.Save(&item).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(item)
}

func DeleteRefueling(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	result := config.DB.Where("id = ?", id).Delete(&models.RefuelingLog{})
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

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/frota/config"
	"p9e.in/frota/middleware"
	"p9e.in/frota/models"
)

// GetMyVehicles lists the vehicles assigned to the calling account. For
// non-foreman roles this is the whole active fleet.
func GetMyVehicles(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var vehicles []models.Vehicle
	if NormalizeRole(user.Role) == models.RoleForeman {
		ids := make([]uuid.UUID, 0, len(user.Vehicles))
		for _, uv := range user.Vehicles {
			ids = append(ids, uv.VehicleID)
		}
		if len(ids) > 0 {
			if err := config.DB.Where("id IN ?", ids).Order("plate asc").Find(&vehicles).Error; err != nil {
				http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
				return
			}
		}
	} else {
		if err := config.DB.Where("status = ?", models.StatusActive).Order("plate asc").Find(&vehicles).Error; err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vehicles)
}

// GetUserVehicles lists a user's vehicle assignments (admin).
func GetUserVehicles(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	userID := params["id"]

	var user models.User
	if err := config.DB.Preload("Vehicles").First(&user, "id = ?", userID).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	assignments := user.Vehicles
	if assignments == nil {
		assignments = []models.UserVehicle{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignments)
}

type assignVehicleReq struct {
	VehicleID string `json:"vehicleId"`
}

// AssignUserVehicle links a vehicle to a user account (admin). Duplicate
// assignments are rejected by the composite unique index.
func AssignUserVehicle(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	userID := params["id"]

	var req assignVehicleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", req.VehicleID).Error; err != nil {
		http.Error(w, "vehicle not found", http.StatusBadRequest)
		return
	}

	link := models.UserVehicle{UserID: user.ID, VehicleID: vehicle.ID}
	if err := config.DB.Create(&link).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "vehicle already assigned", http.StatusConflict)
			return
		}
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(link)
}

// UnassignUserVehicle removes a user-vehicle link (admin).
func UnassignUserVehicle(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	userID := params["id"]
	vehicleID := params["vehicleId"]

	result := config.DB.
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		Delete(&models.UserVehicle{})
	if result.Error != nil {
		http.Error(w, "failed to delete record", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "assignment not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setActiveReq struct {
	IsActive bool `json:"isActive"`
}

// SetUserActive flips the active flag on an account (admin). Inactive
// accounts cannot log in.
func SetUserActive(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	userID := params["id"]

	var req setActiveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	user.IsActive = req.IsActive
	if err := config.DB.Save(&user).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(user)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"p9e.in/frota/config"
	"p9e.in/frota/middleware"
	"p9e.in/frota/models"
)

func GetAllRequisitions(w http.ResponseWriter, r *http.Request) {
	var requisitions []models.Requisition
	q := config.DB.Order("internal_number desc")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	// Foremen only see their own requests.
	user := middleware.GetUser(r)
	if NormalizeRole(user.Role) == models.RoleForeman {
		q = q.Where("requester_id = ?", user.ID)
	}
	if err := q.Find(&requisitions).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requisitions)
}

func CreateRequisition(w http.ResponseWriter, r *http.Request) {
	var item models.Requisition
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if item.VehicleID == "" || item.Product == "" {
		http.Error(w, "vehicleId and product are required", http.StatusBadRequest)
		return
	}
	if !item.FillTank && item.Quantity <= 0 {
		http.Error(w, "quantity must be positive unless fillTank is set", http.StatusBadRequest)
		return
	}
	if item.VehicleID == models.ExternalVehicleID && item.ExternalType == "" {
		http.Error(w, "externalType is required for external equipment", http.StatusBadRequest)
		return
	}

	user := middleware.GetUser(r)
	if !user.MayRequisition(item.VehicleID) {
		http.Error(w, "vehicle not assigned to this user", http.StatusForbidden)
		return
	}

	var plate string
	if item.VehicleID != models.ExternalVehicleID {
		var vehicle models.Vehicle
		if err := config.DB.First(&vehicle, "id = ?", item.VehicleID).Error; err != nil {
			http.Error(w, "vehicle not found", http.StatusBadRequest)
			return
		}
		plate = vehicle.Plate
	}

	item.RequesterID = user.ID
	item.RequesterName = user.Name
	item.Status = models.RequisitionPending
	now := time.Now()
	if item.RequestDate == "" {
		item.RequestDate = now.Format("2006-01-02")
	}
	if item.RequestTime == "" {
		item.RequestTime = now.Format("15:04")
	}

	// The internal number comes from the counters row under a row lock so
	// concurrent requests never share a number.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var counter models.Counter
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&counter, "name = ?", models.CounterRequisitions).Error; err != nil {
			return err
		}
		counter.Value++
		if err := tx.Save(&counter).Error; err != nil {
			return err
		}
		item.InternalNumber = counter.Value
		return tx.Create(&item).Error
	})
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"requisition":  item,
		"whatsappLink": BuildWhatsAppLink(item, plate),
	})
}

func GetRequisition(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var item models.Requisition
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(item)
}

type approveReq struct {
	ApproverName      string  `json:"approverName"`
	StationID         string  `json:"stationId"`
	ConfirmedQuantity float64 `json:"confirmedQuantity"`
	TotalCost         float64 `json:"totalCost"`
	Contract          string  `json:"contract"`
	InvoiceNumber     string  `json:"invoiceNumber"`
}

// ApproveRequisition moves a pending requisition to APROVADA and records
// the purchase as a RefuelingLog in the same transaction.
func ApproveRequisition(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var req approveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ApproverName == "" || req.StationID == "" || req.ConfirmedQuantity <= 0 {
		http.Error(w, "approverName, stationId and confirmedQuantity are required", http.StatusBadRequest)
		return
	}

	var station models.GasStation
	if err := config.DB.First(&station, "id = ?", req.StationID).Error; err != nil {
		http.Error(w, "station not found", http.StatusBadRequest)
		return
	}

	var item models.Requisition
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	if item.Status != models.RequisitionPending {
		http.Error(w, "requisition is not pending", http.StatusConflict)
		return
	}

	refueling := models.RefuelingLog{
		VehicleID:         item.VehicleID,
		ExternalType:      item.ExternalType,
		StationID:         station.ID,
		Date:              time.Now().Format("2006-01-02"),
		Product:           item.Product,
		Quantity:          req.ConfirmedQuantity,
		TotalCost:         req.TotalCost,
		InvoiceNumber:     req.InvoiceNumber,
		RequisitionNumber: item.InternalNumber,
		SubmittedAt:       models.JSONTime(time.Now()),
	}
	var vehicleContract string
	if !refueling.External() {
		var vehicle models.Vehicle
		if err := config.DB.First(&vehicle, "id = ?", item.VehicleID).Error; err != nil {
			http.Error(w, "vehicle not found", http.StatusBadRequest)
			return
		}
		refueling.PlateSnapshot = vehicle.Plate
		refueling.ModelSnapshot = vehicle.Model
		refueling.ForemanSnapshot = vehicle.Foreman
		refueling.ContractSnapshot = vehicle.Contract
		refueling.MunicipalitySnapshot = vehicle.Municipality
		vehicleContract = vehicle.Contract
	}

	now := time.Now()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		item.Status = models.RequisitionApproved
		item.ApproverName = req.ApproverName
		item.StationID = &station.ID
		item.ConfirmedQuantity = req.ConfirmedQuantity
		item.Contract = approvalContract(req.Contract, vehicleContract)
		item.ApprovedAt = &now
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		return tx.Create(&refueling).Error
	})
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"requisition":  item,
		"refueling":    refueling,
		"whatsappLink": BuildWhatsAppLink(item, refueling.PlateSnapshot),
	})
}

// approvalContract picks the financial-allocation contract recorded on
// approval: the approver's explicit choice when given, else the
// vehicle's registered contract. External equipment has no vehicle to
// fall back to, so an omitted contract stays blank there.
func approvalContract(requested, vehicleContract string) string {
	if strings.TrimSpace(requested) != "" {
		return requested
	}
	return vehicleContract
}

type rejectReq struct {
	Reason string `json:"reason"`
}

// RejectRequisition moves a pending requisition to REJEITADA. No purchase
// record is created.
func RejectRequisition(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	var req rejectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var item models.Requisition
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	if item.Status != models.RequisitionPending {
		http.Error(w, "requisition is not pending", http.StatusConflict)
		return
	}

	item.Status = models.RequisitionRejected
	item.RejectionReason = req.Reason
	if err := config.DB.Save(&item).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(item)
}

func DeleteRequisition(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id := params["id"]

	result := config.DB.Where("id = ? AND status = ?", id, models.RequisitionPending).
		Delete(&models.Requisition{})
	if result.Error != nil {
		http.Error(w, "failed to delete record", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "record not found or already decided", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

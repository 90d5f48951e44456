// models/requisition.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Requisition statuses. PENDENTE terminates in APROVADA (which spawns a
// RefuelingLog) or REJEITADA (no side effect).
const (
	RequisitionPending  = "PENDENTE"
	RequisitionApproved = "APROVADA"
	RequisitionRejected = "REJEITADA"
)

// Requisition is a fuel request issued by a field supervisor. The
// InternalNumber comes from the counters table at creation and is never
// reused or reassigned.
type Requisition struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InternalNumber int       `gorm:"uniqueIndex;not null" json:"internalNumber"`

	RequesterID   uuid.UUID `gorm:"type:uuid;not null;index" json:"requesterId"`
	RequesterName string    `gorm:"size:100" json:"requesterName"`

	// VehicleID is a vehicle uuid string or EXTERNO (see RefuelingLog).
	VehicleID    string `gorm:"size:36;not null" json:"vehicleId"`
	ExternalType string `gorm:"size:100" json:"externalType,omitempty"`

	Product  string  `gorm:"size:30;not null" json:"product"`
	Quantity float64 `json:"quantity"`
	// FillTank means the quantity is unknown until approval.
	FillTank bool `json:"fillTank"`

	Status      string `gorm:"size:20;default:PENDENTE" json:"status"`
	RequestDate string `gorm:"size:10;not null" json:"requestDate"`
	RequestTime string `gorm:"size:5" json:"requestTime"`

	// Approval fields, set only on the PENDENTE -> APROVADA transition.
	ApproverName      string     `gorm:"size:100" json:"approverName,omitempty"`
	StationID         *uuid.UUID `gorm:"type:uuid" json:"stationId,omitempty"`
	ConfirmedQuantity float64    `json:"confirmedQuantity,omitempty"`
	Contract          string     `gorm:"size:30" json:"contract,omitempty"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`

	RejectionReason string `gorm:"size:200" json:"rejectionReason,omitempty"`

	PhotoMeta datatypes.JSON `gorm:"type:jsonb" json:"photoMeta,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (rq *Requisition) BeforeCreate(tx *gorm.DB) (err error) {
	if rq.ID == uuid.Nil {
		rq.ID = uuid.New()
	}
	return
}

// RequestedAt combines the request date and time-of-day strings into a
// timestamp. A missing or malformed time counts as midnight.
func (rq *Requisition) RequestedAt() time.Time {
	if t, err := time.Parse("2006-01-02 15:04", rq.RequestDate+" "+rq.RequestTime); err == nil {
		return t
	}
	t, err := time.Parse("2006-01-02", rq.RequestDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// models/refueling.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ExternalVehicleID is the sentinel vehicle id for fuel delivered to
// equipment that is not in the registry (generators, pumps, rented
// machines). It is a permanently supported case, not an error path.
const ExternalVehicleID = "EXTERNO"

// Fuel and supply products sold at partner stations.
const (
	ProductDieselS10  = "DIESEL S10"
	ProductDieselS500 = "DIESEL S500"
	ProductGasoline   = "GASOLINA"
	ProductEthanol    = "ETANOL"
	ProductArla       = "ARLA 32"
)

// RefuelingLog is one fuel/supply purchase event. VehicleID is either a
// vehicle uuid in string form or ExternalVehicleID. Snapshot fields follow
// the same write-once audit rationale as DailyLog.
type RefuelingLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VehicleID string    `gorm:"size:36;not null;index" json:"vehicleId"`
	// ExternalType describes the equipment when VehicleID is EXTERNO.
	ExternalType string    `gorm:"size:100" json:"externalType,omitempty"`
	StationID    uuid.UUID `gorm:"type:uuid;index" json:"stationId"`
	Date         string    `gorm:"size:10;not null;index" json:"date"`
	Product      string    `gorm:"size:30;not null" json:"product"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	TotalCost    float64   `json:"totalCost"`

	InvoiceNumber     string `gorm:"size:50" json:"invoiceNumber,omitempty"`
	RequisitionNumber int    `json:"requisitionNumber,omitempty"`

	// Where the purchase was submitted from, when the field app has a fix.
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	Photos pq.StringArray `gorm:"type:text[]" json:"photos,omitempty"`

	// Historical snapshots, stamped at creation.
	PlateSnapshot        string `gorm:"size:10" json:"plateSnapshot"`
	ModelSnapshot        string `gorm:"size:100" json:"modelSnapshot"`
	ForemanSnapshot      string `gorm:"size:100" json:"foremanSnapshot"`
	ContractSnapshot     string `gorm:"size:30" json:"contractSnapshot"`
	MunicipalitySnapshot string `gorm:"size:100" json:"municipalitySnapshot"`

	SubmittedAt JSONTime  `json:"submittedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (rl *RefuelingLog) BeforeCreate(tx *gorm.DB) (err error) {
	if rl.ID == uuid.Nil {
		rl.ID = uuid.New()
	}
	return
}

// External reports whether the purchase went to non-fleet equipment.
func (rl *RefuelingLog) External() bool {
	return rl.VehicleID == ExternalVehicleID
}

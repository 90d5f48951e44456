// models/vehicle.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lifecycle status of a vehicle. These are also the display statuses the
// derivation layer reports (non-operating reasons from the daily log are
// shown verbatim in between).
const (
	StatusActive   = "ATIVO"
	StatusInactive = "INATIVO"
)

// Vehicle types. Heavy and live-line trucks carry a lower speed limit.
const (
	VehicleTypeLight    = "LEVE"
	VehicleTypeHeavy    = "PESADO"
	VehicleTypeLiveLine = "LINHA VIVA"
	VehicleTypeMunck    = "MUNCK"
)

// Contract types used for financial allocation.
const (
	ContractOwned  = "PRÓPRIO"
	ContractLeased = "LOCAÇÃO"
)

// Vehicle is the registry record. It is mutable; historical truth lives in
// the snapshot fields stamped onto daily logs and refuelings at write time.
type Vehicle struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Plate        string    `gorm:"size:10;uniqueIndex;not null" json:"plate"`
	Model        string    `gorm:"size:100;not null" json:"model"`
	Year         int       `json:"year"`
	Driver       string    `gorm:"size:100" json:"driver"`
	Municipality string    `gorm:"size:100" json:"municipality"`
	Foreman      string    `gorm:"size:100" json:"foreman"`
	Contract     string    `gorm:"size:30" json:"contract"`
	VehicleType  string    `gorm:"size:30" json:"vehicleType"`
	Status       string    `gorm:"size:20;default:ATIVO" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

// models/gasstation.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GasStation is a partner station referenced by refuelings and approved
// requisitions. Coordinates are optional; when present, refueling
// submissions are checked for proximity.
type GasStation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Municipality string    `gorm:"size:100" json:"municipality"`
	Contact      string    `gorm:"size:100" json:"contact,omitempty"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	Address      string    `gorm:"size:200" json:"address,omitempty"`
	Latitude     float64   `json:"latitude,omitempty"`
	Longitude    float64   `json:"longitude,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (g *GasStation) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}

// HasCoordinates reports whether the station has a usable location.
func (g *GasStation) HasCoordinates() bool {
	return g.Latitude != 0 || g.Longitude != 0
}

// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fixed role set. Anything else normalizes to RoleOperator, the
// least-privileged operational role.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERADOR"
	RoleForeman  = "ENCARREGADO"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;default:OPERADOR" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Vehicles []UserVehicle `gorm:"foreignKey:UserID" json:"vehicles,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// UserVehicle assigns a vehicle to a foreman account. Foremen may only
// requisition fuel for vehicles they are assigned to.
type UserVehicle struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_vehicles_pair" json:"userId"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_vehicles_pair" json:"vehicleId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (uv *UserVehicle) BeforeCreate(tx *gorm.DB) (err error) {
	if uv.ID == uuid.Nil {
		uv.ID = uuid.New()
	}
	return
}

// MayRequisition reports whether the user can open a requisition for the
// given vehicle id. Admins and operators can requisition for any vehicle;
// foremen only for their assigned ones. External-equipment requests are
// open to every requisition-capable role.
func (u *User) MayRequisition(vehicleID string) bool {
	if u.Role != RoleForeman {
		return true
	}
	if vehicleID == ExternalVehicleID {
		return true
	}
	for _, uv := range u.Vehicles {
		if uv.VehicleID.String() == vehicleID {
			return true
		}
	}
	return false
}

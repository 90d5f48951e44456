// models/dailylog.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Non-operating reason codes. A daily log carries either operating fields
// or one of these, by convention rather than by type.
const (
	ReasonMaintenance = "MANUTENÇÃO"
	ReasonNoSignal    = "SEM SINAL"
	ReasonNoStart     = "NÃO LIGOU"
	ReasonNoOperator  = "SEM OPERADOR"
	ReasonVacation    = "FÉRIAS"
)

// DailyLog is one record of a vehicle's operation (or non-operation) for a
// single calendar date. Date is a YYYY-MM-DD string; the reporting layer
// compares dates lexicographically. The (vehicle_id, date) pair is unique:
// handlers pre-check for a friendly error and the composite index is the
// backstop.
//
// The *Snapshot fields copy the vehicle's attributes as of the log date.
// They are written once at creation and never refreshed, so reports can
// reconstruct who drove which truck where even after the vehicle record is
// edited or deleted.
type DailyLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_logs_vehicle_date" json:"vehicleId"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_daily_logs_vehicle_date" json:"date"`

	// Operating fields. All zero when the log carries a reason code.
	IgnitionTime  string  `gorm:"size:5" json:"ignitionTime,omitempty"`
	StartTime     string  `gorm:"size:5" json:"startTime,omitempty"`
	EndTime       string  `gorm:"size:5" json:"endTime,omitempty"`
	LunchStart    string  `gorm:"size:5" json:"lunchStart,omitempty"`
	LunchEnd      string  `gorm:"size:5" json:"lunchEnd,omitempty"`
	ExtraStart    string  `gorm:"size:5" json:"extraStart,omitempty"`
	ExtraEnd      string  `gorm:"size:5" json:"extraEnd,omitempty"`
	DistanceKM    float64 `json:"distanceKm"`
	MaxSpeed      float64 `json:"maxSpeed"`
	SpeedingCount int     `json:"speedingCount"`

	NonOperatingReason string `gorm:"size:30" json:"nonOperatingReason,omitempty"`

	// Historical snapshots, stamped at creation.
	DriverSnapshot       string `gorm:"size:100" json:"driverSnapshot"`
	MunicipalitySnapshot string `gorm:"size:100" json:"municipalitySnapshot"`
	ContractSnapshot     string `gorm:"size:30" json:"contractSnapshot"`
	PlateSnapshot        string `gorm:"size:10" json:"plateSnapshot"`
	ModelSnapshot        string `gorm:"size:100" json:"modelSnapshot"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *DailyLog) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// Operating reports whether the log records a day of operation, as opposed
// to a parked-for-reason day.
func (d *DailyLog) Operating() bool {
	return strings.TrimSpace(d.NonOperatingReason) == ""
}

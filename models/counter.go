// models/counter.go
package models

// Counter hands out monotonically increasing numbers. The only consumer
// today is the requisition internal number; rows are read FOR UPDATE so a
// number is never handed out twice.
type Counter struct {
	Name  string `gorm:"size:50;primaryKey" json:"name"`
	Value int    `gorm:"not null;default:0" json:"value"`
}

// CounterRequisitions is the counter row backing Requisition.InternalNumber.
const CounterRequisitions = "requisitions"

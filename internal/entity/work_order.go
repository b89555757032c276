package entity

import "time"

// Stage statuses. Transitions are validated by the stage service:
// planned -> in_progress -> done, done is terminal.
const (
	StageStatusPlanned    = "planned"
	StageStatusInProgress = "in_progress"
	StageStatusDone       = "done"
)

// WorkOrder is one production run of a product within a planned window.
type WorkOrder struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	ProductCode  string     `json:"product_code" gorm:"size:64;not null;index"`
	LotNo        string     `json:"lot_no" gorm:"size:64;not null"`
	Qty          int        `json:"qty" gorm:"not null"`
	ProducedQty  int        `json:"produced_qty" gorm:"not null;default:0"`
	PlannedStart *time.Time `json:"planned_start"`
	PlannedEnd   *time.Time `json:"planned_end"`
	MachineID    *uint      `json:"machine_id" gorm:"index"`
	CreatedBy    uint       `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`

	Stages []WorkOrderStage `json:"stages,omitempty" gorm:"foreignKey:WorkOrderID"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}

// WorkOrderStage is one sequential step of a work order. Stages are created
// in a batch when the work order is created and never independently added.
type WorkOrderStage struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	WorkOrderID  uint       `json:"work_order_id" gorm:"not null;index"`
	StageName    string     `json:"stage_name" gorm:"size:64;not null"`
	PlannedStart *time.Time `json:"planned_start"`
	PlannedEnd   *time.Time `json:"planned_end"`
	ActualStart  *time.Time `json:"actual_start"`
	ActualEnd    *time.Time `json:"actual_end"`
	PausedAt     *time.Time `json:"paused_at"`
	ResumedAt    *time.Time `json:"resumed_at"`
	Status       string     `json:"status" gorm:"size:16;not null;default:planned"`
}

func (WorkOrderStage) TableName() string {
	return "work_order_stages"
}

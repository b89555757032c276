package entity

import "time"

// Issue statuses
const (
	IssueStatusOpen         = "open"
	IssueStatusAcknowledged = "acknowledged"
	IssueStatusResolved     = "resolved"
)

func ValidIssueStatus(status string) bool {
	return status == IssueStatusOpen || status == IssueStatusAcknowledged || status == IssueStatusResolved
}

// Issue is a problem report attached to a work-order stage,
// e.g. machine_breakdown or material_shortage.
type Issue struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	WorkOrderStageID uint       `json:"work_order_stage_id" gorm:"not null;index"`
	Type             string     `json:"type" gorm:"size:64;not null"`
	Description      *string    `json:"description"`
	Status           string     `json:"status" gorm:"size:16;not null;default:open"`
	CreatedBy        uint       `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	AcknowledgedAt   *time.Time `json:"acknowledged_at"`
	ResolvedAt       *time.Time `json:"resolved_at"`
}

func (Issue) TableName() string {
	return "issues"
}

// Notification is addressed to a role, not a specific user. Only callers
// holding the recipient role may read or mark it.
type Notification struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	IssueID       *uint      `json:"issue_id" gorm:"index"`
	RecipientRole string     `json:"recipient_role" gorm:"size:16;not null;index"`
	Message       string     `json:"message" gorm:"size:512;not null"`
	Read          bool       `json:"read" gorm:"not null;default:false"`
	CreatedAt     time.Time  `json:"created_at"`
	ReadAt        *time.Time `json:"read_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

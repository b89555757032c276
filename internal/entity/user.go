package entity

import "time"

// User roles
const (
	RoleAdmin   = "admin"
	RolePlanner = "planner"
	RoleWorker  = "worker"
)

// ManagerRoles receive operational notifications (issue fan-out).
var ManagerRoles = []string{RoleAdmin, RolePlanner}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RolePlanner || role == RoleWorker
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"`
	Email        *string   `json:"email" gorm:"size:128;uniqueIndex"`
	Phone        *string   `json:"phone" gorm:"size:32"`
	Role         string    `json:"role" gorm:"size:16;not null;default:worker"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

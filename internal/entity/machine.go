package entity

import "time"

// Machine is a named production resource, e.g. injection_molding or assembly.
type Machine struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	MachineType string    `json:"machine_type" gorm:"size:50;not null"`
	Location    *string   `json:"location" gorm:"size:100"`
	Status      string    `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Machine) TableName() string {
	return "machines"
}

// MachineReading stores sensor values as strings so different reading types
// (temperature, pressure, speed) share one table.
type MachineReading struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	MachineID   uint      `json:"machine_id" gorm:"not null;index"`
	ReadingType string    `json:"reading_type" gorm:"size:50;not null"`
	Value       string    `json:"value" gorm:"size:128;not null"`
	Timestamp   time.Time `json:"timestamp"`
}

func (MachineReading) TableName() string {
	return "machine_readings"
}

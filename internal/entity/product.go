package entity

import "time"

// Product is a catalog entry. The injection-molding parameter columns mirror
// the mold tracking sheet (cavity count, cycle time, temperatures, material,
// part weight, hourly production); they are the source data for the recipe
// estimator. DeletedAt implements soft delete: NULL means active.
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Code        string  `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name        string  `json:"name" gorm:"size:128;not null"`
	Description *string `json:"description"`

	CavityCount      *int    `json:"cavity_count"`
	CycleTimeSec     *int    `json:"cycle_time_sec"`
	InjectionTempC   *int    `json:"injection_temp_c"`
	MoldTempC        *int    `json:"mold_temp_c"`
	Material         *string `json:"material" gorm:"size:64"`
	PartWeightG      *int    `json:"part_weight_g"`
	HourlyProduction *int    `json:"hourly_production"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

// HasRecipeParams reports whether all three estimator parameters are set.
func (p *Product) HasRecipeParams() bool {
	return p.InjectionTempC != nil && p.MoldTempC != nil && p.CycleTimeSec != nil
}

// Mold statuses (shared with Machine).
const (
	ResourceStatusActive      = "active"
	ResourceStatusMaintenance = "maintenance"
	ResourceStatusInactive    = "inactive"
)

// Mold references the product it produces. Its production parameters moved
// to Product; the mold row keeps only identity and status.
type Mold struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Code        string     `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name        string     `json:"name" gorm:"size:128;not null"`
	Description *string    `json:"description"`
	ProductID   *uint      `json:"product_id" gorm:"index"`
	Status      string     `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at" gorm:"index"`
}

func (Mold) TableName() string {
	return "molds"
}

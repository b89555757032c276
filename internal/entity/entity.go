package entity

import "gorm.io/gorm"

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},

		// Catalog
		&Product{},
		&Mold{},

		// Resources
		&Machine{},
		&MachineReading{},

		// Production
		&WorkOrder{},
		&WorkOrderStage{},

		// Issues
		&Issue{},
		&Notification{},

		// Estimator
		&RecipeModel{},
	)
}

package repository

import "gorm.io/gorm"

// Repositories bundles all stores for injection into services.
type Repositories struct {
	User         *UserRepository
	WorkOrder    *WorkOrderRepository
	Stage        *StageRepository
	Issue        *IssueRepository
	Notification *NotificationRepository
	Product      *ProductRepository
	Mold         *MoldRepository
	Machine      *MachineRepository
	RecipeModel  *RecipeModelRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		WorkOrder:    NewWorkOrderRepository(db),
		Stage:        NewStageRepository(db),
		Issue:        NewIssueRepository(db),
		Notification: NewNotificationRepository(db),
		Product:      NewProductRepository(db),
		Mold:         NewMoldRepository(db),
		Machine:      NewMachineRepository(db),
		RecipeModel:  NewRecipeModelRepository(db),
	}
}

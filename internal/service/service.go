package service

import (
	"github.com/Mervedgan/uretim-takip-sistemi/internal/config"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
	"github.com/redis/go-redis/v9"
)

// Services bundles every service for handler wiring.
type Services struct {
	Auth      *AuthService
	WorkOrder *WorkOrderService
	Stage     *StageService
	Issue     *IssueService
	Product   *ProductService
	Mold      *MoldService
	Machine   *MachineService
	Recipe    *RecipeService
	Model     *ModelService
	Metrics   *MetricsService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, rdb, cfg),
		WorkOrder: NewWorkOrderService(repos.WorkOrder, repos.Machine),
		Stage:     NewStageService(repos.Stage),
		Issue:     NewIssueService(repos.Issue, repos.Notification, repos.Stage),
		Product:   NewProductService(repos.Product, repos.Mold),
		Mold:      NewMoldService(repos.Mold, repos.Product),
		Machine:   NewMachineService(repos.Machine),
		Recipe:    NewRecipeService(repos.Product),
		Model:     NewModelService(repos.Product, repos.RecipeModel),
		Metrics:   NewMetricsService(repos.WorkOrder, repos.Stage),
	}
}

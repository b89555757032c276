package repository

import (
	"errors"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"gorm.io/gorm"
)

type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

// Create inserts the work order together with its stage batch.
func (r *WorkOrderRepository) Create(wo *entity.WorkOrder) error {
	return r.db.Create(wo).Error
}

func (r *WorkOrderRepository) GetByID(id uint) (*entity.WorkOrder, error) {
	var wo entity.WorkOrder
	err := r.db.Preload("Stages").First(&wo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wo, nil
}

type WOListParams struct {
	ProductCode string
	MachineID   *uint
}

func (r *WorkOrderRepository) List(params WOListParams) ([]entity.WorkOrder, error) {
	query := r.db.Model(&entity.WorkOrder{})
	if params.ProductCode != "" {
		query = query.Where("product_code = ?", params.ProductCode)
	}
	if params.MachineID != nil {
		query = query.Where("machine_id = ?", *params.MachineID)
	}
	var wos []entity.WorkOrder
	err := query.Order("created_at DESC").Find(&wos).Error
	return wos, err
}

func (r *WorkOrderRepository) Update(wo *entity.WorkOrder) error {
	return r.db.Save(wo).Error
}

func (r *WorkOrderRepository) GetStages(workOrderID uint) ([]entity.WorkOrderStage, error) {
	var stages []entity.WorkOrderStage
	err := r.db.Where("work_order_id = ?", workOrderID).
		Order("planned_start ASC, id ASC").Find(&stages).Error
	return stages, err
}

func (r *WorkOrderRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.WorkOrder{}).Count(&n).Error
	return n, err
}

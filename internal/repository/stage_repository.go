package repository

import (
	"errors"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"gorm.io/gorm"
)

type StageRepository struct {
	db *gorm.DB
}

func NewStageRepository(db *gorm.DB) *StageRepository {
	return &StageRepository{db: db}
}

func (r *StageRepository) GetByID(id uint) (*entity.WorkOrderStage, error) {
	var stage entity.WorkOrderStage
	err := r.db.First(&stage, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stage, nil
}

// UpdateWhereStatus applies updates only if the row still has the expected
// status. The returned row count is the compare-and-swap outcome: zero means
// another request changed the stage first.
func (r *StageRepository) UpdateWhereStatus(id uint, expectedStatus string, updates map[string]interface{}) (int64, error) {
	res := r.db.Model(&entity.WorkOrderStage{}).
		Where("id = ? AND status = ?", id, expectedStatus).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *StageRepository) Save(stage *entity.WorkOrderStage) error {
	return r.db.Save(stage).Error
}

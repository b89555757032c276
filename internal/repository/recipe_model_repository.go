package repository

import (
	"errors"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"gorm.io/gorm"
)

type RecipeModelRepository struct {
	db *gorm.DB
}

func NewRecipeModelRepository(db *gorm.DB) *RecipeModelRepository {
	return &RecipeModelRepository{db: db}
}

// Latest returns the current trained model, or nil when none exists.
func (r *RecipeModelRepository) Latest() (*entity.RecipeModel, error) {
	var m entity.RecipeModel
	err := r.db.Order("trained_at DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// Replace deletes previous models and stores the new one, so exactly one
// current model row exists after training.
func (r *RecipeModelRepository) Replace(m *entity.RecipeModel) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.RecipeModel{}).Error; err != nil {
			return err
		}
		return tx.Create(m).Error
	})
}

package repository

import (
	"errors"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"gorm.io/gorm"
)

type MoldRepository struct {
	db *gorm.DB
}

func NewMoldRepository(db *gorm.DB) *MoldRepository {
	return &MoldRepository{db: db}
}

func (r *MoldRepository) Create(m *entity.Mold) error {
	return r.db.Create(m).Error
}

func (r *MoldRepository) Save(m *entity.Mold) error {
	return r.db.Save(m).Error
}

func (r *MoldRepository) GetByID(id uint) (*entity.Mold, error) {
	var m entity.Mold
	err := r.db.First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MoldRepository) GetActiveByID(id uint) (*entity.Mold, error) {
	var m entity.Mold
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MoldRepository) GetByCode(code string) (*entity.Mold, error) {
	var m entity.Mold
	err := r.db.Where("code = ?", code).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MoldRepository) ListActive() ([]entity.Mold, error) {
	var ms []entity.Mold
	err := r.db.Where("deleted_at IS NULL").Find(&ms).Error
	return ms, err
}

// CountActiveByProduct counts the active molds still referencing a product.
func (r *MoldRepository) CountActiveByProduct(productID uint) (int64, error) {
	var n int64
	err := r.db.Model(&entity.Mold{}).
		Where("product_id = ? AND deleted_at IS NULL", productID).Count(&n).Error
	return n, err
}

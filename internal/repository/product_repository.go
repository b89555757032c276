package repository

import (
	"errors"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) Save(p *entity.Product) error {
	return r.db.Save(p).Error
}

// GetByID resolves a product regardless of soft-delete state; callers that
// only want active rows use GetActiveByID.
func (r *ProductRepository) GetByID(id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.db.First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetActiveByID(id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByCode(code string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.Where("code = ?", code).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// FindActiveByName matches the product name case-insensitively against
// active rows.
func (r *ProductRepository) FindActiveByName(name string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.Where("name ILIKE ? AND deleted_at IS NULL", name).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) ListActive() ([]entity.Product, error) {
	var ps []entity.Product
	err := r.db.Where("deleted_at IS NULL").Find(&ps).Error
	return ps, err
}

// ListActiveNames returns the distinct names of active products, sorted.
func (r *ProductRepository) ListActiveNames() ([]string, error) {
	var names []string
	err := r.db.Model(&entity.Product{}).
		Where("deleted_at IS NULL").
		Distinct("name").Order("name ASC").Pluck("name", &names).Error
	return names, err
}

// ListMaterials returns the distinct material descriptors of active products.
func (r *ProductRepository) ListMaterials() ([]string, error) {
	var materials []string
	err := r.db.Model(&entity.Product{}).
		Where("deleted_at IS NULL AND material IS NOT NULL").
		Distinct("material").Order("material ASC").Pluck("material", &materials).Error
	return materials, err
}

// FindByMaterial returns active products whose material contains the
// descriptor (case-insensitive) and which carry all three recipe parameters.
func (r *ProductRepository) FindByMaterial(material string) ([]entity.Product, error) {
	var ps []entity.Product
	err := r.db.Where(
		"deleted_at IS NULL AND material ILIKE ? AND injection_temp_c IS NOT NULL AND mold_temp_c IS NOT NULL AND cycle_time_sec IS NOT NULL",
		"%"+material+"%",
	).Find(&ps).Error
	return ps, err
}

// ListComplete returns active products with all three recipe parameters,
// the training set of the estimator model.
func (r *ProductRepository) ListComplete() ([]entity.Product, error) {
	var ps []entity.Product
	err := r.db.Where(
		"deleted_at IS NULL AND injection_temp_c IS NOT NULL AND mold_temp_c IS NOT NULL AND cycle_time_sec IS NOT NULL",
	).Find(&ps).Error
	return ps, err
}

func (r *ProductRepository) CountComplete() (int64, error) {
	var n int64
	err := r.db.Model(&entity.Product{}).
		Where("deleted_at IS NULL AND injection_temp_c IS NOT NULL AND mold_temp_c IS NOT NULL AND cycle_time_sec IS NOT NULL").
		Count(&n).Error
	return n, err
}

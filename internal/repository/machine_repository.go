package repository

import (
	"errors"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"gorm.io/gorm"
)

type MachineRepository struct {
	db *gorm.DB
}

func NewMachineRepository(db *gorm.DB) *MachineRepository {
	return &MachineRepository{db: db}
}

func (r *MachineRepository) Create(m *entity.Machine) error {
	return r.db.Create(m).Error
}

func (r *MachineRepository) GetByID(id uint) (*entity.Machine, error) {
	var m entity.Machine
	err := r.db.First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MachineRepository) GetByName(name string) (*entity.Machine, error) {
	var m entity.Machine
	err := r.db.Where("name = ?", name).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MachineRepository) List() ([]entity.Machine, error) {
	var ms []entity.Machine
	err := r.db.Order("name ASC").Find(&ms).Error
	return ms, err
}

func (r *MachineRepository) CreateReading(reading *entity.MachineReading) error {
	return r.db.Create(reading).Error
}

func (r *MachineRepository) ListReadings(machineID uint, limit int) ([]entity.MachineReading, error) {
	if limit <= 0 {
		limit = 100
	}
	var readings []entity.MachineReading
	err := r.db.Where("machine_id = ?", machineID).
		Order("timestamp DESC").Limit(limit).Find(&readings).Error
	return readings, err
}

package service

import (
	"fmt"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
)

type MachineService struct {
	machineRepo *repository.MachineRepository
}

func NewMachineService(machineRepo *repository.MachineRepository) *MachineService {
	return &MachineService{machineRepo: machineRepo}
}

func (s *MachineService) List() ([]entity.Machine, error) {
	return s.machineRepo.List()
}

func (s *MachineService) GetByID(id uint) (*entity.Machine, error) {
	m, err := s.machineRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load machine: %w", err)
	}
	if m == nil {
		return nil, apperr.E(apperr.KindNotFound, "machine %d not found", id)
	}
	return m, nil
}

type CreateMachineRequest struct {
	Name        string  `json:"name" binding:"required"`
	MachineType string  `json:"machine_type" binding:"required"`
	Location    *string `json:"location"`
	Status      string  `json:"status"`
}

func (s *MachineService) Create(req CreateMachineRequest) (*entity.Machine, error) {
	existing, err := s.machineRepo.GetByName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("lookup machine name: %w", err)
	}
	if existing != nil {
		return nil, apperr.E(apperr.KindConflict, "machine %q already registered", req.Name)
	}

	status := req.Status
	if status == "" {
		status = entity.ResourceStatusActive
	}
	if !validResourceStatus(status) {
		return nil, apperr.E(apperr.KindInvalidArgument, "invalid machine status %q", status)
	}

	m := &entity.Machine{
		Name:        req.Name,
		MachineType: req.MachineType,
		Location:    req.Location,
		Status:      status,
	}
	if err := s.machineRepo.Create(m); err != nil {
		return nil, fmt.Errorf("create machine: %w", err)
	}
	return m, nil
}

type AddReadingRequest struct {
	ReadingType string `json:"reading_type" binding:"required"`
	Value       string `json:"value" binding:"required"`
}

// AddReading records a sensor reading stamped with the server clock.
func (s *MachineService) AddReading(machineID uint, req AddReadingRequest) (*entity.MachineReading, error) {
	if _, err := s.GetByID(machineID); err != nil {
		return nil, err
	}

	reading := &entity.MachineReading{
		MachineID:   machineID,
		ReadingType: req.ReadingType,
		Value:       req.Value,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.machineRepo.CreateReading(reading); err != nil {
		return nil, fmt.Errorf("record reading: %w", err)
	}
	return reading, nil
}

// Readings returns the most recent readings of a machine, newest first.
func (s *MachineService) Readings(machineID uint, limit int) ([]entity.MachineReading, error) {
	if _, err := s.GetByID(machineID); err != nil {
		return nil, err
	}
	return s.machineRepo.ListReadings(machineID, limit)
}

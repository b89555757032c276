package service

import (
	"fmt"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
)

type MoldService struct {
	moldRepo    *repository.MoldRepository
	productRepo *repository.ProductRepository
}

func NewMoldService(moldRepo *repository.MoldRepository, productRepo *repository.ProductRepository) *MoldService {
	return &MoldService{moldRepo: moldRepo, productRepo: productRepo}
}

func (s *MoldService) List() ([]entity.Mold, error) {
	return s.moldRepo.ListActive()
}

func (s *MoldService) GetByID(id uint) (*entity.Mold, error) {
	m, err := s.moldRepo.GetActiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("load mold: %w", err)
	}
	if m == nil {
		return nil, apperr.E(apperr.KindNotFound, "mold %d not found or deleted", id)
	}
	return m, nil
}

type CreateMoldRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ProductID   *uint   `json:"product_id"`
	Status      string  `json:"status"`
}

func (s *MoldService) Create(req CreateMoldRequest) (*entity.Mold, error) {
	existing, err := s.moldRepo.GetByCode(req.Code)
	if err != nil {
		return nil, fmt.Errorf("lookup mold code: %w", err)
	}
	if existing != nil {
		return nil, apperr.E(apperr.KindConflict, "mold code %q already registered", req.Code)
	}

	if req.ProductID != nil {
		if err := s.checkProduct(*req.ProductID); err != nil {
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = entity.ResourceStatusActive
	}
	if !validResourceStatus(status) {
		return nil, apperr.E(apperr.KindInvalidArgument, "invalid mold status %q", status)
	}

	m := &entity.Mold{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ProductID:   req.ProductID,
		Status:      status,
	}
	if err := s.moldRepo.Create(m); err != nil {
		return nil, fmt.Errorf("create mold: %w", err)
	}
	return m, nil
}

type MoldPatch struct {
	Name        entity.Patch[string] `json:"name"`
	Description entity.Patch[string] `json:"description"`
	ProductID   entity.Patch[uint]   `json:"product_id"`
	Status      entity.Patch[string] `json:"status"`
}

func (s *MoldService) Update(id uint, patch MoldPatch) (*entity.Mold, error) {
	m, err := s.moldRepo.GetActiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("load mold: %w", err)
	}
	if m == nil {
		return nil, apperr.E(apperr.KindNotFound, "mold %d not found or deleted", id)
	}

	if patch.ProductID.IsSet() && !patch.ProductID.IsNull() {
		if err := s.checkProduct(patch.ProductID.Value()); err != nil {
			return nil, err
		}
	}
	if patch.Status.IsSet() {
		if patch.Status.IsNull() || !validResourceStatus(patch.Status.Value()) {
			return nil, apperr.E(apperr.KindInvalidArgument, "invalid mold status")
		}
	}

	patch.Name.ApplyRequired(&m.Name)
	patch.Description.Apply(&m.Description)
	patch.ProductID.Apply(&m.ProductID)
	patch.Status.ApplyRequired(&m.Status)

	now := time.Now().UTC()
	m.UpdatedAt = &now

	if err := s.moldRepo.Save(m); err != nil {
		return nil, fmt.Errorf("update mold: %w", err)
	}
	return m, nil
}

func (s *MoldService) Delete(id uint) (*entity.Mold, error) {
	m, err := s.moldRepo.GetActiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("load mold: %w", err)
	}
	if m == nil {
		return nil, apperr.E(apperr.KindNotFound, "mold %d not found or already deleted", id)
	}

	now := time.Now().UTC()
	m.DeletedAt = &now
	m.UpdatedAt = &now
	if err := s.moldRepo.Save(m); err != nil {
		return nil, fmt.Errorf("delete mold: %w", err)
	}
	return m, nil
}

func (s *MoldService) Restore(id uint) (*entity.Mold, error) {
	m, err := s.moldRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load mold: %w", err)
	}
	if m == nil {
		return nil, apperr.E(apperr.KindNotFound, "mold %d not found", id)
	}
	if m.DeletedAt == nil {
		return nil, apperr.E(apperr.KindPreconditionFailed, "mold %d is already active", id)
	}

	now := time.Now().UTC()
	m.DeletedAt = nil
	m.UpdatedAt = &now
	if err := s.moldRepo.Save(m); err != nil {
		return nil, fmt.Errorf("restore mold: %w", err)
	}
	return m, nil
}

func (s *MoldService) checkProduct(productID uint) error {
	p, err := s.productRepo.GetActiveByID(productID)
	if err != nil {
		return fmt.Errorf("lookup product: %w", err)
	}
	if p == nil {
		return apperr.E(apperr.KindInvalidArgument, "product %d not found or deleted", productID)
	}
	return nil
}

func validResourceStatus(status string) bool {
	switch status {
	case entity.ResourceStatusActive, entity.ResourceStatusMaintenance, entity.ResourceStatusInactive:
		return true
	}
	return false
}

package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
	"github.com/xuri/excelize/v2"
)

type ProductService struct {
	productRepo *repository.ProductRepository
	moldRepo    *repository.MoldRepository
}

func NewProductService(productRepo *repository.ProductRepository, moldRepo *repository.MoldRepository) *ProductService {
	return &ProductService{productRepo: productRepo, moldRepo: moldRepo}
}

func (s *ProductService) List() ([]entity.Product, error) {
	return s.productRepo.ListActive()
}

func (s *ProductService) GetByID(id uint) (*entity.Product, error) {
	p, err := s.productRepo.GetActiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, apperr.E(apperr.KindNotFound, "product %d not found or deleted", id)
	}
	return p, nil
}

type CreateProductRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`

	CavityCount      *int    `json:"cavity_count"`
	CycleTimeSec     *int    `json:"cycle_time_sec"`
	InjectionTempC   *int    `json:"injection_temp_c"`
	MoldTempC        *int    `json:"mold_temp_c"`
	Material         *string `json:"material"`
	PartWeightG      *int    `json:"part_weight_g"`
	HourlyProduction *int    `json:"hourly_production"`
}

func (s *ProductService) Create(req CreateProductRequest) (*entity.Product, error) {
	existing, err := s.productRepo.GetByCode(req.Code)
	if err != nil {
		return nil, fmt.Errorf("lookup product code: %w", err)
	}
	if existing != nil {
		return nil, apperr.E(apperr.KindConflict, "product code %q already registered", req.Code)
	}

	p := &entity.Product{
		Code:             req.Code,
		Name:             req.Name,
		Description:      req.Description,
		CavityCount:      req.CavityCount,
		CycleTimeSec:     req.CycleTimeSec,
		InjectionTempC:   req.InjectionTempC,
		MoldTempC:        req.MoldTempC,
		Material:         req.Material,
		PartWeightG:      req.PartWeightG,
		HourlyProduction: req.HourlyProduction,
	}
	if err := s.productRepo.Create(p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// ProductPatch distinguishes absent fields (unchanged) from explicit nulls
// (cleared) on every optional column.
type ProductPatch struct {
	Name        entity.Patch[string] `json:"name"`
	Description entity.Patch[string] `json:"description"`

	CavityCount      entity.Patch[int]    `json:"cavity_count"`
	CycleTimeSec     entity.Patch[int]    `json:"cycle_time_sec"`
	InjectionTempC   entity.Patch[int]    `json:"injection_temp_c"`
	MoldTempC        entity.Patch[int]    `json:"mold_temp_c"`
	Material         entity.Patch[string] `json:"material"`
	PartWeightG      entity.Patch[int]    `json:"part_weight_g"`
	HourlyProduction entity.Patch[int]    `json:"hourly_production"`
}

func (s *ProductService) Update(id uint, patch ProductPatch) (*entity.Product, error) {
	p, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, apperr.E(apperr.KindNotFound, "product %d not found", id)
	}

	patch.Name.ApplyRequired(&p.Name)
	patch.Description.Apply(&p.Description)
	patch.CavityCount.Apply(&p.CavityCount)
	patch.CycleTimeSec.Apply(&p.CycleTimeSec)
	patch.InjectionTempC.Apply(&p.InjectionTempC)
	patch.MoldTempC.Apply(&p.MoldTempC)
	patch.Material.Apply(&p.Material)
	patch.PartWeightG.Apply(&p.PartWeightG)
	patch.HourlyProduction.Apply(&p.HourlyProduction)

	now := time.Now().UTC()
	p.UpdatedAt = &now

	if err := s.productRepo.Save(p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

type DeleteProductResult struct {
	ProductID          uint      `json:"product_id"`
	ProductCode        string    `json:"product_code"`
	DeletedAt          time.Time `json:"deleted_at"`
	RelatedActiveMolds int64     `json:"related_active_molds"`
}

// Delete soft-deletes a product. Related molds keep their reference and are
// reported for information.
func (s *ProductService) Delete(id uint) (*DeleteProductResult, error) {
	p, err := s.productRepo.GetActiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, apperr.E(apperr.KindNotFound, "product %d not found or already deleted", id)
	}

	moldCount, err := s.moldRepo.CountActiveByProduct(id)
	if err != nil {
		return nil, fmt.Errorf("count related molds: %w", err)
	}

	now := time.Now().UTC()
	p.DeletedAt = &now
	p.UpdatedAt = &now
	if err := s.productRepo.Save(p); err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}

	return &DeleteProductResult{
		ProductID:          p.ID,
		ProductCode:        p.Code,
		DeletedAt:          now,
		RelatedActiveMolds: moldCount,
	}, nil
}

// Restore re-activates a soft-deleted product.
func (s *ProductService) Restore(id uint) (*entity.Product, error) {
	p, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, apperr.E(apperr.KindNotFound, "product %d not found", id)
	}
	if p.DeletedAt == nil {
		return nil, apperr.E(apperr.KindPreconditionFailed, "product %d is already active", id)
	}

	now := time.Now().UTC()
	p.DeletedAt = nil
	p.UpdatedAt = &now
	if err := s.productRepo.Save(p); err != nil {
		return nil, fmt.Errorf("restore product: %w", err)
	}
	return p, nil
}

type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ImportExcel upserts products from the mold tracking sheet. Expected
// columns: code, name, cavity count, cycle time (s), injection temp (°C),
// mold temp (°C), material, part weight (g), hourly production. The first
// row is a header.
func (s *ProductService) ImportExcel(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.E(apperr.KindInvalidArgument, "cannot read Excel file: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, apperr.E(apperr.KindNoData, "sheet has no data rows")
	}

	result := &ImportResult{}
	for _, row := range rows[1:] {
		code := cellAt(row, 0)
		name := cellAt(row, 1)
		if code == "" || name == "" {
			result.Skipped++
			continue
		}

		existing, err := s.productRepo.GetByCode(code)
		if err != nil {
			return nil, fmt.Errorf("lookup product %q: %w", code, err)
		}

		p := existing
		if p == nil {
			p = &entity.Product{Code: code}
		}
		p.Name = name
		p.CavityCount = intCellAt(row, 2)
		p.CycleTimeSec = intCellAt(row, 3)
		p.InjectionTempC = intCellAt(row, 4)
		p.MoldTempC = intCellAt(row, 5)
		if material := cellAt(row, 6); material != "" {
			p.Material = &material
		}
		p.PartWeightG = intCellAt(row, 7)
		p.HourlyProduction = intCellAt(row, 8)

		if existing == nil {
			if err := s.productRepo.Create(p); err != nil {
				return nil, fmt.Errorf("import product %q: %w", code, err)
			}
			result.Created++
		} else {
			now := time.Now().UTC()
			p.UpdatedAt = &now
			if err := s.productRepo.Save(p); err != nil {
				return nil, fmt.Errorf("import product %q: %w", code, err)
			}
			result.Updated++
		}
	}
	return result, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func intCellAt(row []string, idx int) *int {
	raw := cellAt(row, idx)
	if raw == "" {
		return nil
	}
	// Sheets exported with decimal formatting still parse.
	if f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err == nil {
		v := int(f)
		return &v
	}
	return nil
}

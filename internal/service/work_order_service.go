package service

import (
	"fmt"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
)

// Default stage breakdowns. The two-stage pair is the classic injection +
// assembly split of the molding floor.
var (
	defaultSingleStageName = "Üretim"
	defaultStagePair       = []string{"Enjeksiyon", "Montaj"}
)

const DefaultStageCount = 2

// StageWindow is one derived planned sub-interval of a work order.
type StageWindow struct {
	Name  string
	Start time.Time
	End   time.Time
}

// DeriveStageWindows partitions [start, end) into count contiguous windows
// of equal duration. The final window absorbs division remainder so its end
// equals the work order's planned end exactly.
func DeriveStageWindows(start, end time.Time, count int, names []string) ([]StageWindow, error) {
	if count < 1 {
		return nil, apperr.E(apperr.KindInvalidArgument, "stage count must be at least 1, got %d", count)
	}
	if !end.After(start) {
		return nil, apperr.E(apperr.KindInvalidArgument, "planned_end must be after planned_start")
	}

	stageNames, err := stageNamesFor(count, names)
	if err != nil {
		return nil, err
	}

	step := end.Sub(start) / time.Duration(count)
	windows := make([]StageWindow, count)
	cursor := start
	for i := 0; i < count; i++ {
		wEnd := cursor.Add(step)
		if i == count-1 {
			wEnd = end
		}
		windows[i] = StageWindow{Name: stageNames[i], Start: cursor, End: wEnd}
		cursor = wEnd
	}
	return windows, nil
}

// stageNamesFor picks caller names when they match the count, otherwise
// falls back to the defaults.
func stageNamesFor(count int, names []string) ([]string, error) {
	if len(names) > 0 {
		if len(names) != count {
			return nil, apperr.E(apperr.KindInvalidArgument,
				"expected %d stage names, got %d", count, len(names))
		}
		return names, nil
	}
	switch count {
	case 1:
		return []string{defaultSingleStageName}, nil
	case 2:
		return append([]string(nil), defaultStagePair...), nil
	}
	generated := make([]string, count)
	for i := range generated {
		generated[i] = fmt.Sprintf("Stage %d", i+1)
	}
	return generated, nil
}

type WorkOrderService struct {
	woRepo      *repository.WorkOrderRepository
	machineRepo *repository.MachineRepository
}

func NewWorkOrderService(woRepo *repository.WorkOrderRepository, machineRepo *repository.MachineRepository) *WorkOrderService {
	return &WorkOrderService{woRepo: woRepo, machineRepo: machineRepo}
}

type CreateWorkOrderRequest struct {
	ProductCode  string    `json:"product_code" binding:"required"`
	LotNo        string    `json:"lot_no" binding:"required"`
	Qty          int       `json:"qty" binding:"required,gt=0"`
	PlannedStart time.Time `json:"planned_start" binding:"required"`
	PlannedEnd   time.Time `json:"planned_end" binding:"required"`
	MachineID    *uint     `json:"machine_id"`
	StageCount   int       `json:"stage_count"`
	StageNames   []string  `json:"stage_names"`
}

// Create stores a work order and its derived stage batch in one insert.
func (s *WorkOrderService) Create(req CreateWorkOrderRequest, userID uint) (*entity.WorkOrder, error) {
	count := req.StageCount
	if count == 0 {
		count = DefaultStageCount
	}

	windows, err := DeriveStageWindows(req.PlannedStart, req.PlannedEnd, count, req.StageNames)
	if err != nil {
		return nil, err
	}

	if req.MachineID != nil {
		machine, err := s.machineRepo.GetByID(*req.MachineID)
		if err != nil {
			return nil, fmt.Errorf("load machine: %w", err)
		}
		if machine == nil {
			return nil, apperr.E(apperr.KindNotFound, "machine %d not found", *req.MachineID)
		}
	}

	start := req.PlannedStart
	end := req.PlannedEnd
	wo := &entity.WorkOrder{
		ProductCode:  req.ProductCode,
		LotNo:        req.LotNo,
		Qty:          req.Qty,
		PlannedStart: &start,
		PlannedEnd:   &end,
		MachineID:    req.MachineID,
		CreatedBy:    userID,
	}

	stages := make([]entity.WorkOrderStage, len(windows))
	for i, w := range windows {
		wStart := w.Start
		wEnd := w.End
		stages[i] = entity.WorkOrderStage{
			StageName:    w.Name,
			PlannedStart: &wStart,
			PlannedEnd:   &wEnd,
			Status:       entity.StageStatusPlanned,
		}
	}
	wo.Stages = stages

	if err := s.woRepo.Create(wo); err != nil {
		return nil, fmt.Errorf("create work order: %w", err)
	}
	return wo, nil
}

func (s *WorkOrderService) GetByID(id uint) (*entity.WorkOrder, error) {
	wo, err := s.woRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load work order: %w", err)
	}
	if wo == nil {
		return nil, apperr.E(apperr.KindNotFound, "work order %d not found", id)
	}
	return wo, nil
}

func (s *WorkOrderService) List(params repository.WOListParams) ([]entity.WorkOrder, error) {
	return s.woRepo.List(params)
}

func (s *WorkOrderService) GetStages(workOrderID uint) ([]entity.WorkOrderStage, error) {
	wo, err := s.woRepo.GetByID(workOrderID)
	if err != nil {
		return nil, fmt.Errorf("load work order: %w", err)
	}
	if wo == nil {
		return nil, apperr.E(apperr.KindNotFound, "work order %d not found", workOrderID)
	}
	return s.woRepo.GetStages(workOrderID)
}

// UpdateProgress updates the produced counter and machine assignment.
type UpdateProgressRequest struct {
	ProducedQty entity.Patch[int]  `json:"produced_qty"`
	MachineID   entity.Patch[uint] `json:"machine_id"`
}

func (s *WorkOrderService) UpdateProgress(id uint, req UpdateProgressRequest) (*entity.WorkOrder, error) {
	wo, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.ProducedQty.IsSet() && !req.ProducedQty.IsNull() {
		if req.ProducedQty.Value() < 0 {
			return nil, apperr.E(apperr.KindInvalidArgument, "produced_qty cannot be negative")
		}
		wo.ProducedQty = req.ProducedQty.Value()
	}

	if req.MachineID.IsSet() {
		if req.MachineID.IsNull() {
			wo.MachineID = nil
		} else {
			machineID := req.MachineID.Value()
			machine, err := s.machineRepo.GetByID(machineID)
			if err != nil {
				return nil, fmt.Errorf("load machine: %w", err)
			}
			if machine == nil {
				return nil, apperr.E(apperr.KindNotFound, "machine %d not found", machineID)
			}
			wo.MachineID = &machineID
		}
	}

	if err := s.woRepo.Update(wo); err != nil {
		return nil, fmt.Errorf("update work order: %w", err)
	}
	return wo, nil
}

package service

import (
	"fmt"
	"math"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
)

// durationKPIs are the shared planned-vs-actual figures, in minutes.
type durationKPIs struct {
	PlannedDurationMin *float64 `json:"planned_duration_minutes"`
	ActualDurationMin  *float64 `json:"actual_duration_minutes"`
	DelayMin           *float64 `json:"delay_minutes"`
	EfficiencyPercent  *float64 `json:"efficiency_percent"`
	OnTime             *bool    `json:"on_time"`
}

type StageCounts struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Planned    int `json:"planned"`
}

type WorkOrderMetrics struct {
	WorkOrderID uint `json:"work_order_id"`
	durationKPIs
	Stages StageCounts `json:"stages"`
}

type StageMetrics struct {
	StageID   uint   `json:"stage_id"`
	StageName string `json:"stage_name"`
	Status    string `json:"status"`
	durationKPIs
	PlannedStart *time.Time `json:"planned_start"`
	PlannedEnd   *time.Time `json:"planned_end"`
	ActualStart  *time.Time `json:"actual_start"`
	ActualEnd    *time.Time `json:"actual_end"`
}

type MetricsService struct {
	woRepo    *repository.WorkOrderRepository
	stageRepo *repository.StageRepository
}

func NewMetricsService(woRepo *repository.WorkOrderRepository, stageRepo *repository.StageRepository) *MetricsService {
	return &MetricsService{woRepo: woRepo, stageRepo: stageRepo}
}

// ForWorkOrder computes the work order's planned-vs-actual figures. Actual
// duration spans the whole stage envelope: earliest actual start to latest
// actual end, across possibly different stages.
func (s *MetricsService) ForWorkOrder(id uint) (*WorkOrderMetrics, error) {
	wo, err := s.woRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load work order: %w", err)
	}
	if wo == nil {
		return nil, apperr.E(apperr.KindNotFound, "work order %d not found", id)
	}

	stages, err := s.woRepo.GetStages(id)
	if err != nil {
		return nil, fmt.Errorf("load stages: %w", err)
	}

	metrics := &WorkOrderMetrics{
		WorkOrderID:  id,
		durationKPIs: computeKPIs(durationMinutes(wo.PlannedStart, wo.PlannedEnd), stageEnvelopeMinutes(stages)),
		Stages:       countStages(stages),
	}
	return metrics, nil
}

// ForStage computes the same figures from a single stage's own timestamps.
func (s *MetricsService) ForStage(id uint) (*StageMetrics, error) {
	stage, err := s.stageRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	if stage == nil {
		return nil, apperr.E(apperr.KindNotFound, "stage %d not found", id)
	}

	return &StageMetrics{
		StageID:   stage.ID,
		StageName: stage.StageName,
		Status:    stage.Status,
		durationKPIs: computeKPIs(
			durationMinutes(stage.PlannedStart, stage.PlannedEnd),
			durationMinutes(stage.ActualStart, stage.ActualEnd),
		),
		PlannedStart: stage.PlannedStart,
		PlannedEnd:   stage.PlannedEnd,
		ActualStart:  stage.ActualStart,
		ActualEnd:    stage.ActualEnd,
	}, nil
}

// durationMinutes returns end-start in minutes, or nil when either bound is
// missing.
func durationMinutes(start, end *time.Time) *float64 {
	if start == nil || end == nil {
		return nil
	}
	minutes := end.Sub(*start).Minutes()
	return &minutes
}

// stageEnvelopeMinutes derives the actual duration of a work order from its
// stages: latest actual end minus earliest actual start. Requires at least
// one started and one finished stage (not necessarily the same one).
func stageEnvelopeMinutes(stages []entity.WorkOrderStage) *float64 {
	var firstStart, lastEnd *time.Time
	for i := range stages {
		s := &stages[i]
		if s.ActualStart != nil && (firstStart == nil || s.ActualStart.Before(*firstStart)) {
			firstStart = s.ActualStart
		}
		if s.ActualEnd != nil && (lastEnd == nil || s.ActualEnd.After(*lastEnd)) {
			lastEnd = s.ActualEnd
		}
	}
	return durationMinutes(firstStart, lastEnd)
}

// computeKPIs derives delay, efficiency and the on-time flag when both
// durations are present.
func computeKPIs(planned, actual *float64) durationKPIs {
	kpis := durationKPIs{
		PlannedDurationMin: planned,
		ActualDurationMin:  actual,
	}
	if planned == nil || actual == nil {
		return kpis
	}

	delay := *actual - *planned
	kpis.DelayMin = &delay

	if *actual > 0 {
		eff := round2(*planned / *actual * 100)
		kpis.EfficiencyPercent = &eff
	}

	onTime := delay <= 0
	kpis.OnTime = &onTime
	return kpis
}

func countStages(stages []entity.WorkOrderStage) StageCounts {
	counts := StageCounts{Total: len(stages)}
	for _, s := range stages {
		switch s.Status {
		case entity.StageStatusDone:
			counts.Completed++
		case entity.StageStatusInProgress:
			counts.InProgress++
		case entity.StageStatusPlanned:
			counts.Planned++
		}
	}
	return counts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

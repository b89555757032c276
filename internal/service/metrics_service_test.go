package service

import (
	"testing"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestComputeKPIs(t *testing.T) {
	// Finished 30 minutes early on a 120 minute plan.
	kpis := computeKPIs(fptr(120), fptr(90))
	require.NotNil(t, kpis.DelayMin)
	assert.Equal(t, -30.0, *kpis.DelayMin)
	require.NotNil(t, kpis.EfficiencyPercent)
	assert.Equal(t, 133.33, *kpis.EfficiencyPercent)
	require.NotNil(t, kpis.OnTime)
	assert.True(t, *kpis.OnTime)
}

func TestComputeKPIsLate(t *testing.T) {
	kpis := computeKPIs(fptr(60), fptr(90))
	assert.Equal(t, 30.0, *kpis.DelayMin)
	assert.Equal(t, 66.67, *kpis.EfficiencyPercent)
	assert.False(t, *kpis.OnTime)
}

func TestComputeKPIsExactlyOnTime(t *testing.T) {
	// Zero delay counts as on time.
	kpis := computeKPIs(fptr(60), fptr(60))
	assert.Equal(t, 0.0, *kpis.DelayMin)
	assert.True(t, *kpis.OnTime)
}

func TestComputeKPIsMissingDurations(t *testing.T) {
	kpis := computeKPIs(fptr(120), nil)
	assert.Nil(t, kpis.DelayMin)
	assert.Nil(t, kpis.EfficiencyPercent)
	assert.Nil(t, kpis.OnTime)

	kpis = computeKPIs(nil, fptr(90))
	assert.Nil(t, kpis.DelayMin)
}

func TestComputeKPIsZeroActual(t *testing.T) {
	// Instantaneous completion: delay and on_time compute, efficiency does not.
	kpis := computeKPIs(fptr(120), fptr(0))
	require.NotNil(t, kpis.DelayMin)
	assert.Equal(t, -120.0, *kpis.DelayMin)
	assert.Nil(t, kpis.EfficiencyPercent)
	assert.True(t, *kpis.OnTime)
}

func TestStageEnvelopeMinutes(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	at := func(min int) *time.Time {
		ts := base.Add(time.Duration(min) * time.Minute)
		return &ts
	}

	// Envelope spans the earliest start to the latest end across stages.
	stages := []entity.WorkOrderStage{
		{ActualStart: at(10), ActualEnd: at(50)},
		{ActualStart: at(55), ActualEnd: at(100)},
	}
	got := stageEnvelopeMinutes(stages)
	require.NotNil(t, got)
	assert.Equal(t, 90.0, *got)

	// No finished stage means no actual duration.
	stages = []entity.WorkOrderStage{{ActualStart: at(10)}}
	assert.Nil(t, stageEnvelopeMinutes(stages))

	assert.Nil(t, stageEnvelopeMinutes(nil))
}

func TestMetricsForWorkOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	wo := testutil.SeedWorkOrder(t, db)

	stageRepo := repository.NewStageRepository(db)
	svc := NewMetricsService(repository.NewWorkOrderRepository(db), stageRepo)
	stageSvc := NewStageService(stageRepo)

	// Planned but untouched: planned duration only.
	metrics, err := svc.ForWorkOrder(wo.ID)
	require.NoError(t, err)
	require.NotNil(t, metrics.PlannedDurationMin)
	assert.Equal(t, 120.0, *metrics.PlannedDurationMin)
	assert.Nil(t, metrics.ActualDurationMin)
	assert.Equal(t, 2, metrics.Stages.Total)
	assert.Equal(t, 2, metrics.Stages.Planned)

	_, err = stageSvc.Start(wo.Stages[0].ID)
	require.NoError(t, err)
	_, err = stageSvc.Complete(wo.Stages[0].ID)
	require.NoError(t, err)

	metrics, err = svc.ForWorkOrder(wo.ID)
	require.NoError(t, err)
	require.NotNil(t, metrics.ActualDurationMin)
	assert.Equal(t, 1, metrics.Stages.Completed)
	assert.Equal(t, 1, metrics.Stages.Planned)
}

func TestMetricsForStageNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewMetricsService(
		repository.NewWorkOrderRepository(db),
		repository.NewStageRepository(db),
	)

	_, err := svc.ForStage(424242)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

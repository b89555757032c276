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

func TestDeriveStageWindows(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	windows, err := DeriveStageWindows(start, end, 2, nil)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, "Enjeksiyon", windows[0].Name)
	assert.Equal(t, "Montaj", windows[1].Name)

	assert.Equal(t, start, windows[0].Start)
	assert.Equal(t, start.Add(4*time.Hour), windows[0].End)
	assert.Equal(t, windows[0].End, windows[1].Start)
	assert.Equal(t, end, windows[1].End)
}

func TestDeriveStageWindowsRemainderGoesToLast(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	// 100 minutes across 3 stages does not divide evenly.
	end := start.Add(100 * time.Minute)

	windows, err := DeriveStageWindows(start, end, 3, []string{"A", "B", "C"})
	require.NoError(t, err)
	require.Len(t, windows, 3)

	// Contiguous, and the last window ends exactly at the planned end.
	for i := 1; i < len(windows); i++ {
		assert.Equal(t, windows[i-1].End, windows[i].Start)
	}
	assert.Equal(t, end, windows[2].End)
}

func TestDeriveStageWindowsValidation(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	_, err := DeriveStageWindows(start, end, 0, nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	_, err = DeriveStageWindows(end, start, 2, nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	_, err = DeriveStageWindows(start, start, 2, nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	// Name count must match stage count.
	_, err = DeriveStageWindows(start, end, 3, []string{"only one"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}

func TestStageNamesForDefaults(t *testing.T) {
	names, err := stageNamesFor(1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Üretim"}, names)

	names, err = stageNamesFor(2, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Enjeksiyon", "Montaj"}, names)

	names, err = stageNamesFor(4, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stage 1", "Stage 2", "Stage 3", "Stage 4"}, names)
}

func TestWorkOrderCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewWorkOrderService(
		repository.NewWorkOrderRepository(db),
		repository.NewMachineRepository(db),
	)

	start := time.Now().UTC().Truncate(time.Minute)
	wo, err := svc.Create(CreateWorkOrderRequest{
		ProductCode:  "WO-TEST-01",
		LotNo:        "LOT-42",
		Qty:          500,
		PlannedStart: start,
		PlannedEnd:   start.Add(6 * time.Hour),
	}, 1)
	require.NoError(t, err)
	require.Len(t, wo.Stages, DefaultStageCount)

	for _, stage := range wo.Stages {
		assert.Equal(t, entity.StageStatusPlanned, stage.Status)
		assert.NotZero(t, stage.ID)
	}

	loaded, err := svc.GetByID(wo.ID)
	require.NoError(t, err)
	assert.Equal(t, "WO-TEST-01", loaded.ProductCode)
	assert.Len(t, loaded.Stages, DefaultStageCount)
}

func TestWorkOrderCreateUnknownMachine(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewWorkOrderService(
		repository.NewWorkOrderRepository(db),
		repository.NewMachineRepository(db),
	)

	start := time.Now().UTC()
	machineID := uint(12345)
	_, err := svc.Create(CreateWorkOrderRequest{
		ProductCode:  "WO-TEST-02",
		LotNo:        "LOT-43",
		Qty:          10,
		PlannedStart: start,
		PlannedEnd:   start.Add(time.Hour),
		MachineID:    &machineID,
	}, 1)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestWorkOrderUpdateProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	wo := testutil.SeedWorkOrder(t, db)
	svc := NewWorkOrderService(
		repository.NewWorkOrderRepository(db),
		repository.NewMachineRepository(db),
	)

	updated, err := svc.UpdateProgress(wo.ID, UpdateProgressRequest{
		ProducedQty: entity.PatchValue(42),
	})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.ProducedQty)

	_, err = svc.UpdateProgress(wo.ID, UpdateProgressRequest{
		ProducedQty: entity.PatchValue(-1),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	// Explicit null clears the machine assignment.
	updated, err = svc.UpdateProgress(wo.ID, UpdateProgressRequest{
		MachineID: entity.PatchNull[uint](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.MachineID)
}

package service

import (
	"testing"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		wantErr bool
	}{
		{"planned to in_progress", entity.StageStatusPlanned, entity.StageStatusInProgress, false},
		{"in_progress to done", entity.StageStatusInProgress, entity.StageStatusDone, false},
		{"planned to done skips a step", entity.StageStatusPlanned, entity.StageStatusDone, true},
		{"done is terminal", entity.StageStatusDone, entity.StageStatusInProgress, true},
		{"no going back", entity.StageStatusInProgress, entity.StageStatusPlanned, true},
		{"done to done", entity.StageStatusDone, entity.StageStatusDone, true},
		{"unknown current status", "cancelled", entity.StageStatusDone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.current, tt.next)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTransitionErrorNamesStates(t *testing.T) {
	err := ValidateTransition(entity.StageStatusPlanned, entity.StageStatusDone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planned")
	assert.Contains(t, err.Error(), "in_progress")

	err = ValidateTransition(entity.StageStatusDone, entity.StageStatusInProgress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none")
}

func TestAllowedTransitions(t *testing.T) {
	assert.Equal(t, []string{entity.StageStatusInProgress}, AllowedTransitions(entity.StageStatusPlanned))
	assert.Equal(t, []string{entity.StageStatusDone}, AllowedTransitions(entity.StageStatusInProgress))
	assert.Empty(t, AllowedTransitions(entity.StageStatusDone))
}

func TestStageLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	wo := testutil.SeedWorkOrder(t, db)
	svc := NewStageService(repository.NewStageRepository(db))
	stageID := wo.Stages[0].ID

	// Completing before starting is rejected.
	_, err := svc.Complete(stageID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindPreconditionFailed))

	started, err := svc.Start(stageID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageStatusInProgress, started.Status)
	require.NotNil(t, started.ActualStart)

	// Starting again is an idempotent no-op; actual_start is unchanged.
	again, err := svc.Start(stageID)
	require.NoError(t, err)
	assert.Equal(t, started.ActualStart.Unix(), again.ActualStart.Unix())

	done, err := svc.Complete(stageID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageStatusDone, done.Status)
	require.NotNil(t, done.ActualEnd)

	// Completing again is also a no-op.
	again, err = svc.Complete(stageID)
	require.NoError(t, err)
	assert.Equal(t, done.ActualEnd.Unix(), again.ActualEnd.Unix())

	// Start on a done stage is still the idempotent no-op: actual_start is
	// set, so the row comes back untouched.
	after, err := svc.Start(stageID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageStatusDone, after.Status)
	assert.Equal(t, started.ActualStart.Unix(), after.ActualStart.Unix())
}

func TestStagePauseResume(t *testing.T) {
	db := testutil.SetupTestDB(t)
	wo := testutil.SeedWorkOrder(t, db)
	svc := NewStageService(repository.NewStageRepository(db))
	stageID := wo.Stages[0].ID

	// Pausing a planned stage is invalid.
	_, err := svc.Pause(stageID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	_, err = svc.Start(stageID)
	require.NoError(t, err)

	// Resume before pause is a precondition failure.
	_, err = svc.Resume(stageID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindPreconditionFailed))

	paused, err := svc.Pause(stageID)
	require.NoError(t, err)
	require.NotNil(t, paused.PausedAt)

	// Pause latches once.
	again, err := svc.Pause(stageID)
	require.NoError(t, err)
	assert.Equal(t, paused.PausedAt.Unix(), again.PausedAt.Unix())

	resumed, err := svc.Resume(stageID)
	require.NoError(t, err)
	require.NotNil(t, resumed.ResumedAt)
}

func TestStageNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewStageService(repository.NewStageRepository(db))

	_, err := svc.Start(99999)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

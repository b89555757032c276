package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
)

// validTransitions is the stage state machine:
// planned -> in_progress -> done, done is terminal.
var validTransitions = map[string][]string{
	entity.StageStatusPlanned:    {entity.StageStatusInProgress},
	entity.StageStatusInProgress: {entity.StageStatusDone},
	entity.StageStatusDone:       {},
}

// AllowedTransitions returns the statuses reachable from current.
func AllowedTransitions(current string) []string {
	return validTransitions[current]
}

// ValidateTransition checks a requested status change against the state
// machine. The error names the current state and the allowed next states.
func ValidateTransition(current, next string) error {
	allowed, ok := validTransitions[current]
	if !ok {
		return apperr.E(apperr.KindInvalidTransition, "invalid current status: %s", current)
	}
	for _, a := range allowed {
		if a == next {
			return nil
		}
	}
	allowedStr := "none"
	if len(allowed) > 0 {
		allowedStr = strings.Join(allowed, ", ")
	}
	return apperr.E(apperr.KindInvalidTransition,
		"invalid state transition: %s -> %s. Allowed transitions from '%s': %s",
		current, next, current, allowedStr)
}

type StageService struct {
	stageRepo *repository.StageRepository
}

func NewStageService(stageRepo *repository.StageRepository) *StageService {
	return &StageService{stageRepo: stageRepo}
}

// Start moves a planned stage to in_progress and stamps actual_start.
// Starting an already started stage is a no-op returning the current row.
func (s *StageService) Start(id uint) (*entity.WorkOrderStage, error) {
	stage, err := s.stageRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	if stage == nil {
		return nil, apperr.E(apperr.KindNotFound, "stage %d not found", id)
	}

	if stage.ActualStart != nil {
		return stage, nil
	}

	if err := ValidateTransition(stage.Status, entity.StageStatusInProgress); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	// Conditional update: a concurrent start that committed first makes
	// RowsAffected zero, and we return the row it produced.
	rows, err := s.stageRepo.UpdateWhereStatus(id, entity.StageStatusPlanned, map[string]interface{}{
		"actual_start": now,
		"status":       entity.StageStatusInProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("start stage: %w", err)
	}
	if rows == 0 {
		return s.reloadAfterRace(id, entity.StageStatusInProgress)
	}

	stage.ActualStart = &now
	stage.Status = entity.StageStatusInProgress
	return stage, nil
}

// Complete moves an in_progress stage to done and stamps actual_end.
// Requires the stage to have been started.
func (s *StageService) Complete(id uint) (*entity.WorkOrderStage, error) {
	stage, err := s.stageRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	if stage == nil {
		return nil, apperr.E(apperr.KindNotFound, "stage %d not found", id)
	}

	if stage.ActualEnd != nil {
		return stage, nil
	}

	if stage.ActualStart == nil {
		return nil, apperr.E(apperr.KindPreconditionFailed, "stage %d not started yet", id)
	}

	if err := ValidateTransition(stage.Status, entity.StageStatusDone); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rows, err := s.stageRepo.UpdateWhereStatus(id, entity.StageStatusInProgress, map[string]interface{}{
		"actual_end": now,
		"status":     entity.StageStatusDone,
	})
	if err != nil {
		return nil, fmt.Errorf("complete stage: %w", err)
	}
	if rows == 0 {
		return s.reloadAfterRace(id, entity.StageStatusDone)
	}

	stage.ActualEnd = &now
	stage.Status = entity.StageStatusDone
	return stage, nil
}

// Pause latches paused_at on a running stage. The status stays in_progress;
// pause markers only annotate the timeline.
func (s *StageService) Pause(id uint) (*entity.WorkOrderStage, error) {
	stage, err := s.stageRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	if stage == nil {
		return nil, apperr.E(apperr.KindNotFound, "stage %d not found", id)
	}
	if stage.Status != entity.StageStatusInProgress {
		return nil, apperr.E(apperr.KindInvalidTransition,
			"only an in_progress stage can be paused, current status: %s", stage.Status)
	}
	if stage.PausedAt == nil {
		now := time.Now().UTC()
		stage.PausedAt = &now
		if err := s.stageRepo.Save(stage); err != nil {
			return nil, fmt.Errorf("pause stage: %w", err)
		}
	}
	return stage, nil
}

// Resume latches resumed_at on a paused stage.
func (s *StageService) Resume(id uint) (*entity.WorkOrderStage, error) {
	stage, err := s.stageRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	if stage == nil {
		return nil, apperr.E(apperr.KindNotFound, "stage %d not found", id)
	}
	if stage.Status != entity.StageStatusInProgress {
		return nil, apperr.E(apperr.KindInvalidTransition,
			"only an in_progress stage can be resumed, current status: %s", stage.Status)
	}
	if stage.PausedAt == nil {
		return nil, apperr.E(apperr.KindPreconditionFailed, "stage %d was never paused", id)
	}
	if stage.ResumedAt == nil {
		now := time.Now().UTC()
		stage.ResumedAt = &now
		if err := s.stageRepo.Save(stage); err != nil {
			return nil, fmt.Errorf("resume stage: %w", err)
		}
	}
	return stage, nil
}

// reloadAfterRace re-reads a stage after a lost compare-and-swap. If the
// concurrent writer applied the same transition, treat the call as the
// idempotent duplicate it is; otherwise report the conflict.
func (s *StageService) reloadAfterRace(id uint, wantedStatus string) (*entity.WorkOrderStage, error) {
	stage, err := s.stageRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("reload stage: %w", err)
	}
	if stage == nil {
		return nil, apperr.E(apperr.KindNotFound, "stage %d not found", id)
	}
	if stage.Status == wantedStatus {
		return stage, nil
	}
	return nil, apperr.E(apperr.KindConflict,
		"stage %d was modified concurrently, current status: %s", id, stage.Status)
}

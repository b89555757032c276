package service

import (
	"fmt"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
)

type IssueService struct {
	issueRepo        *repository.IssueRepository
	notificationRepo *repository.NotificationRepository
	stageRepo        *repository.StageRepository
}

func NewIssueService(issueRepo *repository.IssueRepository, notificationRepo *repository.NotificationRepository, stageRepo *repository.StageRepository) *IssueService {
	return &IssueService{
		issueRepo:        issueRepo,
		notificationRepo: notificationRepo,
		stageRepo:        stageRepo,
	}
}

// Report files an issue against a stage and notifies every manager role.
// Returns the issue and the number of notifications created.
func (s *IssueService) Report(stageID uint, issueType string, description *string, reporterID uint, reporterName string) (*entity.Issue, int, error) {
	stage, err := s.stageRepo.GetByID(stageID)
	if err != nil {
		return nil, 0, fmt.Errorf("load stage: %w", err)
	}
	if stage == nil {
		return nil, 0, apperr.E(apperr.KindNotFound, "stage %d not found", stageID)
	}
	if issueType == "" {
		return nil, 0, apperr.E(apperr.KindInvalidArgument, "issue type is required")
	}

	issue := &entity.Issue{
		WorkOrderStageID: stageID,
		Type:             issueType,
		Description:      description,
		Status:           entity.IssueStatusOpen,
		CreatedBy:        reporterID,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.issueRepo.Create(issue); err != nil {
		return nil, 0, fmt.Errorf("create issue: %w", err)
	}

	message := fmt.Sprintf("New issue on stage %d: %s", stageID, issueType)
	if description != nil && *description != "" {
		message += " - " + *description
	}
	sent, err := s.fanOut(issue.ID, message)
	if err != nil {
		return nil, 0, err
	}

	return issue, sent, nil
}

// Transition sets a new issue status. Timestamp columns latch once, and
// acknowledged/resolved transitions are fanned out to the manager roles.
// Status ordering is deliberately unguarded (an issue may go
// resolved -> open).
func (s *IssueService) Transition(issueID uint, newStatus, actorName string) (*entity.Issue, string, error) {
	if !entity.ValidIssueStatus(newStatus) {
		return nil, "", apperr.E(apperr.KindInvalidArgument,
			"invalid status %q, must be one of: open, acknowledged, resolved", newStatus)
	}

	issue, err := s.issueRepo.GetByID(issueID)
	if err != nil {
		return nil, "", fmt.Errorf("load issue: %w", err)
	}
	if issue == nil {
		return nil, "", apperr.E(apperr.KindNotFound, "issue %d not found", issueID)
	}

	oldStatus := issue.Status
	issue.Status = newStatus
	now := time.Now().UTC()

	switch newStatus {
	case entity.IssueStatusAcknowledged:
		if issue.AcknowledgedAt == nil {
			issue.AcknowledgedAt = &now
		}
	case entity.IssueStatusResolved:
		if issue.ResolvedAt == nil {
			issue.ResolvedAt = &now
		}
	}

	if err := s.issueRepo.Save(issue); err != nil {
		return nil, "", fmt.Errorf("update issue: %w", err)
	}

	// Reopening is silent; managers are only told about progress.
	if newStatus == entity.IssueStatusAcknowledged || newStatus == entity.IssueStatusResolved {
		message := fmt.Sprintf("Issue #%d %s by %s", issue.ID, newStatus, actorName)
		if _, err := s.fanOut(issue.ID, message); err != nil {
			return nil, "", err
		}
	}

	return issue, oldStatus, nil
}

func (s *IssueService) List(params repository.IssueListParams) ([]entity.Issue, error) {
	if params.Status != "" && !entity.ValidIssueStatus(params.Status) {
		return nil, apperr.E(apperr.KindInvalidArgument,
			"invalid status filter %q", params.Status)
	}
	return s.issueRepo.List(params)
}

// Notifications lists the caller role's notifications with an unread count.
func (s *IssueService) Notifications(role string, read *bool) ([]entity.Notification, int64, error) {
	ns, err := s.notificationRepo.ListByRole(role, read)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	unread, err := s.notificationRepo.CountUnread(role)
	if err != nil {
		return nil, 0, fmt.Errorf("count unread: %w", err)
	}
	return ns, unread, nil
}

// MarkRead marks a notification read. Rows addressed to another role are
// invisible to the caller and report NotFound.
func (s *IssueService) MarkRead(id uint, requesterRole string) (*entity.Notification, error) {
	n, err := s.notificationRepo.GetByIDForRole(id, requesterRole)
	if err != nil {
		return nil, fmt.Errorf("load notification: %w", err)
	}
	if n == nil {
		return nil, apperr.E(apperr.KindNotFound, "notification %d not found", id)
	}
	if !n.Read {
		now := time.Now().UTC()
		n.Read = true
		n.ReadAt = &now
		if err := s.notificationRepo.Save(n); err != nil {
			return nil, fmt.Errorf("mark notification read: %w", err)
		}
	}
	return n, nil
}

// fanOut creates one notification per manager role.
func (s *IssueService) fanOut(issueID uint, message string) (int, error) {
	ns := make([]entity.Notification, 0, len(entity.ManagerRoles))
	issueRef := issueID
	for _, role := range entity.ManagerRoles {
		ns = append(ns, entity.Notification{
			IssueID:       &issueRef,
			RecipientRole: role,
			Message:       message,
			CreatedAt:     time.Now().UTC(),
		})
	}
	if err := s.notificationRepo.CreateBatch(ns); err != nil {
		return 0, fmt.Errorf("create notifications: %w", err)
	}
	return len(ns), nil
}

package handler

import (
	"strconv"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/service"
	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	svc *service.IssueService
}

func NewIssueHandler(svc *service.IssueService) *IssueHandler {
	return &IssueHandler{svc: svc}
}

type reportIssueRequest struct {
	StageID     uint    `json:"stage_id" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Description *string `json:"description"`
}

func (h *IssueHandler) Report(c *gin.Context) {
	var req reportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	issue, sent, err := h.svc.Report(req.StageID, req.Type, req.Description, userIDFrom(c), usernameFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	Created(c, gin.H{"issue": issue, "notifications_sent": sent})
}

func (h *IssueHandler) List(c *gin.Context) {
	params := repository.IssueListParams{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}
	if raw := c.Query("stage_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			BadRequest(c, "invalid stage_id")
			return
		}
		stageID := uint(id)
		params.StageID = &stageID
	}

	issues, err := h.svc.List(params)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, issues)
}

type transitionIssueRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *IssueHandler) Transition(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req transitionIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	issue, oldStatus, err := h.svc.Transition(id, req.Status, usernameFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, gin.H{"issue": issue, "old_status": oldStatus})
}

// NotificationHandler serves the manager notification inbox. Rows are scoped
// to the caller's role.
type NotificationHandler struct {
	svc *service.IssueService
}

func NewNotificationHandler(svc *service.IssueService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	var read *bool
	if raw := c.Query("read"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			BadRequest(c, "invalid read filter")
			return
		}
		read = &v
	}

	ns, unread, err := h.svc.Notifications(roleFrom(c), read)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, gin.H{"items": ns, "unread_count": unread})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	n, err := h.svc.MarkRead(id, roleFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, n)
}

package handler

import (
	"github.com/Mervedgan/uretim-takip-sistemi/internal/service"
	"github.com/gin-gonic/gin"
)

type StageHandler struct {
	svc *service.StageService
}

func NewStageHandler(svc *service.StageService) *StageHandler {
	return &StageHandler{svc: svc}
}

func (h *StageHandler) Start(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	stage, err := h.svc.Start(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, stage)
}

func (h *StageHandler) Complete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	stage, err := h.svc.Complete(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, stage)
}

func (h *StageHandler) Pause(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	stage, err := h.svc.Pause(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, stage)
}

func (h *StageHandler) Resume(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	stage, err := h.svc.Resume(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, stage)
}

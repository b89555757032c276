package handler

import (
	"github.com/Mervedgan/uretim-takip-sistemi/internal/service"
	"github.com/gin-gonic/gin"
)

type MoldHandler struct {
	svc *service.MoldService
}

func NewMoldHandler(svc *service.MoldService) *MoldHandler {
	return &MoldHandler{svc: svc}
}

func (h *MoldHandler) List(c *gin.Context) {
	molds, err := h.svc.List()
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, molds)
}

func (h *MoldHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	mold, err := h.svc.GetByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, mold)
}

func (h *MoldHandler) Create(c *gin.Context) {
	var req service.CreateMoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	mold, err := h.svc.Create(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	Created(c, mold)
}

func (h *MoldHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var patch service.MoldPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	mold, err := h.svc.Update(id, patch)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, mold)
}

func (h *MoldHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	mold, err := h.svc.Delete(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, mold)
}

func (h *MoldHandler) Restore(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	mold, err := h.svc.Restore(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, mold)
}

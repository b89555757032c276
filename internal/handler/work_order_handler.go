package handler

import (
	"strconv"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/service"
	"github.com/gin-gonic/gin"
)

type WorkOrderHandler struct {
	svc *service.WorkOrderService
}

func NewWorkOrderHandler(svc *service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{svc: svc}
}

func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req service.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	wo, err := h.svc.Create(req, userIDFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	Created(c, wo)
}

func (h *WorkOrderHandler) List(c *gin.Context) {
	params := repository.WOListParams{ProductCode: c.Query("product_code")}
	if raw := c.Query("machine_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			BadRequest(c, "invalid machine_id")
			return
		}
		machineID := uint(id)
		params.MachineID = &machineID
	}

	wos, err := h.svc.List(params)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, wos)
}

func (h *WorkOrderHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	wo, err := h.svc.GetByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, wo)
}

func (h *WorkOrderHandler) Stages(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	stages, err := h.svc.GetStages(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, stages)
}

func (h *WorkOrderHandler) UpdateProgress(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	wo, err := h.svc.UpdateProgress(id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, wo)
}

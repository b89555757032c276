package handler

import (
	"strconv"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/service"
	"github.com/gin-gonic/gin"
)

type MachineHandler struct {
	svc *service.MachineService
}

func NewMachineHandler(svc *service.MachineService) *MachineHandler {
	return &MachineHandler{svc: svc}
}

func (h *MachineHandler) List(c *gin.Context) {
	machines, err := h.svc.List()
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, machines)
}

func (h *MachineHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	machine, err := h.svc.GetByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, machine)
}

func (h *MachineHandler) Create(c *gin.Context) {
	var req service.CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	machine, err := h.svc.Create(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	Created(c, machine)
}

func (h *MachineHandler) AddReading(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req service.AddReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	reading, err := h.svc.AddReading(id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	Created(c, reading)
}

func (h *MachineHandler) Readings(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			BadRequest(c, "invalid limit")
			return
		}
		limit = v
	}

	readings, err := h.svc.Readings(id, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, readings)
}

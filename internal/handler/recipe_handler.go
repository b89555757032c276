package handler

import (
	"github.com/Mervedgan/uretim-takip-sistemi/internal/service"
	"github.com/gin-gonic/gin"
)

// RecipeHandler answers recipe lookups and material-based estimates.
type RecipeHandler struct {
	svc *service.RecipeService
}

func NewRecipeHandler(svc *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{svc: svc}
}

// Resolve looks up the recipe for a product by name.
func (h *RecipeHandler) Resolve(c *gin.Context) {
	result, err := h.svc.Resolve(c.Query("product_name"))
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, result)
}

type estimateRequest struct {
	Material    string  `json:"material" binding:"required"`
	PartWeightG float64 `json:"part_weight_g" binding:"required"`
	CavityCount int     `json:"cavity_count" binding:"required"`
}

// Estimate derives recipe values from products sharing a material.
func (h *RecipeHandler) Estimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	estimate, err := h.svc.EstimateByMaterial(req.Material, req.PartWeightG, req.CavityCount)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, estimate)
}

func (h *RecipeHandler) ProductNames(c *gin.Context) {
	names, err := h.svc.ProductNames()
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, names)
}

func (h *RecipeHandler) Materials(c *gin.Context) {
	materials, err := h.svc.Materials()
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, materials)
}

// ModelHandler exposes the trained recipe model.
type ModelHandler struct {
	svc *service.ModelService
}

func NewModelHandler(svc *service.ModelService) *ModelHandler {
	return &ModelHandler{svc: svc}
}

func (h *ModelHandler) Train(c *gin.Context) {
	result, err := h.svc.Train()
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, result)
}

func (h *ModelHandler) Status(c *gin.Context) {
	status, err := h.svc.Status()
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, status)
}

func (h *ModelHandler) Predict(c *gin.Context) {
	name := c.Query("product_name")
	if name == "" {
		BadRequest(c, "product_name is required")
		return
	}

	result, err := h.svc.Predict(name)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, result)
}

// MetricsHandler reports planned-vs-actual figures.
type MetricsHandler struct {
	svc *service.MetricsService
}

func NewMetricsHandler(svc *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{svc: svc}
}

func (h *MetricsHandler) WorkOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	metrics, err := h.svc.ForWorkOrder(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, metrics)
}

func (h *MetricsHandler) Stage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	metrics, err := h.svc.ForStage(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, metrics)
}

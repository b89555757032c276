package handler

import (
	"github.com/Mervedgan/uretim-takip-sistemi/internal/service"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.List()
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	product, err := h.svc.GetByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	product, err := h.svc.Create(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	Created(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var patch service.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	product, err := h.svc.Update(id, patch)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.Delete(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, result)
}

func (h *ProductHandler) Restore(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	product, err := h.svc.Restore(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, product)
}

// Import ingests the mold tracking Excel sheet uploaded as form file "file".
func (h *ProductHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "form file 'file' is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "cannot open uploaded file")
		return
	}
	defer f.Close()

	result, err := h.svc.ImportExcel(f)
	if err != nil {
		respondErr(c, err)
		return
	}
	Success(c, result)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hvac-office-api/internal/model"
)

// Catalog resources (parts, job types, the equipment reference
// database) are not linked to any client, so mutations on them are
// not audited.

type partRequest struct {
	ModelNumber  *string          `json:"model_number"`
	PartName     *string          `json:"part_name"`
	Manufacturer *string          `json:"manufacturer"`
	Specs        *map[string]any  `json:"specs"`
	ManualURL    *string          `json:"manual_url"`
	Price        *decimal.Decimal `json:"price"`
	Stock        *int             `json:"stock"`
}

func (r *partRequest) apply(p *model.Part) {
	if r.ModelNumber != nil {
		p.ModelNumber = *r.ModelNumber
	}
	if r.PartName != nil {
		p.PartName = *r.PartName
	}
	if r.Manufacturer != nil {
		p.Manufacturer = *r.Manufacturer
	}
	if r.Specs != nil {
		p.Specs = *r.Specs
	}
	if r.ManualURL != nil {
		p.ManualURL = *r.ManualURL
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
}

func (h *Handler) CreatePart(c *gin.Context) {
	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ModelNumber == nil || req.PartName == nil {
		badRequest(c, "model_number and part_name are required")
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		badRequest(c, "stock cannot be negative")
		return
	}

	p := &model.Part{}
	req.apply(p)

	if err := h.store.CreatePart(c.Request.Context(), p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListParts(c *gin.Context) {
	items, err := h.store.ListParts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

func (h *Handler) GetPart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.store.PartByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		badRequest(c, "stock cannot be negative")
		return
	}

	p, err := h.store.PartByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	req.apply(p)

	if err := h.store.UpdatePart(c.Request.Context(), p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeletePart(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type jobTypeRequest struct {
	Name *string `json:"name"`
}

func (h *Handler) CreateJobType(c *gin.Context) {
	var req jobTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Name == nil || *req.Name == "" {
		badRequest(c, "name is required")
		return
	}

	j := &model.JobType{Name: *req.Name}
	if err := h.store.CreateJobType(c.Request.Context(), j); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

func (h *Handler) ListJobTypes(c *gin.Context) {
	items, err := h.store.ListJobTypes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

func (h *Handler) GetJobType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	j, err := h.store.JobTypeByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *Handler) UpdateJobType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req jobTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	j, err := h.store.JobTypeByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if req.Name != nil {
		j.Name = *req.Name
	}

	if err := h.store.UpdateJobType(c.Request.Context(), j); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *Handler) DeleteJobType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteJobType(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type equipmentDBRequest struct {
	ModelNumber   *string         `json:"model_number"`
	EquipmentType *string         `json:"equipment_type"`
	Manufacturer  *string         `json:"manufacturer"`
	Description   *string         `json:"description"`
	Specs         *map[string]any `json:"specs"`
	ManualURL     *string         `json:"manual_url"`
}

func (r *equipmentDBRequest) apply(e *model.EquipmentDatabase) {
	if r.ModelNumber != nil {
		e.ModelNumber = *r.ModelNumber
	}
	if r.EquipmentType != nil {
		e.EquipmentType = *r.EquipmentType
	}
	if r.Manufacturer != nil {
		e.Manufacturer = *r.Manufacturer
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.Specs != nil {
		e.Specs = *r.Specs
	}
	if r.ManualURL != nil {
		e.ManualURL = *r.ManualURL
	}
}

func (h *Handler) CreateEquipmentDB(c *gin.Context) {
	var req equipmentDBRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ModelNumber == nil || req.EquipmentType == nil {
		badRequest(c, "model_number and equipment_type are required")
		return
	}

	e := &model.EquipmentDatabase{}
	req.apply(e)

	if err := h.store.CreateEquipmentDB(c.Request.Context(), e); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) ListEquipmentDB(c *gin.Context) {
	items, err := h.store.ListEquipmentDB(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

func (h *Handler) GetEquipmentDB(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.store.EquipmentDBByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) UpdateEquipmentDB(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req equipmentDBRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	e, err := h.store.EquipmentDBByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	req.apply(e)

	if err := h.store.UpdateEquipmentDB(c.Request.Context(), e); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteEquipmentDB(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteEquipmentDB(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

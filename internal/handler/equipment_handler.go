package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/audit"
	"hvac-office-api/internal/middleware"
	"hvac-office-api/internal/model"
)

type equipmentRequest struct {
	ClientID               *int64      `json:"client"`
	EquipmentType          *string     `json:"equipment_type"`
	Manufacturer           *string     `json:"manufacturer"`
	ModelNumber            *string     `json:"model_number"`
	SerialNumber           *string     `json:"serial_number"`
	InstallationDate       *model.Date `json:"installation_date"`
	WarrantyExpirationDate *model.Date `json:"warranty_expiration_date"`
	FilterSize             *string     `json:"filter_size"`
}

func (r *equipmentRequest) apply(e *model.Equipment) {
	if r.ClientID != nil {
		e.ClientID = *r.ClientID
	}
	if r.EquipmentType != nil {
		e.EquipmentType = *r.EquipmentType
	}
	if r.Manufacturer != nil {
		e.Manufacturer = *r.Manufacturer
	}
	if r.ModelNumber != nil {
		e.ModelNumber = *r.ModelNumber
	}
	if r.SerialNumber != nil {
		e.SerialNumber = r.SerialNumber
	}
	if r.InstallationDate != nil {
		e.InstallationDate = r.InstallationDate
	}
	if r.WarrantyExpirationDate != nil {
		e.WarrantyExpirationDate = r.WarrantyExpirationDate
	}
	if r.FilterSize != nil {
		e.FilterSize = *r.FilterSize
	}
}

func equipmentEntry(p middleware.Principal, e *model.Equipment) audit.Entry {
	return audit.Entry{
		UserID:     p.UserID,
		ClientID:   e.OwningClientID(),
		EntityType: "Equipment",
		EntityID:   e.ID,
		Details:    e.Summary(),
	}
}

// POST /api/equipment/
func (h *Handler) CreateEquipment(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ClientID == nil || req.EquipmentType == nil {
		badRequest(c, "client and equipment_type are required")
		return
	}
	if !model.ValidEquipmentType(*req.EquipmentType) {
		badRequest(c, "unknown equipment type")
		return
	}

	e := &model.Equipment{}
	req.apply(e)

	if err := h.store.CreateEquipment(c.Request.Context(), e); err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Created(c.Request.Context(), equipmentEntry(p, e))
	c.JSON(http.StatusCreated, e)
}

// GET /api/equipment/
func (h *Handler) ListEquipment(c *gin.Context) {
	items, err := h.store.ListEquipment(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/equipment/:id/
func (h *Handler) GetEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.store.EquipmentByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// PUT/PATCH /api/equipment/:id/
func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.EquipmentType != nil && !model.ValidEquipmentType(*req.EquipmentType) {
		badRequest(c, "unknown equipment type")
		return
	}

	e, err := h.store.EquipmentByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	req.apply(e)

	if err := h.store.UpdateEquipment(c.Request.Context(), e); err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Updated(c.Request.Context(), equipmentEntry(p, e))
	c.JSON(http.StatusOK, e)
}

// DELETE /api/equipment/:id/
func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.store.EquipmentByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Deleted(c.Request.Context(), equipmentEntry(p, e))

	if err := h.store.DeleteEquipment(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

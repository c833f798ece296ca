package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hvac-office-api/internal/audit"
	"hvac-office-api/internal/middleware"
	"hvac-office-api/internal/model"
)

type serviceHistoryRequest struct {
	EquipmentID    *int64           `json:"equipment"`
	ServiceDate    *model.Date      `json:"service_date"`
	TechnicianName *string          `json:"technician_name"`
	Description    *string          `json:"description"`
	Cost           *decimal.Decimal `json:"cost"`
}

func (r *serviceHistoryRequest) apply(sh *model.ServiceHistory) {
	if r.EquipmentID != nil {
		sh.EquipmentID = *r.EquipmentID
	}
	if r.ServiceDate != nil {
		sh.ServiceDate = *r.ServiceDate
	}
	if r.TechnicianName != nil {
		sh.TechnicianName = *r.TechnicianName
	}
	if r.Description != nil {
		sh.Description = *r.Description
	}
	if r.Cost != nil {
		sh.Cost = *r.Cost
	}
}

// serviceHistoryEntry resolves the owning client through the equipment
// relation; a zero client id makes the recorder skip the entry.
func (h *Handler) serviceHistoryEntry(c *gin.Context, sh *model.ServiceHistory) audit.Entry {
	p, _ := middleware.CurrentPrincipal(c)
	clientID, err := h.store.ClientIDForEquipment(c.Request.Context(), sh.EquipmentID)
	if err != nil {
		clientID = 0
	}
	return audit.Entry{
		UserID:     p.UserID,
		ClientID:   clientID,
		EntityType: "ServiceHistory",
		EntityID:   sh.ID,
		Details:    sh.Summary(),
	}
}

// POST /api/service-history/
func (h *Handler) CreateServiceHistory(c *gin.Context) {
	var req serviceHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.EquipmentID == nil || req.ServiceDate == nil {
		badRequest(c, "equipment and service_date are required")
		return
	}

	sh := &model.ServiceHistory{}
	req.apply(sh)

	if err := h.store.CreateServiceHistory(c.Request.Context(), sh); err != nil {
		fail(c, err)
		return
	}

	h.audit.Created(c.Request.Context(), h.serviceHistoryEntry(c, sh))
	c.JSON(http.StatusCreated, sh)
}

// GET /api/service-history/
func (h *Handler) ListServiceHistory(c *gin.Context) {
	items, err := h.store.ListServiceHistory(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/service-history/:id/
func (h *Handler) GetServiceHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sh, err := h.store.ServiceHistoryByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sh)
}

// PUT/PATCH /api/service-history/:id/
func (h *Handler) UpdateServiceHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req serviceHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	sh, err := h.store.ServiceHistoryByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	req.apply(sh)

	if err := h.store.UpdateServiceHistory(c.Request.Context(), sh); err != nil {
		fail(c, err)
		return
	}

	h.audit.Updated(c.Request.Context(), h.serviceHistoryEntry(c, sh))
	c.JSON(http.StatusOK, sh)
}

// DELETE /api/service-history/:id/
func (h *Handler) DeleteServiceHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sh, err := h.store.ServiceHistoryByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	h.audit.Deleted(c.Request.Context(), h.serviceHistoryEntry(c, sh))

	if err := h.store.DeleteServiceHistory(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

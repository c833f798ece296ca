package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/audit"
	"hvac-office-api/internal/middleware"
	"hvac-office-api/internal/model"
)

type clientRequest struct {
	FirstName     *string         `json:"first_name"`
	LastName      *string         `json:"last_name"`
	AddressStreet *string         `json:"address_street"`
	AddressCity   *string         `json:"address_city"`
	AddressState  *string         `json:"address_state"`
	AddressZip    *string         `json:"address_zip"`
	PhoneNumber   *string         `json:"phone_number"`
	Email         *string         `json:"email"`
	IsActive      *bool           `json:"is_active"`
	Preferences   *map[string]any `json:"preferences"`
}

func (r *clientRequest) apply(cl *model.Client) {
	if r.FirstName != nil {
		cl.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		cl.LastName = *r.LastName
	}
	if r.AddressStreet != nil {
		cl.AddressStreet = *r.AddressStreet
	}
	if r.AddressCity != nil {
		cl.AddressCity = *r.AddressCity
	}
	if r.AddressState != nil {
		cl.AddressState = *r.AddressState
	}
	if r.AddressZip != nil {
		cl.AddressZip = *r.AddressZip
	}
	if r.PhoneNumber != nil {
		cl.PhoneNumber = *r.PhoneNumber
	}
	if r.Email != nil {
		cl.Email = *r.Email
	}
	if r.IsActive != nil {
		cl.IsActive = *r.IsActive
	}
	if r.Preferences != nil {
		cl.Preferences = *r.Preferences
	}
}

func clientEntry(p middleware.Principal, cl *model.Client) audit.Entry {
	return audit.Entry{
		UserID:     p.UserID,
		ClientID:   cl.OwningClientID(),
		EntityType: "Client",
		EntityID:   cl.ID,
		Details:    cl.Summary(),
	}
}

// POST /api/clients/
func (h *Handler) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.FirstName == nil || req.LastName == nil || req.Email == nil || *req.Email == "" {
		badRequest(c, "first_name, last_name and email are required")
		return
	}

	cl := &model.Client{IsActive: true}
	req.apply(cl)

	if err := h.store.CreateClient(c.Request.Context(), cl); err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Created(c.Request.Context(), clientEntry(p, cl))
	c.JSON(http.StatusCreated, cl)
}

// GET /api/clients/
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.store.ListClients(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(clients))
}

// GET /api/clients/:id/
func (h *Handler) GetClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cl, err := h.store.ClientByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

// PUT/PATCH /api/clients/:id/
func (h *Handler) UpdateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	cl, err := h.store.ClientByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	req.apply(cl)

	if err := h.store.UpdateClient(c.Request.Context(), cl); err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Updated(c.Request.Context(), clientEntry(p, cl))
	c.JSON(http.StatusOK, cl)
}

// DELETE /api/clients/:id/
func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	// capture the summary before the row (and its relations) are gone
	cl, err := h.store.ClientByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	// recorded first: once the row is gone the client FK can no
	// longer be satisfied (the cascade then nulls it)
	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Deleted(c.Request.Context(), clientEntry(p, cl))

	if err := h.store.DeleteClient(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/middleware"
	"hvac-office-api/internal/model"
)

type profileRequest struct {
	UserID   *int64          `json:"user"`
	Color    *string         `json:"color"`
	Phone    *string         `json:"phone"`
	Address  *map[string]any `json:"address"`
	IsActive *bool           `json:"is_active"`
}

func (r *profileRequest) apply(p *model.UserProfile) {
	if r.Color != nil {
		p.Color = *r.Color
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

// canSeeProfile: back-office roles see every profile, everyone else
// only their own.
func canSeeProfile(p middleware.Principal, prof *model.UserProfile) bool {
	return p.IsAdmin() || p.IsSecretary() || prof.UserID == p.UserID
}

// POST /api/user-profiles/
func (h *Handler) CreateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	prof := &model.UserProfile{UserID: p.UserID, IsActive: true}
	// admins may create profiles for other users
	if req.UserID != nil && p.IsAdmin() {
		prof.UserID = *req.UserID
	}
	req.apply(prof)

	if err := h.store.CreateProfile(c.Request.Context(), prof); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, prof)
}

// GET /api/user-profiles/
func (h *Handler) ListProfiles(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	forUserID := p.UserID
	if p.IsAdmin() || p.IsSecretary() {
		forUserID = 0
	}

	items, err := h.store.ListProfiles(c.Request.Context(), forUserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/user-profiles/:id/
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	prof, err := h.store.ProfileByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	if !canSeeProfile(p, prof) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}
	c.JSON(http.StatusOK, prof)
}

// PUT/PATCH /api/user-profiles/:id/
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	prof, err := h.store.ProfileByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	if !canSeeProfile(p, prof) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}
	req.apply(prof)

	if err := h.store.UpdateProfile(c.Request.Context(), prof); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}

// DELETE /api/user-profiles/:id/
func (h *Handler) DeleteProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	prof, err := h.store.ProfileByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	if !canSeeProfile(p, prof) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}

	if err := h.store.DeleteProfile(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

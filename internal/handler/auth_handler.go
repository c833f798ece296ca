package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/auth"
	"hvac-office-api/internal/middleware"
	"hvac-office-api/internal/store"
)

// TokenAuth exchanges credentials for a bearer token.
// POST /api-token-auth/
func (h *Handler) TokenAuth(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		badRequest(c, "username and password are required")
		return
	}

	u, err := h.store.UserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// same response as a bad password
			c.JSON(http.StatusBadRequest, gin.H{"detail": "unable to log in with provided credentials"})
			return
		}
		fail(c, err)
		return
	}
	if !u.IsActive || !auth.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unable to log in with provided credentials"})
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   tok,
		"user_id": u.ID,
		"email":   u.Email,
	})
}

// Me returns the current principal with their profile.
// GET /api/me/
func (h *Handler) Me(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	u, err := h.store.UserByID(c.Request.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	resp := gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"role":       u.Role,
	}
	if profile, err := h.store.ProfileByUserID(c.Request.Context(), p.UserID); err == nil {
		resp["profile"] = profile
	} else if !errors.Is(err, store.ErrNotFound) {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateMe lets the principal change their own contact fields and
// profile appearance.
// PATCH /api/me/
func (h *Handler) UpdateMe(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var req struct {
		Email     *string         `json:"email"`
		FirstName *string         `json:"first_name"`
		LastName  *string         `json:"last_name"`
		Color     *string         `json:"color"`
		Phone     *string         `json:"phone"`
		Address   *map[string]any `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	u, err := h.store.UserByID(ctx, p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if err := h.store.UpdateUserContact(ctx, u); err != nil {
		fail(c, err)
		return
	}

	if req.Color != nil || req.Phone != nil || req.Address != nil {
		profile, err := h.store.ProfileByUserID(ctx, p.UserID)
		if err != nil {
			fail(c, err)
			return
		}
		if req.Color != nil {
			profile.Color = *req.Color
		}
		if req.Phone != nil {
			profile.Phone = *req.Phone
		}
		if req.Address != nil {
			profile.Address = *req.Address
		}
		if err := h.store.UpdateProfile(ctx, profile); err != nil {
			fail(c, err)
			return
		}
	}

	h.Me(c)
}

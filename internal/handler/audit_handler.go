package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Audit logs are append-only: the API exposes reads, the recorder is
// the only writer.

// GET /api/audit-logs/
func (h *Handler) ListAuditLogs(c *gin.Context) {
	items, err := h.store.ListAuditLogs(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/audit-logs/:id/
func (h *Handler) GetAuditLog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	l, err := h.store.AuditLogByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

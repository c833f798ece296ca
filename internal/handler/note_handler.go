package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/audit"
	"hvac-office-api/internal/middleware"
	"hvac-office-api/internal/model"
)

type noteRequest struct {
	ClientID *int64  `json:"client"`
	NoteText *string `json:"note_text"`
}

func noteEntry(p middleware.Principal, n *model.Note) audit.Entry {
	return audit.Entry{
		UserID:     p.UserID,
		ClientID:   n.OwningClientID(),
		EntityType: "Note",
		EntityID:   n.ID,
		Details:    n.Summary(),
	}
}

// POST /api/notes/
func (h *Handler) CreateNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ClientID == nil || req.NoteText == nil || *req.NoteText == "" {
		badRequest(c, "client and note_text are required")
		return
	}

	n := &model.Note{ClientID: *req.ClientID, NoteText: *req.NoteText}
	if err := h.store.CreateNote(c.Request.Context(), n); err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Created(c.Request.Context(), noteEntry(p, n))
	c.JSON(http.StatusCreated, n)
}

// GET /api/notes/
func (h *Handler) ListNotes(c *gin.Context) {
	items, err := h.store.ListNotes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/notes/:id/
func (h *Handler) GetNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.store.NoteByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// PUT/PATCH /api/notes/:id/
func (h *Handler) UpdateNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	n, err := h.store.NoteByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if req.ClientID != nil {
		n.ClientID = *req.ClientID
	}
	if req.NoteText != nil {
		n.NoteText = *req.NoteText
	}

	if err := h.store.UpdateNote(c.Request.Context(), n); err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Updated(c.Request.Context(), noteEntry(p, n))
	c.JSON(http.StatusOK, n)
}

// DELETE /api/notes/:id/
func (h *Handler) DeleteNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.store.NoteByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Deleted(c.Request.Context(), noteEntry(p, n))

	if err := h.store.DeleteNote(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reminderRequest struct {
	EquipmentID  *int64      `json:"equipment"`
	ReminderDate *model.Date `json:"reminder_date"`
	ReminderType *string     `json:"reminder_type"`
	Status       *string     `json:"status"`
}

func (r *reminderRequest) apply(m *model.MaintenanceReminder) {
	if r.EquipmentID != nil {
		m.EquipmentID = *r.EquipmentID
	}
	if r.ReminderDate != nil {
		m.ReminderDate = *r.ReminderDate
	}
	if r.ReminderType != nil {
		m.ReminderType = *r.ReminderType
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
}

// POST /api/reminders/
func (h *Handler) CreateReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.EquipmentID == nil || req.ReminderDate == nil {
		badRequest(c, "equipment and reminder_date are required")
		return
	}
	if req.Status != nil && !model.ValidReminderStatus(*req.Status) {
		badRequest(c, "unknown reminder status")
		return
	}

	m := &model.MaintenanceReminder{Status: "Scheduled"}
	req.apply(m)

	if err := h.store.CreateReminder(c.Request.Context(), m); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GET /api/reminders/
func (h *Handler) ListReminders(c *gin.Context) {
	items, err := h.store.ListReminders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/reminders/:id/
func (h *Handler) GetReminder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.store.ReminderByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// PUT/PATCH /api/reminders/:id/
func (h *Handler) UpdateReminder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Status != nil && !model.ValidReminderStatus(*req.Status) {
		badRequest(c, "unknown reminder status")
		return
	}

	m, err := h.store.ReminderByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	req.apply(m)

	if err := h.store.UpdateReminder(c.Request.Context(), m); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DELETE /api/reminders/:id/
func (h *Handler) DeleteReminder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteReminder(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

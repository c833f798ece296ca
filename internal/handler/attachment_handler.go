package handler

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/audit"
	"hvac-office-api/internal/middleware"
	"hvac-office-api/internal/model"
)

// formID parses an optional integer form field into a nullable id.
func formID(c *gin.Context, field string) (*int64, bool) {
	v := c.PostForm(field)
	if v == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}

func (h *Handler) attachmentEntry(c *gin.Context, a *model.Attachment) audit.Entry {
	p, _ := middleware.CurrentPrincipal(c)
	clientID, err := h.store.ClientIDForAttachment(c.Request.Context(), a)
	if err != nil {
		clientID = 0
	}
	return audit.Entry{
		UserID:     p.UserID,
		ClientID:   clientID,
		EntityType: "Attachment",
		EntityID:   a.ID,
		Details:    a.Summary(),
	}
}

// POST /api/attachments/
// Multipart upload: the blob goes to storage first, the row after, so
// a failed insert leaves at worst an orphaned blob.
func (h *Handler) CreateAttachment(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}

	a := &model.Attachment{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}
	var ok bool
	if a.ServiceHistoryID, ok = formID(c, "service_history"); !ok {
		badRequest(c, "service_history must be a positive integer")
		return
	}
	if a.InvoiceID, ok = formID(c, "invoice"); !ok {
		badRequest(c, "invoice must be a positive integer")
		return
	}
	if a.AppointmentID, ok = formID(c, "appointment"); !ok {
		badRequest(c, "appointment must be a positive integer")
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	key, err := h.files.Put(c.Request.Context(), fh.Filename, f)
	if err != nil {
		fail(c, err)
		return
	}
	a.StoragePath = key

	if err := h.store.CreateAttachment(c.Request.Context(), a); err != nil {
		if delErr := h.files.Delete(c.Request.Context(), key); delErr != nil {
			log.Printf("attachment: orphaned blob %s: %v", key, delErr)
		}
		fail(c, err)
		return
	}

	h.audit.Created(c.Request.Context(), h.attachmentEntry(c, a))
	c.JSON(http.StatusCreated, a)
}

// GET /api/attachments/
func (h *Handler) ListAttachments(c *gin.Context) {
	items, err := h.store.ListAttachments(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/attachments/:id/
func (h *Handler) GetAttachment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.store.AttachmentByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// GET /api/attachments/:id/download/
func (h *Handler) DownloadAttachment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.store.AttachmentByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	f, err := h.files.Get(c.Request.Context(), a.StoragePath)
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	ct := a.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+a.FileName+`"`)
	c.Header("Content-Type", ct)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, f); err != nil {
		log.Printf("attachment: streaming %s: %v", a.StoragePath, err)
	}
}

// DELETE /api/attachments/:id/
func (h *Handler) DeleteAttachment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.store.AttachmentByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	h.audit.Deleted(c.Request.Context(), h.attachmentEntry(c, a))

	if err := h.store.DeleteAttachment(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	// the row is authoritative; a dangling blob only wastes space
	if err := h.files.Delete(c.Request.Context(), a.StoragePath); err != nil {
		log.Printf("attachment: removing blob %s: %v", a.StoragePath, err)
	}
	c.Status(http.StatusNoContent)
}

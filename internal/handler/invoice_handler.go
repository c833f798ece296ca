package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hvac-office-api/internal/audit"
	"hvac-office-api/internal/middleware"
	"hvac-office-api/internal/model"
)

type invoiceRequest struct {
	ServiceHistoryID *int64           `json:"service_history"`
	ClientID         *int64           `json:"client"`
	InvoiceDate      *model.Date      `json:"invoice_date"`
	DueDate          *model.Date      `json:"due_date"`
	AmountDue        *decimal.Decimal `json:"amount_due"`
	Status           *string          `json:"status"`
	PaymentMethod    *string          `json:"payment_method"`
	CheckNumber      *string          `json:"check_number"`
	IsEstimate       *bool            `json:"is_estimate"`
}

func (r *invoiceRequest) apply(i *model.Invoice) {
	if r.ServiceHistoryID != nil {
		i.ServiceHistoryID = r.ServiceHistoryID
	}
	if r.ClientID != nil {
		i.ClientID = *r.ClientID
	}
	if r.InvoiceDate != nil {
		i.InvoiceDate = *r.InvoiceDate
	}
	if r.DueDate != nil {
		i.DueDate = r.DueDate
	}
	if r.AmountDue != nil {
		i.AmountDue = *r.AmountDue
	}
	if r.Status != nil {
		i.Status = *r.Status
	}
	if r.PaymentMethod != nil {
		i.PaymentMethod = *r.PaymentMethod
	}
	if r.CheckNumber != nil {
		i.CheckNumber = *r.CheckNumber
	}
	if r.IsEstimate != nil {
		i.IsEstimate = *r.IsEstimate
	}
}

func invoiceEntry(p middleware.Principal, i *model.Invoice) audit.Entry {
	return audit.Entry{
		UserID:     p.UserID,
		ClientID:   i.OwningClientID(),
		EntityType: "Invoice",
		EntityID:   i.ID,
		Details:    i.Summary(),
	}
}

// POST /api/invoices/
func (h *Handler) CreateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ClientID == nil || req.InvoiceDate == nil || req.AmountDue == nil {
		badRequest(c, "client, invoice_date and amount_due are required")
		return
	}
	if req.PaymentMethod != nil && !model.ValidPaymentMethod(*req.PaymentMethod) {
		badRequest(c, "unknown payment method")
		return
	}
	if req.Status != nil && !model.ValidInvoiceStatus(*req.Status) {
		badRequest(c, "unknown invoice status")
		return
	}

	i := &model.Invoice{Status: model.InvoiceUnpaid, PaymentMethod: "N/A"}
	req.apply(i)

	if err := h.store.CreateInvoice(c.Request.Context(), i); err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Created(c.Request.Context(), invoiceEntry(p, i))
	c.JSON(http.StatusCreated, i)
}

// GET /api/invoices/
func (h *Handler) ListInvoices(c *gin.Context) {
	items, err := h.store.ListInvoices(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/invoices/:id/
func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	i, err := h.store.InvoiceByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, i)
}

// PUT/PATCH /api/invoices/:id/
func (h *Handler) UpdateInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.PaymentMethod != nil && !model.ValidPaymentMethod(*req.PaymentMethod) {
		badRequest(c, "unknown payment method")
		return
	}
	if req.Status != nil && !model.ValidInvoiceStatus(*req.Status) {
		badRequest(c, "unknown invoice status")
		return
	}

	i, err := h.store.InvoiceByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	req.apply(i)

	if err := h.store.UpdateInvoice(c.Request.Context(), i); err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Updated(c.Request.Context(), invoiceEntry(p, i))
	c.JSON(http.StatusOK, i)
}

// DELETE /api/invoices/:id/
func (h *Handler) DeleteInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	i, err := h.store.InvoiceByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	p, _ := middleware.CurrentPrincipal(c)
	h.audit.Deleted(c.Request.Context(), invoiceEntry(p, i))

	if err := h.store.DeleteInvoice(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/analytics/
func (h *Handler) Analytics(c *gin.Context) {
	a, err := h.store.InvoiceAnalytics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

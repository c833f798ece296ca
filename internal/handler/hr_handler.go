package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/model"
)

// GET /api/employees/
func (h *Handler) ListEmployees(c *gin.Context) {
	items, err := h.store.ListEmployees(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/employees/:id/
func (h *Handler) GetEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.store.EmployeeByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

type timeLogRequest struct {
	EmployeeID *int64     `json:"employee"`
	ClockIn    *time.Time `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out"`
}

func (r *timeLogRequest) apply(t *model.TimeLog) {
	if r.EmployeeID != nil {
		t.EmployeeID = *r.EmployeeID
	}
	if r.ClockIn != nil {
		t.ClockIn = *r.ClockIn
	}
	if r.ClockOut != nil {
		t.ClockOut = r.ClockOut
	}
}

func validateTimeLog(t *model.TimeLog) string {
	if t.ClockOut != nil && !t.ClockOut.After(t.ClockIn) {
		return "clock_out must be after clock_in"
	}
	return ""
}

// POST /api/time-logs/
func (h *Handler) CreateTimeLog(c *gin.Context) {
	var req timeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.EmployeeID == nil || req.ClockIn == nil {
		badRequest(c, "employee and clock_in are required")
		return
	}

	t := &model.TimeLog{}
	req.apply(t)
	if msg := validateTimeLog(t); msg != "" {
		badRequest(c, msg)
		return
	}

	if err := h.store.CreateTimeLog(c.Request.Context(), t); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GET /api/time-logs/
func (h *Handler) ListTimeLogs(c *gin.Context) {
	items, err := h.store.ListTimeLogs(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/time-logs/:id/
func (h *Handler) GetTimeLog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.store.TimeLogByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// PUT/PATCH /api/time-logs/:id/
func (h *Handler) UpdateTimeLog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req timeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	t, err := h.store.TimeLogByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	req.apply(t)
	if msg := validateTimeLog(t); msg != "" {
		badRequest(c, msg)
		return
	}

	if err := h.store.UpdateTimeLog(c.Request.Context(), t); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/time-logs/:id/
func (h *Handler) DeleteTimeLog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteTimeLog(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type ptoRequest struct {
	EmployeeID *int64      `json:"employee"`
	StartDate  *model.Date `json:"start_date"`
	EndDate    *model.Date `json:"end_date"`
	Notes      *string     `json:"notes"`
	Status     *string     `json:"status"`
}

func (r *ptoRequest) apply(p *model.PTORequest) {
	if r.EmployeeID != nil {
		p.EmployeeID = *r.EmployeeID
	}
	if r.StartDate != nil {
		p.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		p.EndDate = *r.EndDate
	}
	if r.Notes != nil {
		p.Notes = *r.Notes
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
}

func validatePTO(p *model.PTORequest) string {
	if p.EndDate.Before(p.StartDate.Time) {
		return "end_date must not be before start_date"
	}
	return ""
}

// POST /api/pto-requests/
func (h *Handler) CreatePTORequest(c *gin.Context) {
	var req ptoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.EmployeeID == nil || req.StartDate == nil || req.EndDate == nil {
		badRequest(c, "employee, start_date and end_date are required")
		return
	}
	if req.Status != nil && !model.ValidPTOStatus(*req.Status) {
		badRequest(c, "unknown PTO status")
		return
	}

	p := &model.PTORequest{Status: "pending"}
	req.apply(p)
	if msg := validatePTO(p); msg != "" {
		badRequest(c, msg)
		return
	}

	if err := h.store.CreatePTORequest(c.Request.Context(), p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/pto-requests/
func (h *Handler) ListPTORequests(c *gin.Context) {
	items, err := h.store.ListPTORequests(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/pto-requests/:id/
func (h *Handler) GetPTORequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.store.PTORequestByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT/PATCH /api/pto-requests/:id/
func (h *Handler) UpdatePTORequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ptoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Status != nil && !model.ValidPTOStatus(*req.Status) {
		badRequest(c, "unknown PTO status")
		return
	}

	p, err := h.store.PTORequestByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	req.apply(p)
	if msg := validatePTO(p); msg != "" {
		badRequest(c, msg)
		return
	}

	if err := h.store.UpdatePTORequest(c.Request.Context(), p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/pto-requests/:id/
func (h *Handler) DeletePTORequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeletePTORequest(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/middleware"
	"hvac-office-api/internal/model"
	"hvac-office-api/internal/store"
)

type appointmentRequest struct {
	Title          *string    `json:"title"`
	Client         *int64     `json:"client"`
	Technicians    *[]int64   `json:"technicians"`
	JobType        *int64     `json:"job_type"`
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	Location       *string    `json:"location"`
	Notes          *string    `json:"notes"`
	TravelTime     *int       `json:"travel_time"`
	IsPriority     *bool      `json:"is_priority"`
	Status         *string    `json:"status"`
	RecurrenceRule *string    `json:"recurrence_rule"`
}

// apply merges the payload onto a (possibly zero-valued) appointment,
// so partial updates fall back to the stored values.
func (r *appointmentRequest) apply(a *model.Appointment) {
	if r.Title != nil {
		a.Title = *r.Title
	}
	if r.Client != nil {
		a.ClientID = *r.Client
	}
	if r.Technicians != nil {
		a.TechnicianIDs = *r.Technicians
	}
	if r.JobType != nil {
		a.JobTypeID = r.JobType
	}
	if r.StartTime != nil {
		a.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		a.EndTime = *r.EndTime
	}
	if r.Location != nil {
		a.Location = *r.Location
	}
	if r.Notes != nil {
		a.Notes = *r.Notes
	}
	if r.TravelTime != nil {
		a.TravelTime = *r.TravelTime
	}
	if r.IsPriority != nil {
		a.IsPriority = *r.IsPriority
	}
	if r.Status != nil {
		a.Status = *r.Status
	}
	if r.RecurrenceRule != nil {
		a.RecurrenceRule = *r.RecurrenceRule
	}
}

// validateWindow enforces the basic time invariant before any
// conflict query runs.
func validateWindow(a *model.Appointment) error {
	if a.StartTime.IsZero() || a.EndTime.IsZero() {
		return fmt.Errorf("start_time and end_time are required")
	}
	if !a.StartTime.Before(a.EndTime) {
		return fmt.Errorf("appointment end time must be after start time")
	}
	return nil
}

// POST /api/appointments/
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Title == nil || *req.Title == "" {
		badRequest(c, "title is required")
		return
	}
	if req.Client == nil {
		badRequest(c, "client is required")
		return
	}
	if req.Status != nil && !model.ValidAppointmentStatus(*req.Status) {
		badRequest(c, fmt.Sprintf("%q is not a valid status", *req.Status))
		return
	}

	a := &model.Appointment{Status: model.ApptScheduled}
	req.apply(a)
	if err := validateWindow(a); err != nil {
		badRequest(c, err.Error())
		return
	}

	// the store revalidates conflicts under per-technician locks
	if err := h.store.CreateAppointment(c.Request.Context(), a); err != nil {
		fail(c, err)
		return
	}
	a.TechnicianIDs = emptyIf(a.TechnicianIDs)
	c.JSON(http.StatusCreated, a)
}

// GET /api/appointments/
func (h *Handler) ListAppointments(c *gin.Context) {
	f, err := parseAppointmentFilter(c.Request.URL.Query())
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	// technicians only see appointments they are assigned to
	p, _ := middleware.CurrentPrincipal(c)
	if p.IsTechnician() {
		f.ForTechnician = p.UserID
	}

	appts, err := h.store.ListAppointments(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	for i := range appts {
		appts[i].TechnicianIDs = emptyIf(appts[i].TechnicianIDs)
	}
	c.JSON(http.StatusOK, emptyIf(appts))
}

// GET /api/appointments/:id/
func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.store.AppointmentByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	// row filter: a technician may only see their own appointments;
	// 404 rather than 403 to avoid leaking existence
	p, _ := middleware.CurrentPrincipal(c)
	if p.IsTechnician() && !slices.Contains(a.TechnicianIDs, p.UserID) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}

	a.TechnicianIDs = emptyIf(a.TechnicianIDs)
	c.JSON(http.StatusOK, a)
}

// PUT/PATCH /api/appointments/:id/
func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Status != nil && !model.ValidAppointmentStatus(*req.Status) {
		badRequest(c, fmt.Sprintf("%q is not a valid status", *req.Status))
		return
	}

	a, err := h.store.AppointmentByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	req.apply(a)
	if err := validateWindow(a); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.store.UpdateAppointment(c.Request.Context(), a); err != nil {
		fail(c, err)
		return
	}
	a.TechnicianIDs = emptyIf(a.TechnicianIDs)
	c.JSON(http.StatusOK, a)
}

// DELETE /api/appointments/:id/
func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteAppointment(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseAppointmentFilter reads the calendar query parameters:
// start_date/end_date (inclusive date range matched against the
// appointment's end/start respectively), technician_ids (comma
// separated) and job_type.
func parseAppointmentFilter(q url.Values) (store.AppointmentFilter, error) {
	var f store.AppointmentFilter

	if v := q.Get("start_date"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("start_date: %w", err)
		}
		f.StartDate = &d
	}
	if v := q.Get("end_date"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("end_date: %w", err)
		}
		f.EndDate = &d
	}
	if v := q.Get("technician_ids"); v != "" {
		for _, s := range strings.Split(v, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return f, fmt.Errorf("technician_ids: %q is not an integer", s)
			}
			f.TechnicianIDs = append(f.TechnicianIDs, id)
		}
	}
	if v := q.Get("job_type"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, fmt.Errorf("job_type: %q is not an integer", v)
		}
		f.JobTypeID = &id
	}
	return f, nil
}

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"hvac-office-api/internal/auth"
	"hvac-office-api/internal/db"
	"hvac-office-api/internal/handler"
	"hvac-office-api/internal/middleware"
	"hvac-office-api/internal/model"
	"hvac-office-api/internal/storage"
	"hvac-office-api/internal/store"
)

func setup(t *testing.T) (*gin.Engine, *store.Store, string) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	secret := os.Getenv("JWT_SECRET")
	if dbURL == "" || secret == "" {
		t.Skip("DATABASE_URL or JWT_SECRET not set")
	}
	gin.SetMode(gin.TestMode)

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := db.Migrate(context.Background(), pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	st := store.New(pool)
	files, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	h := handler.New(st, files, secret)
	// generous limits so tests never throttle
	return h.Router(middleware.NewRateLimiter(1000, 1000)), st, secret
}

func createUser(t *testing.T, st *store.Store, role model.Role, secret string) (*model.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("testpass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &model.User{
		Username:     fmt.Sprintf("test-%s", uuid.New().String()[:8]),
		Email:        fmt.Sprintf("%s@test.com", uuid.New().String()[:8]),
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     string(role),
		Role:         role,
		IsActive:     true,
	}
	if err := st.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	tok, err := auth.MakeToken(u.ID, u.Role, secret)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return u, tok
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func createClient(t *testing.T, r *gin.Engine, token string) int64 {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/clients/", token, gin.H{
		"first_name": "Jane", "last_name": "Doe",
		"email": fmt.Sprintf("%s@client.com", uuid.New().String()[:8]),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create client: %d %s", w.Code, w.Body.String())
	}
	var cl model.Client
	decode(t, w, &cl)
	return cl.ID
}

func apptBody(clientID int64, techIDs []int64, start time.Time, d time.Duration) gin.H {
	return gin.H{
		"title":       "Service call",
		"client":      clientID,
		"technicians": techIDs,
		"start_time":  start.Format(time.RFC3339),
		"end_time":    start.Add(d).Format(time.RFC3339),
	}
}

// ----- auth -----

func TestTokenAuth(t *testing.T) {
	r, st, secret := setup(t)
	u, _ := createUser(t, st, model.RoleAdmin, secret)

	w := do(t, r, http.MethodPost, "/api-token-auth/", "", gin.H{
		"username": u.Username, "password": "testpass123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token  string `json:"token"`
		UserID int64  `json:"user_id"`
	}
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	if resp.UserID != u.ID {
		t.Errorf("user_id: got %d want %d", resp.UserID, u.ID)
	}
}

func TestTokenAuthWrongPassword(t *testing.T) {
	r, st, secret := setup(t)
	u, _ := createUser(t, st, model.RoleAdmin, secret)

	w := do(t, r, http.MethodPost, "/api-token-auth/", "", gin.H{
		"username": u.Username, "password": "wrongpassword",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	r, _, _ := setup(t)

	w := do(t, r, http.MethodGet, "/api/clients/", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/clients/", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad token, got %d", w.Code)
	}
}

// ----- permissions -----

func TestPermissionMatrix(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)
	_, secTok := createUser(t, st, model.RoleSecretary, secret)
	_, techTok := createUser(t, st, model.RoleTechnician, secret)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"tech reads clients", http.MethodGet, "/api/clients/", techTok, nil, http.StatusOK},
		{"tech cannot create client", http.MethodPost, "/api/clients/", techTok, gin.H{}, http.StatusForbidden},
		{"secretary creates client", http.MethodPost, "/api/clients/", secTok,
			gin.H{"first_name": "A", "last_name": "B", "email": uuid.New().String()[:8] + "@x.com"}, http.StatusCreated},
		{"secretary cannot read invoices", http.MethodGet, "/api/invoices/", secTok, nil, http.StatusForbidden},
		{"tech cannot read invoices", http.MethodGet, "/api/invoices/", techTok, nil, http.StatusForbidden},
		{"admin reads invoices", http.MethodGet, "/api/invoices/", adminTok, nil, http.StatusOK},
		{"secretary cannot read equipment", http.MethodGet, "/api/equipment/", secTok, nil, http.StatusForbidden},
		{"tech reads equipment", http.MethodGet, "/api/equipment/", techTok, nil, http.StatusOK},
		{"tech cannot update equipment", http.MethodPut, "/api/equipment/1/", techTok, gin.H{}, http.StatusForbidden},
		{"tech creates service history", http.MethodPost, "/api/service-history/", techTok, gin.H{}, http.StatusBadRequest},
		{"tech cannot delete service history", http.MethodDelete, "/api/service-history/1/", techTok, nil, http.StatusForbidden},
		{"secretary cannot read audit logs", http.MethodGet, "/api/audit-logs/", secTok, nil, http.StatusForbidden},
		{"admin reads audit logs", http.MethodGet, "/api/audit-logs/", adminTok, nil, http.StatusOK},
		{"tech cannot read analytics", http.MethodGet, "/api/analytics/", techTok, nil, http.StatusForbidden},
		{"secretary cannot read employees", http.MethodGet, "/api/employees/", secTok, nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.token, tt.body)
			if w.Code != tt.want {
				t.Errorf("%s %s: got %d want %d (%s)", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
		})
	}
}

// ----- clients and audit -----

func TestClientCRUDWithAudit(t *testing.T) {
	r, st, secret := setup(t)
	admin, adminTok := createUser(t, st, model.RoleAdmin, secret)

	w := do(t, r, http.MethodPost, "/api/clients/", adminTok, gin.H{
		"first_name": "Walter", "last_name": "Sobchak",
		"email": uuid.New().String()[:8] + "@client.com",
		"preferences": gin.H{"contact": "phone"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var cl model.Client
	decode(t, w, &cl)
	if cl.ID == 0 {
		t.Fatal("empty id")
	}
	if !cl.IsActive {
		t.Error("new client should be active")
	}

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/api/clients/%d/", cl.ID), adminTok, gin.H{
		"phone_number": "555-0100",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: %d %s", w.Code, w.Body.String())
	}
	var updated model.Client
	decode(t, w, &updated)
	if updated.PhoneNumber != "555-0100" {
		t.Errorf("phone: got %s", updated.PhoneNumber)
	}
	if updated.FirstName != "Walter" {
		t.Errorf("patch must not clear first_name, got %q", updated.FirstName)
	}

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/clients/%d/", cl.ID), adminTok, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}

	// audit trail: one entry per mutation, delete survives the cascade
	logs, err := st.ListAuditLogs(context.Background())
	if err != nil {
		t.Fatalf("audit logs: %v", err)
	}
	var created, deleted bool
	for _, l := range logs {
		if l.EntityType != "Client" || l.EntityID != fmt.Sprintf("%d", cl.ID) {
			continue
		}
		if l.UserID == nil || *l.UserID != admin.ID {
			continue
		}
		switch l.Action {
		case "CREATED Client":
			created = true
		case "DELETED Client":
			deleted = true
			// the client row is gone, the FK was nulled
			if l.ClientID != nil {
				t.Error("deleted client audit row should have null client")
			}
		}
	}
	if !created {
		t.Error("missing CREATED Client audit entry")
	}
	if !deleted {
		t.Error("missing DELETED Client audit entry")
	}
}

func TestClientCascade(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)

	clientID := createClient(t, r, adminTok)

	w := do(t, r, http.MethodPost, "/api/equipment/", adminTok, gin.H{
		"client": clientID, "equipment_type": "Furnace", "manufacturer": "Carrier",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create equipment: %d %s", w.Code, w.Body.String())
	}
	var eq model.Equipment
	decode(t, w, &eq)

	start := time.Now().Add(1000 * time.Hour).Truncate(time.Hour)
	w = do(t, r, http.MethodPost, "/api/appointments/", adminTok,
		apptBody(clientID, nil, start, time.Hour))
	if w.Code != http.StatusCreated {
		t.Fatalf("create appointment: %d %s", w.Code, w.Body.String())
	}
	var appt model.Appointment
	decode(t, w, &appt)

	w = do(t, r, http.MethodPost, "/api/invoices/", adminTok, gin.H{
		"client": clientID, "invoice_date": time.Now().Format("2006-01-02"),
		"amount_due": "75.00",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d %s", w.Code, w.Body.String())
	}
	var inv model.Invoice
	decode(t, w, &inv)

	w = do(t, r, http.MethodPost, "/api/notes/", adminTok, gin.H{
		"client": clientID, "note_text": "prefers morning visits",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create note: %d %s", w.Code, w.Body.String())
	}
	var note model.Note
	decode(t, w, &note)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/clients/%d/", clientID), adminTok, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete client: %d", w.Code)
	}

	for _, tc := range []struct {
		name string
		path string
	}{
		{"equipment", fmt.Sprintf("/api/equipment/%d/", eq.ID)},
		{"appointment", fmt.Sprintf("/api/appointments/%d/", appt.ID)},
		{"invoice", fmt.Sprintf("/api/invoices/%d/", inv.ID)},
		{"note", fmt.Sprintf("/api/notes/%d/", note.ID)},
	} {
		w = do(t, r, http.MethodGet, tc.path, adminTok, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s should cascade with client, got %d", tc.name, w.Code)
		}
	}
}

func TestEquipmentTypeValidation(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)
	clientID := createClient(t, r, adminTok)

	w := do(t, r, http.MethodPost, "/api/equipment/", adminTok, gin.H{
		"client": clientID, "equipment_type": "Flux Capacitor",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown type, got %d", w.Code)
	}
}

// ----- scheduling -----

func TestAppointmentConflict(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)
	tech, _ := createUser(t, st, model.RoleTechnician, secret)
	other, _ := createUser(t, st, model.RoleTechnician, secret)
	clientID := createClient(t, r, adminTok)

	start := time.Now().Add(600 * time.Hour).Truncate(time.Hour)

	w := do(t, r, http.MethodPost, "/api/appointments/", adminTok,
		apptBody(clientID, []int64{tech.ID}, start, time.Hour))
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: %d %s", w.Code, w.Body.String())
	}

	// same technician, overlapping slot
	w = do(t, r, http.MethodPost, "/api/appointments/", adminTok,
		apptBody(clientID, []int64{tech.ID}, start.Add(30*time.Minute), time.Hour))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected conflict, got %d %s", w.Code, w.Body.String())
	}

	// adjacent slot is fine, the interval is half-open
	w = do(t, r, http.MethodPost, "/api/appointments/", adminTok,
		apptBody(clientID, []int64{tech.ID}, start.Add(time.Hour), time.Hour))
	if w.Code != http.StatusCreated {
		t.Errorf("adjacent should not conflict: %d %s", w.Code, w.Body.String())
	}

	// same slot, different technician
	w = do(t, r, http.MethodPost, "/api/appointments/", adminTok,
		apptBody(clientID, []int64{other.ID}, start, time.Hour))
	if w.Code != http.StatusCreated {
		t.Errorf("different technician should not conflict: %d %s", w.Code, w.Body.String())
	}

	// no technicians assigned, no conflict possible
	w = do(t, r, http.MethodPost, "/api/appointments/", adminTok,
		apptBody(clientID, nil, start, time.Hour))
	if w.Code != http.StatusCreated {
		t.Errorf("unassigned appointment should not conflict: %d %s", w.Code, w.Body.String())
	}
}

func TestAppointmentUpdateConflict(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)
	tech, _ := createUser(t, st, model.RoleTechnician, secret)
	clientID := createClient(t, r, adminTok)

	start := time.Now().Add(700 * time.Hour).Truncate(time.Hour)

	do(t, r, http.MethodPost, "/api/appointments/", adminTok,
		apptBody(clientID, []int64{tech.ID}, start, time.Hour))

	w := do(t, r, http.MethodPost, "/api/appointments/", adminTok,
		apptBody(clientID, []int64{tech.ID}, start.Add(2*time.Hour), time.Hour))
	var second model.Appointment
	decode(t, w, &second)

	// moving second into first's slot must fail
	w = do(t, r, http.MethodPatch, fmt.Sprintf("/api/appointments/%d/", second.ID), adminTok, gin.H{
		"start_time": start.Add(30 * time.Minute).Format(time.RFC3339),
		"end_time":   start.Add(90 * time.Minute).Format(time.RFC3339),
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected conflict on update, got %d %s", w.Code, w.Body.String())
	}

	// re-saving its own slot must not conflict with itself
	w = do(t, r, http.MethodPatch, fmt.Sprintf("/api/appointments/%d/", second.ID), adminTok, gin.H{
		"title": "Renamed",
	})
	if w.Code != http.StatusOK {
		t.Errorf("self-overlap should be allowed: %d %s", w.Code, w.Body.String())
	}
}

func TestAppointmentValidation(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)
	clientID := createClient(t, r, adminTok)

	start := time.Now().Add(800 * time.Hour)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing times", gin.H{"title": "X", "client": clientID}},
		{"end before start", apptBody(clientID, nil, start, -time.Hour)},
		{"zero duration", apptBody(clientID, nil, start, 0)},
		{"missing title", gin.H{
			"client":     clientID,
			"start_time": start.Format(time.RFC3339),
			"end_time":   start.Add(time.Hour).Format(time.RFC3339),
		}},
		{"unknown status", gin.H{
			"title":      "X",
			"client":     clientID,
			"start_time": start.Format(time.RFC3339),
			"end_time":   start.Add(time.Hour).Format(time.RFC3339),
			"status":     "done",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/appointments/", adminTok, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestConcurrentBooking(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)
	tech, _ := createUser(t, st, model.RoleTechnician, secret)
	clientID := createClient(t, r, adminTok)

	start := time.Now().Add(900 * time.Hour).Truncate(time.Hour)

	const n = 10
	var wg sync.WaitGroup
	results := make(chan int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := do(t, r, http.MethodPost, "/api/appointments/", adminTok,
				apptBody(clientID, []int64{tech.ID}, start, time.Hour))
			results <- w.Code
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for code := range results {
		switch code {
		case http.StatusCreated:
			successes++
		case http.StatusBadRequest:
			conflicts++
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if conflicts != n-1 {
		t.Errorf("expected %d conflicts, got %d", n-1, conflicts)
	}
	t.Logf("concurrent: %d success, %d conflicts (out of %d)", successes, conflicts, n)
}

func TestTechnicianRowFilter(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)
	tech1, tok1 := createUser(t, st, model.RoleTechnician, secret)
	_, tok2 := createUser(t, st, model.RoleTechnician, secret)
	clientID := createClient(t, r, adminTok)

	start := time.Now().Add(1000 * time.Hour).Truncate(time.Hour)
	w := do(t, r, http.MethodPost, "/api/appointments/", adminTok,
		apptBody(clientID, []int64{tech1.ID}, start, time.Hour))
	var appt model.Appointment
	decode(t, w, &appt)

	// assigned technician sees it
	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/appointments/%d/", appt.ID), tok1, nil)
	if w.Code != http.StatusOK {
		t.Errorf("assigned technician: got %d", w.Code)
	}

	// unassigned technician gets 404, not 403
	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/appointments/%d/", appt.ID), tok2, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unassigned technician: got %d", w.Code)
	}

	// and the list hides it
	w = do(t, r, http.MethodGet, "/api/appointments/", tok2, nil)
	var list []model.Appointment
	decode(t, w, &list)
	for _, a := range list {
		if a.ID == appt.ID {
			t.Error("unassigned technician can see the appointment in list")
		}
	}
}

func TestAppointmentDateFilter(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)
	tech, _ := createUser(t, st, model.RoleTechnician, secret)
	clientID := createClient(t, r, adminTok)

	start := time.Now().Add(1100 * time.Hour).Truncate(time.Hour)
	w := do(t, r, http.MethodPost, "/api/appointments/", adminTok,
		apptBody(clientID, []int64{tech.ID}, start, time.Hour))
	var appt model.Appointment
	decode(t, w, &appt)

	day := start.Format("2006-01-02")
	w = do(t, r, http.MethodGet,
		fmt.Sprintf("/api/appointments/?start_date=%s&end_date=%s&technician_ids=%d", day, day, tech.ID),
		adminTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("filtered list: %d %s", w.Code, w.Body.String())
	}
	var list []model.Appointment
	decode(t, w, &list)
	found := false
	for _, a := range list {
		if a.ID == appt.ID {
			found = true
		}
	}
	if !found {
		t.Error("appointment missing from filtered window")
	}

	// a window before the appointment excludes it
	prev := start.AddDate(0, 0, -10).Format("2006-01-02")
	w = do(t, r, http.MethodGet,
		fmt.Sprintf("/api/appointments/?start_date=%s&end_date=%s", prev, prev), adminTok, nil)
	decode(t, w, &list)
	for _, a := range list {
		if a.ID == appt.ID {
			t.Error("appointment leaked into a disjoint window")
		}
	}
}

// ----- invoices and analytics -----

func TestInvoiceAnalytics(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)
	clientID := createClient(t, r, adminTok)

	day := time.Now().Format("2006-01-02")
	mk := func(amount string, status string, estimate bool) {
		w := do(t, r, http.MethodPost, "/api/invoices/", adminTok, gin.H{
			"client": clientID, "invoice_date": day,
			"amount_due": amount, "status": status, "is_estimate": estimate,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create invoice: %d %s", w.Code, w.Body.String())
		}
	}
	mk("100.50", model.InvoicePaid, false)
	mk("50.00", model.InvoiceUnpaid, false)
	mk("200.00", model.InvoicePaid, true) // estimates never count as revenue

	w := do(t, r, http.MethodGet, "/api/analytics/", adminTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analytics: %d %s", w.Code, w.Body.String())
	}
	var a store.Analytics
	decode(t, w, &a)
	if a.TotalRevenue.IsZero() {
		t.Error("total_revenue should include the paid invoice")
	}
	if a.AverageEstimateValue.IsZero() {
		t.Error("average_estimate_value should include the estimate")
	}
}

func TestAnalyticsZeroDefaults(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)

	// with no invoices at all, both aggregates must come back as 0,
	// not null
	if _, err := st.Pool().Exec(context.Background(), `DELETE FROM invoices`); err != nil {
		t.Fatalf("clear invoices: %v", err)
	}

	w := do(t, r, http.MethodGet, "/api/analytics/", adminTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analytics: %d %s", w.Code, w.Body.String())
	}
	var a store.Analytics
	decode(t, w, &a)
	if !a.TotalRevenue.IsZero() {
		t.Errorf("total_revenue = %s, want 0", a.TotalRevenue)
	}
	if !a.AverageEstimateValue.IsZero() {
		t.Errorf("average_estimate_value = %s, want 0", a.AverageEstimateValue)
	}
}

func TestStatusValidation(t *testing.T) {
	r, st, secret := setup(t)
	admin, adminTok := createUser(t, st, model.RoleAdmin, secret)
	clientID := createClient(t, r, adminTok)

	day := time.Now().Format("2006-01-02")

	w := do(t, r, http.MethodPost, "/api/equipment/", adminTok, gin.H{
		"client": clientID, "equipment_type": "Furnace",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create equipment: %d %s", w.Code, w.Body.String())
	}
	var eq model.Equipment
	decode(t, w, &eq)

	tests := []struct {
		name string
		path string
		body gin.H
	}{
		{"invoice status", "/api/invoices/", gin.H{
			"client": clientID, "invoice_date": day, "amount_due": "10.00",
			"status": "paid",
		}},
		{"reminder status", "/api/reminders/", gin.H{
			"equipment": eq.ID, "reminder_date": day, "status": "Done",
		}},
		{"pto status", "/api/pto-requests/", gin.H{
			"employee": admin.ID, "start_date": day, "end_date": day,
			"status": "rejected",
		}},
		{"notification channel", "/api/notifications/", gin.H{
			"recipient": admin.ID, "channel": "fax", "content": "hi",
		}},
		{"notification status", "/api/notifications/", gin.H{
			"recipient": admin.ID, "channel": "sms", "content": "hi",
			"status": "queued",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, tt.path, adminTok, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d %s", w.Code, w.Body.String())
			}
		})
	}
}

// ----- profile row filtering -----

func TestProfileRowFilter(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)
	_, tok1 := createUser(t, st, model.RoleTechnician, secret)
	_, tok2 := createUser(t, st, model.RoleTechnician, secret)

	w := do(t, r, http.MethodPost, "/api/user-profiles/", tok1, gin.H{"color": "#ff0000"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create profile: %d %s", w.Code, w.Body.String())
	}
	var prof model.UserProfile
	decode(t, w, &prof)

	// owner sees it
	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/user-profiles/%d/", prof.ID), tok1, nil)
	if w.Code != http.StatusOK {
		t.Errorf("owner: got %d", w.Code)
	}

	// another technician does not
	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/user-profiles/%d/", prof.ID), tok2, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("non-owner: got %d", w.Code)
	}

	// admin does
	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/user-profiles/%d/", prof.ID), adminTok, nil)
	if w.Code != http.StatusOK {
		t.Errorf("admin: got %d", w.Code)
	}
}

// ----- me -----

func TestMe(t *testing.T) {
	r, st, secret := setup(t)
	u, tok := createUser(t, st, model.RoleSecretary, secret)

	w := do(t, r, http.MethodGet, "/api/me/", tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d %s", w.Code, w.Body.String())
	}
	var me struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	decode(t, w, &me)
	if me.ID != u.ID || me.Username != u.Username {
		t.Errorf("me mismatch: %+v", me)
	}
	if me.Role != string(model.RoleSecretary) {
		t.Errorf("role: got %s", me.Role)
	}

	w = do(t, r, http.MethodPatch, "/api/me/", tok, gin.H{"first_name": "Donna"})
	if w.Code != http.StatusOK {
		t.Fatalf("update me: %d %s", w.Code, w.Body.String())
	}
}

// ----- attachments -----

func TestAttachmentUploadDownload(t *testing.T) {
	r, st, secret := setup(t)
	_, adminTok := createUser(t, st, model.RoleAdmin, secret)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "manual.pdf")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	content := []byte("%PDF-1.4 fake manual")
	fw.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/attachments/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminTok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", w.Code, w.Body.String())
	}
	var a model.Attachment
	decode(t, w, &a)
	if a.FileName != "manual.pdf" {
		t.Errorf("file_name: got %s", a.FileName)
	}
	if a.StoragePath == "" {
		t.Fatal("empty storage path")
	}

	dl := do(t, r, http.MethodGet, fmt.Sprintf("/api/attachments/%d/download/", a.ID), adminTok, nil)
	if dl.Code != http.StatusOK {
		t.Fatalf("download: %d %s", dl.Code, dl.Body.String())
	}
	if !bytes.Equal(dl.Body.Bytes(), content) {
		t.Error("downloaded bytes differ from upload")
	}

	del := do(t, r, http.MethodDelete, fmt.Sprintf("/api/attachments/%d/", a.ID), adminTok, nil)
	if del.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", del.Code)
	}
	gone := do(t, r, http.MethodGet, fmt.Sprintf("/api/attachments/%d/", a.ID), adminTok, nil)
	if gone.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", gone.Code)
	}
}

// Package audit appends who-did-what records alongside mutating writes
// on client-linked entities. Entries are immutable once written.
package audit

import (
	"context"
	"fmt"
	"log"

	"hvac-office-api/internal/model"
	"hvac-office-api/internal/store"
)

type Recorder struct {
	store *store.Store
}

func NewRecorder(st *store.Store) *Recorder {
	return &Recorder{store: st}
}

func Action(verb, entityType string) string {
	return fmt.Sprintf("%s %s", verb, entityType)
}

// Entry describes one mutation to record. ClientID scopes the entry;
// a zero ClientID or UserID means the entry is skipped entirely.
type Entry struct {
	UserID     int64
	ClientID   int64
	EntityType string
	EntityID   int64
	Details    string
}

func (r *Recorder) Created(ctx context.Context, e Entry) { r.record(ctx, "CREATED", e) }
func (r *Recorder) Updated(ctx context.Context, e Entry) { r.record(ctx, "UPDATED", e) }

// Deleted is recorded before the row is removed: a client delete
// could not satisfy the audit FK afterwards (the cascade nulls the
// reference instead).
func (r *Recorder) Deleted(ctx context.Context, e Entry) { r.record(ctx, "DELETED", e) }

// record is best-effort: a failed audit write is logged and swallowed
// so it never rolls back the business mutation.
func (r *Recorder) record(ctx context.Context, verb string, e Entry) {
	if e.UserID == 0 || e.ClientID == 0 {
		return
	}
	l := &model.AuditLog{
		UserID:     &e.UserID,
		ClientID:   &e.ClientID,
		Action:     Action(verb, e.EntityType),
		EntityType: e.EntityType,
		EntityID:   fmt.Sprintf("%d", e.EntityID),
		Metadata:   map[string]any{"details": e.Details},
	}
	if err := r.store.InsertAuditLog(ctx, l); err != nil {
		log.Printf("audit: %s %s %d: %v", verb, e.EntityType, e.EntityID, err)
	}
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

// ConflictError is returned when an appointment write would
// double-book a technician.
type ConflictError struct {
	TechnicianID int64
	Technician   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("technician %s is already booked during this time", e.Technician)
}

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// wrapNotFound maps pgx's no-rows sentinel to the store-level one.
func wrapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// jsonArg renders a map for a jsonb parameter; nil maps become {}.
func jsonArg(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// jsonScan decodes a jsonb column; null and malformed values fall
// back to an empty map.
func jsonScan(b []byte) map[string]any {
	if len(b) == 0 {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}
	return m
}

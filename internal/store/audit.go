package store

import (
	"context"

	"hvac-office-api/internal/model"
)

// Audit log rows are append-only: there is no update or single delete.

func (s *Store) InsertAuditLog(ctx context.Context, l *model.AuditLog) error {
	metadata, err := jsonArg(l.Metadata)
	if err != nil {
		return err
	}
	return s.pool.QueryRow(ctx,
		`INSERT INTO audit_logs (user_id, client_id, action, entity_type, entity_id, metadata)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, timestamp`,
		l.UserID, l.ClientID, l.Action, l.EntityType, l.EntityID, metadata,
	).Scan(&l.ID, &l.Timestamp)
}

const auditCols = `id, user_id, client_id, action, entity_type, entity_id, metadata, timestamp`

func scanAuditLog(row interface{ Scan(...any) error }) (*model.AuditLog, error) {
	l := &model.AuditLog{}
	var metadata []byte
	err := row.Scan(&l.ID, &l.UserID, &l.ClientID, &l.Action, &l.EntityType,
		&l.EntityID, &metadata, &l.Timestamp)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	l.Metadata = jsonScan(metadata)
	return l, nil
}

func (s *Store) AuditLogByID(ctx context.Context, id int64) (*model.AuditLog, error) {
	return scanAuditLog(s.pool.QueryRow(ctx,
		`SELECT `+auditCols+` FROM audit_logs WHERE id = $1`, id))
}

func (s *Store) ListAuditLogs(ctx context.Context) ([]model.AuditLog, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+auditCols+` FROM audit_logs ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AuditLog
	for rows.Next() {
		l, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hvac-office-api/internal/model"
)

const attachmentCols = `id, file_name, storage_path, content_type, uploaded_at,
	service_history_id, invoice_id, appointment_id`

func scanAttachment(row interface{ Scan(...any) error }) (*model.Attachment, error) {
	a := &model.Attachment{}
	err := row.Scan(&a.ID, &a.FileName, &a.StoragePath, &a.ContentType, &a.UploadedAt,
		&a.ServiceHistoryID, &a.InvoiceID, &a.AppointmentID)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return a, nil
}

func (s *Store) CreateAttachment(ctx context.Context, a *model.Attachment) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO attachments (file_name, storage_path, content_type, service_history_id, invoice_id, appointment_id)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, uploaded_at`,
		a.FileName, a.StoragePath, a.ContentType, a.ServiceHistoryID, a.InvoiceID, a.AppointmentID,
	).Scan(&a.ID, &a.UploadedAt)
}

func (s *Store) AttachmentByID(ctx context.Context, id int64) (*model.Attachment, error) {
	return scanAttachment(s.pool.QueryRow(ctx,
		`SELECT `+attachmentCols+` FROM attachments WHERE id = $1`, id))
}

func (s *Store) ListAttachments(ctx context.Context) ([]model.Attachment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+attachmentCols+` FROM attachments ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Store) DeleteAttachment(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM attachments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClientIDForAttachment resolves the owning client through whichever
// parent the attachment hangs off: service history (via equipment),
// invoice, or appointment. Returns 0 when no client can be reached.
func (s *Store) ClientIDForAttachment(ctx context.Context, a *model.Attachment) (int64, error) {
	var (
		clientID int64
		err      error
	)
	switch {
	case a.ServiceHistoryID != nil:
		err = s.pool.QueryRow(ctx,
			`SELECT e.client_id FROM service_history h
			 JOIN equipment e ON e.id = h.equipment_id
			 WHERE h.id = $1`, *a.ServiceHistoryID).Scan(&clientID)
	case a.InvoiceID != nil:
		err = s.pool.QueryRow(ctx,
			`SELECT client_id FROM invoices WHERE id = $1`, *a.InvoiceID).Scan(&clientID)
	case a.AppointmentID != nil:
		err = s.pool.QueryRow(ctx,
			`SELECT client_id FROM appointments WHERE id = $1`, *a.AppointmentID).Scan(&clientID)
	default:
		return 0, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return clientID, nil
}

package store

import (
	"context"

	"hvac-office-api/internal/model"
)

func (s *Store) CreateNote(ctx context.Context, n *model.Note) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO notes (client_id, note_text) VALUES ($1,$2) RETURNING id, created_at`,
		n.ClientID, n.NoteText,
	).Scan(&n.ID, &n.CreatedAt)
}

func (s *Store) NoteByID(ctx context.Context, id int64) (*model.Note, error) {
	n := &model.Note{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, client_id, note_text, created_at FROM notes WHERE id = $1`, id).
		Scan(&n.ID, &n.ClientID, &n.NoteText, &n.CreatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return n, nil
}

func (s *Store) ListNotes(ctx context.Context) ([]model.Note, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, client_id, note_text, created_at FROM notes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.ClientID, &n.NoteText, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) UpdateNote(ctx context.Context, n *model.Note) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notes SET client_id=$1, note_text=$2 WHERE id=$3`,
		n.ClientID, n.NoteText, n.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ----- maintenance reminders -----

const reminderCols = `id, equipment_id, reminder_date, reminder_type, status`

func scanReminder(row interface{ Scan(...any) error }) (*model.MaintenanceReminder, error) {
	r := &model.MaintenanceReminder{}
	err := row.Scan(&r.ID, &r.EquipmentID, &r.ReminderDate, &r.ReminderType, &r.Status)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return r, nil
}

func (s *Store) CreateReminder(ctx context.Context, r *model.MaintenanceReminder) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO maintenance_reminders (equipment_id, reminder_date, reminder_type, status)
		 VALUES ($1,$2,$3,$4) RETURNING id`,
		r.EquipmentID, r.ReminderDate, r.ReminderType, r.Status,
	).Scan(&r.ID)
}

func (s *Store) ReminderByID(ctx context.Context, id int64) (*model.MaintenanceReminder, error) {
	return scanReminder(s.pool.QueryRow(ctx,
		`SELECT `+reminderCols+` FROM maintenance_reminders WHERE id = $1`, id))
}

func (s *Store) ListReminders(ctx context.Context) ([]model.MaintenanceReminder, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+reminderCols+` FROM maintenance_reminders ORDER BY reminder_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MaintenanceReminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateReminder(ctx context.Context, r *model.MaintenanceReminder) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE maintenance_reminders SET equipment_id=$1, reminder_date=$2, reminder_type=$3, status=$4
		 WHERE id=$5`,
		r.EquipmentID, r.ReminderDate, r.ReminderType, r.Status, r.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteReminder(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM maintenance_reminders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

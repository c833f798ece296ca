package store

import (
	"context"

	"hvac-office-api/internal/model"
)

// Notification rows only record intent; delivery is handled by an
// external dispatcher.

const notificationCols = `id, recipient_id, client_recipient_id, channel, content, status, sent_at, created_at`

func scanNotification(row interface{ Scan(...any) error }) (*model.Notification, error) {
	n := &model.Notification{}
	err := row.Scan(&n.ID, &n.RecipientID, &n.ClientRecipientID, &n.Channel, &n.Content,
		&n.Status, &n.SentAt, &n.CreatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return n, nil
}

func (s *Store) CreateNotification(ctx context.Context, n *model.Notification) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO notifications (recipient_id, client_recipient_id, channel, content, status, sent_at)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at`,
		n.RecipientID, n.ClientRecipientID, n.Channel, n.Content, n.Status, n.SentAt,
	).Scan(&n.ID, &n.CreatedAt)
}

func (s *Store) NotificationByID(ctx context.Context, id int64) (*model.Notification, error) {
	return scanNotification(s.pool.QueryRow(ctx,
		`SELECT `+notificationCols+` FROM notifications WHERE id = $1`, id))
}

func (s *Store) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+notificationCols+` FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (s *Store) UpdateNotification(ctx context.Context, n *model.Notification) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET recipient_id=$1, client_recipient_id=$2, channel=$3,
		   content=$4, status=$5, sent_at=$6 WHERE id=$7`,
		n.RecipientID, n.ClientRecipientID, n.Channel, n.Content, n.Status, n.SentAt, n.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteNotification(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM notifications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"context"

	"hvac-office-api/internal/model"
)

const serviceHistoryCols = `id, equipment_id, service_date, technician_name, description, cost`

func scanServiceHistory(row interface{ Scan(...any) error }) (*model.ServiceHistory, error) {
	h := &model.ServiceHistory{}
	err := row.Scan(&h.ID, &h.EquipmentID, &h.ServiceDate, &h.TechnicianName, &h.Description, &h.Cost)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return h, nil
}

func (s *Store) CreateServiceHistory(ctx context.Context, h *model.ServiceHistory) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO service_history (equipment_id, service_date, technician_name, description, cost)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		h.EquipmentID, h.ServiceDate, h.TechnicianName, h.Description, h.Cost,
	).Scan(&h.ID)
}

func (s *Store) ServiceHistoryByID(ctx context.Context, id int64) (*model.ServiceHistory, error) {
	return scanServiceHistory(s.pool.QueryRow(ctx,
		`SELECT `+serviceHistoryCols+` FROM service_history WHERE id = $1`, id))
}

func (s *Store) ListServiceHistory(ctx context.Context) ([]model.ServiceHistory, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+serviceHistoryCols+` FROM service_history ORDER BY service_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ServiceHistory
	for rows.Next() {
		h, err := scanServiceHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

func (s *Store) UpdateServiceHistory(ctx context.Context, h *model.ServiceHistory) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE service_history SET equipment_id=$1, service_date=$2, technician_name=$3,
		   description=$4, cost=$5 WHERE id=$6`,
		h.EquipmentID, h.ServiceDate, h.TechnicianName, h.Description, h.Cost, h.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteServiceHistory(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM service_history WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClientIDForServiceHistory walks service_history -> equipment -> client.
func (s *Store) ClientIDForServiceHistory(ctx context.Context, historyID int64) (int64, error) {
	var clientID int64
	err := s.pool.QueryRow(ctx,
		`SELECT e.client_id FROM service_history h
		 JOIN equipment e ON e.id = h.equipment_id
		 WHERE h.id = $1`, historyID).Scan(&clientID)
	if err != nil {
		return 0, wrapNotFound(err)
	}
	return clientID, nil
}

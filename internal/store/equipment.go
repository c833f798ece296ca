package store

import (
	"context"

	"hvac-office-api/internal/model"
)

const equipmentCols = `id, client_id, equipment_type, manufacturer, model_number,
	serial_number, installation_date, warranty_expiration_date, filter_size`

func scanEquipment(row interface{ Scan(...any) error }) (*model.Equipment, error) {
	e := &model.Equipment{}
	err := row.Scan(&e.ID, &e.ClientID, &e.EquipmentType, &e.Manufacturer, &e.ModelNumber,
		&e.SerialNumber, &e.InstallationDate, &e.WarrantyExpirationDate, &e.FilterSize)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return e, nil
}

func (s *Store) CreateEquipment(ctx context.Context, e *model.Equipment) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO equipment (client_id, equipment_type, manufacturer, model_number,
		   serial_number, installation_date, warranty_expiration_date, filter_size)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
		e.ClientID, e.EquipmentType, e.Manufacturer, e.ModelNumber,
		e.SerialNumber, e.InstallationDate, e.WarrantyExpirationDate, e.FilterSize,
	).Scan(&e.ID)
}

func (s *Store) EquipmentByID(ctx context.Context, id int64) (*model.Equipment, error) {
	return scanEquipment(s.pool.QueryRow(ctx,
		`SELECT `+equipmentCols+` FROM equipment WHERE id = $1`, id))
}

func (s *Store) ListEquipment(ctx context.Context) ([]model.Equipment, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+equipmentCols+` FROM equipment ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEquipment(ctx context.Context, e *model.Equipment) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE equipment SET client_id=$1, equipment_type=$2, manufacturer=$3, model_number=$4,
		   serial_number=$5, installation_date=$6, warranty_expiration_date=$7, filter_size=$8
		 WHERE id=$9`,
		e.ClientID, e.EquipmentType, e.Manufacturer, e.ModelNumber,
		e.SerialNumber, e.InstallationDate, e.WarrantyExpirationDate, e.FilterSize, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEquipment(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM equipment WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClientIDForEquipment resolves the owning client for audit scoping.
func (s *Store) ClientIDForEquipment(ctx context.Context, equipmentID int64) (int64, error) {
	var clientID int64
	err := s.pool.QueryRow(ctx,
		`SELECT client_id FROM equipment WHERE id = $1`, equipmentID).Scan(&clientID)
	if err != nil {
		return 0, wrapNotFound(err)
	}
	return clientID, nil
}

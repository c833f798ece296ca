package store

import (
	"context"

	"hvac-office-api/internal/model"
)

const clientCols = `id, first_name, last_name, address_street, address_city, address_state,
	address_zip, phone_number, email, is_active, preferences, created_at`

func scanClient(row interface{ Scan(...any) error }) (*model.Client, error) {
	c := &model.Client{}
	var prefs []byte
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.AddressStreet, &c.AddressCity,
		&c.AddressState, &c.AddressZip, &c.PhoneNumber, &c.Email, &c.IsActive,
		&prefs, &c.CreatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	c.Preferences = jsonScan(prefs)
	return c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *model.Client) error {
	prefs, err := jsonArg(c.Preferences)
	if err != nil {
		return err
	}
	return s.pool.QueryRow(ctx,
		`INSERT INTO clients (first_name, last_name, address_street, address_city,
		   address_state, address_zip, phone_number, email, is_active, preferences)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING id, created_at`,
		c.FirstName, c.LastName, c.AddressStreet, c.AddressCity, c.AddressState,
		c.AddressZip, c.PhoneNumber, c.Email, c.IsActive, prefs,
	).Scan(&c.ID, &c.CreatedAt)
}

func (s *Store) ClientByID(ctx context.Context, id int64) (*model.Client, error) {
	return scanClient(s.pool.QueryRow(ctx,
		`SELECT `+clientCols+` FROM clients WHERE id = $1`, id))
}

func (s *Store) ListClients(ctx context.Context) ([]model.Client, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+clientCols+` FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateClient(ctx context.Context, c *model.Client) error {
	prefs, err := jsonArg(c.Preferences)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE clients SET first_name=$1, last_name=$2, address_street=$3, address_city=$4,
		   address_state=$5, address_zip=$6, phone_number=$7, email=$8, is_active=$9, preferences=$10
		 WHERE id=$11`,
		c.FirstName, c.LastName, c.AddressStreet, c.AddressCity, c.AddressState,
		c.AddressZip, c.PhoneNumber, c.Email, c.IsActive, prefs, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient cascades to equipment, appointments, invoices, notes and
// their dependents via the schema's ON DELETE CASCADE rules.
func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

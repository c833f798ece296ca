package store

import (
	"context"

	"hvac-office-api/internal/model"
)

const profileCols = `id, user_id, color, phone, address, is_active`

func scanProfile(row interface{ Scan(...any) error }) (*model.UserProfile, error) {
	p := &model.UserProfile{}
	var address []byte
	err := row.Scan(&p.ID, &p.UserID, &p.Color, &p.Phone, &address, &p.IsActive)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	p.Address = jsonScan(address)
	return p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *model.UserProfile) error {
	address, err := jsonArg(p.Address)
	if err != nil {
		return err
	}
	return s.pool.QueryRow(ctx,
		`INSERT INTO user_profiles (user_id, color, phone, address, is_active)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		p.UserID, p.Color, p.Phone, address, p.IsActive,
	).Scan(&p.ID)
}

func (s *Store) ProfileByID(ctx context.Context, id int64) (*model.UserProfile, error) {
	return scanProfile(s.pool.QueryRow(ctx,
		`SELECT `+profileCols+` FROM user_profiles WHERE id = $1`, id))
}

func (s *Store) ProfileByUserID(ctx context.Context, userID int64) (*model.UserProfile, error) {
	return scanProfile(s.pool.QueryRow(ctx,
		`SELECT `+profileCols+` FROM user_profiles WHERE user_id = $1`, userID))
}

// ListProfiles returns all profiles when forUserID is zero, otherwise
// only the given user's profile (the technician row filter).
func (s *Store) ListProfiles(ctx context.Context, forUserID int64) ([]model.UserProfile, error) {
	q := `SELECT ` + profileCols + ` FROM user_profiles`
	args := []any{}
	if forUserID != 0 {
		q += ` WHERE user_id = $1`
		args = append(args, forUserID)
	}
	q += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) UpdateProfile(ctx context.Context, p *model.UserProfile) error {
	address, err := jsonArg(p.Address)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE user_profiles SET color=$1, phone=$2, address=$3, is_active=$4 WHERE id=$5`,
		p.Color, p.Phone, address, p.IsActive, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProfile(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM user_profiles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

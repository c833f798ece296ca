package store

import (
	"context"

	"hvac-office-api/internal/model"
)

const userCols = `id, username, email, password_hash, first_name, last_name, role, is_active, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	u.Role = model.ParseRole(role)
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, first_name, last_name, role, is_active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING id, created_at`,
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, string(u.Role), u.IsActive,
	).Scan(&u.ID, &u.CreatedAt)
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE username = $1`, username))
}

func (s *Store) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

// UpdateUserContact covers the self-service fields on /api/me/.
func (s *Store) UpdateUserContact(ctx context.Context, u *model.User) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET email=$1, first_name=$2, last_name=$3 WHERE id=$4`,
		u.Email, u.FirstName, u.LastName, u.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEmployees returns active users with their profile attached.
func (s *Store) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
		        u.role, u.is_active, u.created_at,
		        p.id, p.user_id, p.color, p.phone, p.address, p.is_active
		 FROM users u
		 LEFT JOIN user_profiles p ON p.user_id = u.id
		 WHERE u.is_active
		 ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Employee
	for rows.Next() {
		var (
			e        model.Employee
			role     string
			pID      *int64
			pUserID  *int64
			pColor   *string
			pPhone   *string
			pAddress []byte
			pActive  *bool
		)
		if err := rows.Scan(&e.ID, &e.Username, &e.Email, &e.PasswordHash,
			&e.FirstName, &e.LastName, &role, &e.IsActive, &e.CreatedAt,
			&pID, &pUserID, &pColor, &pPhone, &pAddress, &pActive); err != nil {
			return nil, err
		}
		e.Role = model.ParseRole(role)
		if pID != nil {
			e.Profile = &model.UserProfile{
				ID:       *pID,
				UserID:   *pUserID,
				Color:    *pColor,
				Phone:    *pPhone,
				Address:  jsonScan(pAddress),
				IsActive: *pActive,
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) EmployeeByID(ctx context.Context, id int64) (*model.Employee, error) {
	employees, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i], nil
		}
	}
	return nil, ErrNotFound
}

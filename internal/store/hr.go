package store

import (
	"context"

	"hvac-office-api/internal/model"
)

// Employee time tracking and PTO.

const timeLogCols = `id, employee_id, clock_in, clock_out, created_at`

func scanTimeLog(row interface{ Scan(...any) error }) (*model.TimeLog, error) {
	t := &model.TimeLog{}
	err := row.Scan(&t.ID, &t.EmployeeID, &t.ClockIn, &t.ClockOut, &t.CreatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return t, nil
}

func (s *Store) CreateTimeLog(ctx context.Context, t *model.TimeLog) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO time_logs (employee_id, clock_in, clock_out)
		 VALUES ($1,$2,$3) RETURNING id, created_at`,
		t.EmployeeID, t.ClockIn, t.ClockOut,
	).Scan(&t.ID, &t.CreatedAt)
}

func (s *Store) TimeLogByID(ctx context.Context, id int64) (*model.TimeLog, error) {
	return scanTimeLog(s.pool.QueryRow(ctx,
		`SELECT `+timeLogCols+` FROM time_logs WHERE id = $1`, id))
}

func (s *Store) ListTimeLogs(ctx context.Context) ([]model.TimeLog, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+timeLogCols+` FROM time_logs ORDER BY clock_in DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TimeLog
	for rows.Next() {
		t, err := scanTimeLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateTimeLog(ctx context.Context, t *model.TimeLog) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE time_logs SET employee_id=$1, clock_in=$2, clock_out=$3 WHERE id=$4`,
		t.EmployeeID, t.ClockIn, t.ClockOut, t.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTimeLog(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM time_logs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ----- PTO requests -----

const ptoCols = `id, employee_id, start_date, end_date, notes, status, created_at`

func scanPTO(row interface{ Scan(...any) error }) (*model.PTORequest, error) {
	p := &model.PTORequest{}
	err := row.Scan(&p.ID, &p.EmployeeID, &p.StartDate, &p.EndDate, &p.Notes, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return p, nil
}

func (s *Store) CreatePTORequest(ctx context.Context, p *model.PTORequest) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO pto_requests (employee_id, start_date, end_date, notes, status)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`,
		p.EmployeeID, p.StartDate, p.EndDate, p.Notes, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

func (s *Store) PTORequestByID(ctx context.Context, id int64) (*model.PTORequest, error) {
	return scanPTO(s.pool.QueryRow(ctx,
		`SELECT `+ptoCols+` FROM pto_requests WHERE id = $1`, id))
}

func (s *Store) ListPTORequests(ctx context.Context) ([]model.PTORequest, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+ptoCols+` FROM pto_requests ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PTORequest
	for rows.Next() {
		p, err := scanPTO(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) UpdatePTORequest(ctx context.Context, p *model.PTORequest) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE pto_requests SET employee_id=$1, start_date=$2, end_date=$3, notes=$4, status=$5
		 WHERE id=$6`,
		p.EmployeeID, p.StartDate, p.EndDate, p.Notes, p.Status, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeletePTORequest(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pto_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

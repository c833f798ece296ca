package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"

	"hvac-office-api/internal/model"
)

const apptCols = `id, title, client_id, job_type_id, start_time, end_time, location,
	notes, travel_time, is_priority, status, recurrence_rule`

// AppointmentFilter narrows list queries. A zero field means "no
// constraint". ForTechnician is the row filter applied to technician
// principals: only appointments they are assigned to.
type AppointmentFilter struct {
	StartDate     *model.Date // appointments ending on or after this date
	EndDate       *model.Date // appointments starting on or before this date
	TechnicianIDs []int64
	JobTypeID     *int64
	ForTechnician int64
}

func scanAppointment(row interface{ Scan(...any) error }) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := row.Scan(&a.ID, &a.Title, &a.ClientID, &a.JobTypeID, &a.StartTime, &a.EndTime,
		&a.Location, &a.Notes, &a.TravelTime, &a.IsPriority, &a.Status, &a.RecurrenceRule)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return a, nil
}

// lockTechnicians serializes appointment writes per technician for the
// duration of the transaction, closing the check-then-act race between
// the conflict query and the insert. Ids are locked in sorted order so
// concurrent writers cannot deadlock.
func lockTechnicians(ctx context.Context, tx pgx.Tx, techIDs []int64) error {
	ids := slices.Clone(techIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	for _, id := range ids {
		// single-bigint overload: the (int4,int4) form cannot encode ids
		// past 2^31
		if _, err := tx.Exec(ctx,
			`SELECT pg_advisory_xact_lock($1)`, id); err != nil {
			return err
		}
	}
	return nil
}

// findConflict looks for an existing appointment overlapping
// [start,end) for any of the given technicians, excluding excludeID
// (the appointment being updated). Returns a ConflictError naming the
// first conflicting technician, or nil.
func findConflict(ctx context.Context, tx pgx.Tx, techIDs []int64, start, end time.Time, excludeID int64) error {
	if len(techIDs) == 0 {
		return nil
	}
	q := `SELECT at.user_id, u.username
	      FROM appointment_technicians at
	      JOIN appointments a ON a.id = at.appointment_id
	      JOIN users u ON u.id = at.user_id
	      WHERE at.user_id = ANY($1)
	        AND a.start_time < $2
	        AND a.end_time > $3`
	args := []any{techIDs, end, start}
	if excludeID != 0 {
		q += ` AND a.id <> $4`
		args = append(args, excludeID)
	}
	q += ` ORDER BY at.user_id LIMIT 1`

	var (
		techID   int64
		username string
	)
	err := tx.QueryRow(ctx, q, args...).Scan(&techID, &username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return &ConflictError{TechnicianID: techID, Technician: username}
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockTechnicians(ctx, tx, a.TechnicianIDs); err != nil {
		return err
	}
	if err := findConflict(ctx, tx, a.TechnicianIDs, a.StartTime, a.EndTime, 0); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO appointments (title, client_id, job_type_id, start_time, end_time,
		   location, notes, travel_time, is_priority, status, recurrence_rule)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING id`,
		a.Title, a.ClientID, a.JobTypeID, a.StartTime, a.EndTime, a.Location,
		a.Notes, a.TravelTime, a.IsPriority, a.Status, a.RecurrenceRule,
	).Scan(&a.ID)
	if err != nil {
		return err
	}

	for _, uid := range a.TechnicianIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO appointment_technicians (appointment_id, user_id) VALUES ($1,$2)`,
			a.ID, uid); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockTechnicians(ctx, tx, a.TechnicianIDs); err != nil {
		return err
	}
	// exclude self from the overlap check
	if err := findConflict(ctx, tx, a.TechnicianIDs, a.StartTime, a.EndTime, a.ID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE appointments
		 SET title=$1, client_id=$2, job_type_id=$3, start_time=$4, end_time=$5,
		     location=$6, notes=$7, travel_time=$8, is_priority=$9, status=$10, recurrence_rule=$11
		 WHERE id=$12`,
		a.Title, a.ClientID, a.JobTypeID, a.StartTime, a.EndTime, a.Location,
		a.Notes, a.TravelTime, a.IsPriority, a.Status, a.RecurrenceRule, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	// replace technician assignments
	if _, err := tx.Exec(ctx,
		`DELETE FROM appointment_technicians WHERE appointment_id=$1`, a.ID); err != nil {
		return err
	}
	for _, uid := range a.TechnicianIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO appointment_technicians (appointment_id, user_id) VALUES ($1,$2)`,
			a.ID, uid); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error) {
	a, err := scanAppointment(s.pool.QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT user_id FROM appointment_technicians WHERE appointment_id = $1 ORDER BY user_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var uid int64
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		a.TechnicianIDs = append(a.TechnicianIDs, uid)
	}
	return a, rows.Err()
}

func (s *Store) ListAppointments(ctx context.Context, f AppointmentFilter) ([]model.Appointment, error) {
	q := `SELECT ` + apptCols + ` FROM appointments a WHERE true`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.StartDate != nil {
		q += ` AND a.end_time::date >= ` + arg(f.StartDate.Time)
	}
	if f.EndDate != nil {
		q += ` AND a.start_time::date <= ` + arg(f.EndDate.Time)
	}
	if f.JobTypeID != nil {
		q += ` AND a.job_type_id = ` + arg(*f.JobTypeID)
	}
	if len(f.TechnicianIDs) > 0 {
		q += ` AND EXISTS (SELECT 1 FROM appointment_technicians at
		         WHERE at.appointment_id = a.id AND at.user_id = ANY(` + arg(f.TechnicianIDs) + `))`
	}
	if f.ForTechnician != 0 {
		q += ` AND EXISTS (SELECT 1 FROM appointment_technicians at
		         WHERE at.appointment_id = a.id AND at.user_id = ` + arg(f.ForTechnician) + `)`
	}
	q += ` ORDER BY a.start_time`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	ids := []int64{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	// attach technician ids in one pass
	techRows, err := s.pool.Query(ctx,
		`SELECT appointment_id, user_id FROM appointment_technicians
		 WHERE appointment_id = ANY($1) ORDER BY user_id`, ids)
	if err != nil {
		return nil, err
	}
	defer techRows.Close()

	byAppt := make(map[int64][]int64, len(out))
	for techRows.Next() {
		var apptID, uid int64
		if err := techRows.Scan(&apptID, &uid); err != nil {
			return nil, err
		}
		byAppt[apptID] = append(byAppt[apptID], uid)
	}
	if err := techRows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].TechnicianIDs = byAppt[out[i].ID]
	}
	return out, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

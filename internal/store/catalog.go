package store

import (
	"context"

	"hvac-office-api/internal/model"
)

// Catalog entities: parts, job types and the equipment reference
// database. None of them relate to a client.

const partCols = `id, model_number, part_name, manufacturer, specs, manual_url, price, stock, created_at`

func scanPart(row interface{ Scan(...any) error }) (*model.Part, error) {
	p := &model.Part{}
	var specs []byte
	err := row.Scan(&p.ID, &p.ModelNumber, &p.PartName, &p.Manufacturer, &specs,
		&p.ManualURL, &p.Price, &p.Stock, &p.CreatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	p.Specs = jsonScan(specs)
	return p, nil
}

func (s *Store) CreatePart(ctx context.Context, p *model.Part) error {
	specs, err := jsonArg(p.Specs)
	if err != nil {
		return err
	}
	return s.pool.QueryRow(ctx,
		`INSERT INTO parts (model_number, part_name, manufacturer, specs, manual_url, price, stock)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at`,
		p.ModelNumber, p.PartName, p.Manufacturer, specs, p.ManualURL, p.Price, p.Stock,
	).Scan(&p.ID, &p.CreatedAt)
}

func (s *Store) PartByID(ctx context.Context, id int64) (*model.Part, error) {
	return scanPart(s.pool.QueryRow(ctx, `SELECT `+partCols+` FROM parts WHERE id = $1`, id))
}

func (s *Store) ListParts(ctx context.Context) ([]model.Part, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+partCols+` FROM parts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) UpdatePart(ctx context.Context, p *model.Part) error {
	specs, err := jsonArg(p.Specs)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE parts SET model_number=$1, part_name=$2, manufacturer=$3, specs=$4,
		   manual_url=$5, price=$6, stock=$7 WHERE id=$8`,
		p.ModelNumber, p.PartName, p.Manufacturer, specs, p.ManualURL, p.Price, p.Stock, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeletePart(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM parts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ----- job types -----

func (s *Store) CreateJobType(ctx context.Context, j *model.JobType) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO job_types (name) VALUES ($1) RETURNING id`, j.Name).Scan(&j.ID)
}

func (s *Store) JobTypeByID(ctx context.Context, id int64) (*model.JobType, error) {
	j := &model.JobType{}
	err := s.pool.QueryRow(ctx, `SELECT id, name FROM job_types WHERE id = $1`, id).
		Scan(&j.ID, &j.Name)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return j, nil
}

func (s *Store) ListJobTypes(ctx context.Context) ([]model.JobType, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM job_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.JobType
	for rows.Next() {
		var j model.JobType
		if err := rows.Scan(&j.ID, &j.Name); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) UpdateJobType(ctx context.Context, j *model.JobType) error {
	tag, err := s.pool.Exec(ctx, `UPDATE job_types SET name=$1 WHERE id=$2`, j.Name, j.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteJobType(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM job_types WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ----- equipment reference database -----

const equipmentDBCols = `id, model_number, equipment_type, manufacturer, description,
	specs, manual_url, created_at`

func scanEquipmentDB(row interface{ Scan(...any) error }) (*model.EquipmentDatabase, error) {
	e := &model.EquipmentDatabase{}
	var specs []byte
	err := row.Scan(&e.ID, &e.ModelNumber, &e.EquipmentType, &e.Manufacturer,
		&e.Description, &specs, &e.ManualURL, &e.CreatedAt)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	e.Specs = jsonScan(specs)
	return e, nil
}

func (s *Store) CreateEquipmentDB(ctx context.Context, e *model.EquipmentDatabase) error {
	specs, err := jsonArg(e.Specs)
	if err != nil {
		return err
	}
	return s.pool.QueryRow(ctx,
		`INSERT INTO equipment_database (model_number, equipment_type, manufacturer, description, specs, manual_url)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at`,
		e.ModelNumber, e.EquipmentType, e.Manufacturer, e.Description, specs, e.ManualURL,
	).Scan(&e.ID, &e.CreatedAt)
}

func (s *Store) EquipmentDBByID(ctx context.Context, id int64) (*model.EquipmentDatabase, error) {
	return scanEquipmentDB(s.pool.QueryRow(ctx,
		`SELECT `+equipmentDBCols+` FROM equipment_database WHERE id = $1`, id))
}

func (s *Store) ListEquipmentDB(ctx context.Context) ([]model.EquipmentDatabase, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+equipmentDBCols+` FROM equipment_database ORDER BY manufacturer, model_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EquipmentDatabase
	for rows.Next() {
		e, err := scanEquipmentDB(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEquipmentDB(ctx context.Context, e *model.EquipmentDatabase) error {
	specs, err := jsonArg(e.Specs)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE equipment_database SET model_number=$1, equipment_type=$2, manufacturer=$3,
		   description=$4, specs=$5, manual_url=$6 WHERE id=$7`,
		e.ModelNumber, e.EquipmentType, e.Manufacturer, e.Description, specs, e.ManualURL, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEquipmentDB(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM equipment_database WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"math"

	"empapi/internal/model"
	"empapi/internal/repository"
)

const employeeColumns = `id, name, mail_id, job_title, mission, project_name, reports_to`

// EmployeePostgres is a PostgreSQL implementation of repository.EmployeeRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type EmployeePostgres struct {
	db *sql.DB
}

// NewEmployeePostgres creates a new EmployeePostgres repository.
func NewEmployeePostgres(db *sql.DB) *EmployeePostgres {
	return &EmployeePostgres{db: db}
}

var _ repository.EmployeeRepository = (*EmployeePostgres)(nil)

// storableID reports whether id fits the int4 id column. Anything outside
// cannot match a row, and pgx refuses to encode it.
func storableID(id int) bool {
	return id >= math.MinInt32 && id <= math.MaxInt32
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(s scanner) (model.Employee, error) {
	var e model.Employee
	err := s.Scan(
		&e.ID,
		&e.Name,
		&e.MailID,
		&e.JobTitle,
		&e.Mission,
		&e.ProjectName,
		&e.ReportsTo,
	)
	return e, err
}

// List returns all employees ordered by ID.
func (r *EmployeePostgres) List(ctx context.Context) ([]model.Employee, error) {
	const q = `SELECT ` + employeeColumns + ` FROM employees ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single employee by its ID.
func (r *EmployeePostgres) FindByID(ctx context.Context, id int) (*model.Employee, error) {
	if !storableID(id) {
		return nil, sql.ErrNoRows
	}
	const q = `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new employee row; the ID comes from the SERIAL column.
func (r *EmployeePostgres) Create(ctx context.Context, e *model.Employee) (*model.Employee, error) {
	const q = `
		INSERT INTO employees (name, mail_id, job_title, mission, project_name, reports_to)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + employeeColumns
	out, err := scanEmployee(r.db.QueryRowContext(ctx, q,
		e.Name,
		e.MailID,
		string(e.JobTitle),
		string(e.Mission),
		e.ProjectName,
		e.ReportsTo,
	))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update overwrites all mutable columns. It returns sql.ErrNoRows when no row matches.
func (r *EmployeePostgres) Update(ctx context.Context, e *model.Employee) (*model.Employee, error) {
	if !storableID(e.ID) {
		return nil, sql.ErrNoRows
	}
	const q = `
		UPDATE employees
		SET name = $2, mail_id = $3, job_title = $4, mission = $5, project_name = $6, reports_to = $7
		WHERE id = $1
		RETURNING ` + employeeColumns
	out, err := scanEmployee(r.db.QueryRowContext(ctx, q,
		e.ID,
		e.Name,
		e.MailID,
		string(e.JobTitle),
		string(e.Mission),
		e.ProjectName,
		e.ReportsTo,
	))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an employee by ID. It returns sql.ErrNoRows when no row was deleted.
func (r *EmployeePostgres) Delete(ctx context.Context, id int) error {
	if !storableID(id) {
		return sql.ErrNoRows
	}
	const q = `DELETE FROM employees WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

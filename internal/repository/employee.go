package repository

import (
	"context"

	"empapi/internal/model"
)

// EmployeeRepository defines data access for employees. Implementations report
// a missing record with sql.ErrNoRows.
type EmployeeRepository interface {
	// List returns every employee ordered by ID.
	List(ctx context.Context) ([]model.Employee, error)

	// FindByID returns a single employee by its ID.
	FindByID(ctx context.Context, id int) (*model.Employee, error)

	// Create stores a new employee; the returned record carries the assigned ID.
	Create(ctx context.Context, e *model.Employee) (*model.Employee, error)

	// Update replaces every mutable field of the employee with e.ID.
	Update(ctx context.Context, e *model.Employee) (*model.Employee, error)

	// Delete removes the employee with the given ID.
	Delete(ctx context.Context, id int) error
}

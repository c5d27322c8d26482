package catalog

import (
	"context"

	"github.com/google/uuid"
)

// EmployeeRepository defines the interface for employee persistence.
// It is the Catalog Source collaborator: it performs the storage I/O, while
// filtering and ordering are the job of the pure query engine.
type EmployeeRepository interface {
	// FindByID finds an employee by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)

	// FindByCode finds an employee by its stable catalog code
	FindByCode(ctx context.Context, code string) (*Employee, error)

	// ListActive returns all offerable employees
	ListActive(ctx context.Context) ([]Employee, error)

	// FindByIDs finds multiple employees by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Employee, error)

	// Save creates or updates an employee
	Save(ctx context.Context, employee *Employee) error

	// ExistsByCode checks if an employee with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Count counts all employees
	Count(ctx context.Context) (int64, error)
}

package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/catalog"
	"github.com/hirehub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements catalog.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Employee, error) {
	var employee catalog.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindByCode finds an employee by its stable catalog code
func (r *GormEmployeeRepository) FindByCode(ctx context.Context, code string) (*catalog.Employee, error) {
	var employee catalog.Employee
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// ListActive returns all offerable employees. Ordering here is only a stable
// baseline; presentation order is decided by the catalog query engine.
func (r *GormEmployeeRepository) ListActive(ctx context.Context) ([]catalog.Employee, error) {
	var employees []catalog.Employee
	if err := r.db.WithContext(ctx).
		Where("status = ?", catalog.EmployeeStatusActive).
		Order("popularity_rank ASC, code ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// FindByIDs finds multiple employees by their IDs
func (r *GormEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Employee, error) {
	if len(ids) == 0 {
		return []catalog.Employee{}, nil
	}

	var employees []catalog.Employee
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *catalog.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// ExistsByCode checks if an employee with the given code exists
func (r *GormEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Employee{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts all employees
func (r *GormEmployeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Employee{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormEmployeeRepository implements EmployeeRepository
var _ catalog.EmployeeRepository = (*GormEmployeeRepository)(nil)

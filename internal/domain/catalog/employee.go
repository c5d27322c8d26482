package catalog

import (
	"strings"
	"time"

	"github.com/hirehub/backend/internal/domain/shared"
)

// EmployeeStatus represents the offerable status of an employee
type EmployeeStatus string

const (
	EmployeeStatusActive  EmployeeStatus = "active"
	EmployeeStatusRetired EmployeeStatus = "retired"
)

// Employee represents one offerable AI employee record in the catalog.
// It is the aggregate root for catalog operations and is never mutated by
// the query engine.
type Employee struct {
	shared.BaseAggregateRoot
	Code           string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_employees_code"`
	DisplayName    string         `gorm:"type:varchar(200);not null"`
	Category       Category       `gorm:"type:varchar(20);not null;index"`
	Role           string         `gorm:"type:varchar(100);not null"`
	Specialty      string         `gorm:"type:varchar(200)"`
	Skills         []string       `gorm:"serializer:json;type:jsonb"`
	PriceMinor     int64          `gorm:"not null;default:0"` // smallest currency unit
	PopularityRank int            `gorm:"not null;default:0;index"`
	TimesHired     int64          `gorm:"not null;default:0"`
	Status         EmployeeStatus `gorm:"type:varchar(20);not null;default:'active'"`
	AvatarKey      string         `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates a new catalog employee
func NewEmployee(code, displayName, role string, category Category, priceMinor int64) (*Employee, error) {
	if err := validateEmployeeCode(code); err != nil {
		return nil, err
	}
	if err := validateDisplayName(displayName); err != nil {
		return nil, err
	}
	if role == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee role cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown employee category: "+string(category))
	}
	if priceMinor < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee price cannot be negative")
	}

	employee := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		DisplayName:       displayName,
		Category:          category,
		Role:              role,
		Skills:            []string{},
		PriceMinor:        priceMinor,
		Status:            EmployeeStatusActive,
	}

	employee.AddDomainEvent(NewEmployeeCreatedEvent(employee))

	return employee, nil
}

// SearchTerms returns every string the free-text term filter matches against:
// display name, role, specialty, and each skill.
func (e *Employee) SearchTerms() []string {
	terms := make([]string, 0, len(e.Skills)+3)
	terms = append(terms, e.DisplayName, e.Role)
	if e.Specialty != "" {
		terms = append(terms, e.Specialty)
	}
	terms = append(terms, e.Skills...)
	return terms
}

// UpdateProfile updates the employee's descriptive fields
func (e *Employee) UpdateProfile(displayName, role, specialty string, skills []string) error {
	if err := validateDisplayName(displayName); err != nil {
		return err
	}
	if role == "" {
		return shared.NewDomainError("INVALID_INPUT", "Employee role cannot be empty")
	}

	e.DisplayName = displayName
	e.Role = role
	e.Specialty = specialty
	if skills != nil {
		e.Skills = skills
	}
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeUpdatedEvent(e))

	return nil
}

// SetPrice updates the employee's price in minor currency units
func (e *Employee) SetPrice(priceMinor int64) error {
	if priceMinor < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Employee price cannot be negative")
	}

	e.PriceMinor = priceMinor
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeUpdatedEvent(e))

	return nil
}

// SetPopularityRank sets the catalog popularity rank (lower = more popular)
func (e *Employee) SetPopularityRank(rank int) {
	e.PopularityRank = rank
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// SetAvatarKey sets the object storage key of the employee's avatar
func (e *Employee) SetAvatarKey(key string) {
	e.AvatarKey = key
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// RecordHire increments the hire counter. Popularity ranking jobs read this
// counter; the rank itself is assigned externally.
func (e *Employee) RecordHire() {
	e.TimesHired++
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// Retire removes the employee from the offerable catalog
func (e *Employee) Retire() error {
	if e.Status == EmployeeStatusRetired {
		return shared.NewDomainError("ALREADY_RETIRED", "Employee is already retired")
	}

	e.Status = EmployeeStatusRetired
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEmployeeRetiredEvent(e))

	return nil
}

// IsActive returns true if the employee is offerable
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// validateEmployeeCode validates the stable catalog code
func validateEmployeeCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_INPUT", "Employee code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "Employee code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_INPUT", "Employee code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateDisplayName validates the display name
func validateDisplayName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Employee display name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Employee display name cannot exceed 200 characters")
	}
	return nil
}

package catalog

import (
	"github.com/hirehub/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeEmployeeCreated = "catalog.employee.created"
	EventTypeEmployeeUpdated = "catalog.employee.updated"
	EventTypeEmployeeRetired = "catalog.employee.retired"
)

// EmployeeCreatedEvent is emitted when an employee is added to the catalog
type EmployeeCreatedEvent struct {
	shared.BaseDomainEvent
	Code        string   `json:"code"`
	DisplayName string   `json:"display_name"`
	Category    Category `json:"category"`
}

// NewEmployeeCreatedEvent creates a new EmployeeCreatedEvent
func NewEmployeeCreatedEvent(e *Employee) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeCreated, "Employee", e.ID),
		Code:            e.Code,
		DisplayName:     e.DisplayName,
		Category:        e.Category,
	}
}

// EmployeeUpdatedEvent is emitted when an employee's profile or price changes
type EmployeeUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewEmployeeUpdatedEvent creates a new EmployeeUpdatedEvent
func NewEmployeeUpdatedEvent(e *Employee) *EmployeeUpdatedEvent {
	return &EmployeeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeUpdated, "Employee", e.ID),
		Code:            e.Code,
	}
}

// EmployeeRetiredEvent is emitted when an employee leaves the offerable catalog
type EmployeeRetiredEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewEmployeeRetiredEvent creates a new EmployeeRetiredEvent
func NewEmployeeRetiredEvent(e *Employee) *EmployeeRetiredEvent {
	return &EmployeeRetiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeRetired, "Employee", e.ID),
		Code:            e.Code,
	}
}

package hiring

import (
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/shared"
)

// Hire represents one user's durable hold on one catalog employee.
// For a given (user, employee) pair at most one active record may exist;
// the composite unique index is the store-level guard that enforces it
// even when hire requests race.
type Hire struct {
	shared.BaseAggregateRoot
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hires_user_employee,priority:1"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hires_user_employee,priority:2"`
	HiredAt    time.Time `gorm:"not null"`
	Active     bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Hire) TableName() string {
	return "hires"
}

// NewHire creates a new active hire record
func NewHire(userID, employeeID uuid.UUID) (*Hire, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "User ID is required")
	}
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee ID is required")
	}

	hire := &Hire{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		EmployeeID:        employeeID,
		HiredAt:           time.Now(),
		Active:            true,
	}

	hire.AddDomainEvent(NewEmployeeHiredEvent(hire))

	return hire, nil
}

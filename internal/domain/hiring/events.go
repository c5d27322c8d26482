package hiring

import (
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/shared"
)

// Event types for the hiring context
const (
	EventTypeEmployeeHired = "hiring.employee.hired"
)

// EmployeeHiredEvent is emitted when a hire record is durably created.
// It is not emitted for the already-hired / duplicate-race outcomes.
type EmployeeHiredEvent struct {
	shared.BaseDomainEvent
	UserID     uuid.UUID `json:"user_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	HiredAt    time.Time `json:"hired_at"`
}

// NewEmployeeHiredEvent creates a new EmployeeHiredEvent
func NewEmployeeHiredEvent(h *Hire) *EmployeeHiredEvent {
	return &EmployeeHiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeHired, "Hire", h.ID),
		UserID:          h.UserID,
		EmployeeID:      h.EmployeeID,
		HiredAt:         h.HiredAt,
	}
}

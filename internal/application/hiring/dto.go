package hiring

import (
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/hiring"
)

// HireEmployeeRequest represents a request to hire an employee
type HireEmployeeRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
}

// HireResponse is the outcome of a hire attempt. Status is "hired" for a
// first-time hire and "already_hired" when the pair was already held; both
// are successful outcomes.
type HireResponse struct {
	Status     hiring.HireStatus `json:"status"`
	UserID     uuid.UUID         `json:"user_id"`
	EmployeeID uuid.UUID         `json:"employee_id"`
	HiredAt    *time.Time        `json:"hired_at,omitempty"`
}

// HiredEmployeeResponse is one entry in a user's roster: the hire record
// joined with a summary of the employee it refers to.
type HiredEmployeeResponse struct {
	EmployeeID  uuid.UUID `json:"employee_id"`
	Code        string    `json:"code"`
	DisplayName string    `json:"display_name"`
	Category    string    `json:"category"`
	Role        string    `json:"role"`
	HiredAt     time.Time `json:"hired_at"`
}

// HoldingsResponse reports whether a user currently holds an employee
type HoldingsResponse struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Hired      bool      `json:"hired"`
}

// ToHireResponse converts a domain hire result to a response DTO
func ToHireResponse(userID, employeeID uuid.UUID, result *hiring.HireResult) HireResponse {
	resp := HireResponse{
		Status:     result.Status,
		UserID:     userID,
		EmployeeID: employeeID,
	}
	if result.Record != nil {
		hiredAt := result.Record.HiredAt
		resp.HiredAt = &hiredAt
	}
	return resp
}

package catalog

import (
	"context"
	"fmt"

	"github.com/hirehub/backend/internal/domain/catalog"
	"github.com/hirehub/backend/internal/domain/hiring"
	"github.com/hirehub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EmployeeHiredHandler keeps the catalog's hire counter in sync with the
// hiring context. It runs off the event bus: a failure here is logged and
// never propagates back into the hire path.
type EmployeeHiredHandler struct {
	employeeRepo catalog.EmployeeRepository
	logger       *zap.Logger
}

// NewEmployeeHiredHandler creates a new handler for employee hired events
func NewEmployeeHiredHandler(employeeRepo catalog.EmployeeRepository, logger *zap.Logger) *EmployeeHiredHandler {
	return &EmployeeHiredHandler{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *EmployeeHiredHandler) EventTypes() []string {
	return []string{hiring.EventTypeEmployeeHired}
}

// Handle increments the hired counter for the employee named in the event
func (h *EmployeeHiredHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	hiredEvent, ok := event.(*hiring.EmployeeHiredEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", hiring.EventTypeEmployeeHired),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			hiring.EventTypeEmployeeHired, event.EventType())
	}

	employee, err := h.employeeRepo.FindByID(ctx, hiredEvent.EmployeeID)
	if err != nil {
		h.logger.Error("failed to load employee for hire counter update",
			zap.String("employee_id", hiredEvent.EmployeeID.String()),
			zap.Error(err),
		)
		return err
	}

	employee.RecordHire()
	if err := h.employeeRepo.Save(ctx, employee); err != nil {
		h.logger.Error("failed to persist hire counter update",
			zap.String("employee_id", hiredEvent.EmployeeID.String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("hire counter updated",
		zap.String("employee_id", hiredEvent.EmployeeID.String()),
		zap.Int64("times_hired", employee.TimesHired),
	)
	return nil
}

// Ensure EmployeeHiredHandler implements EventHandler
var _ shared.EventHandler = (*EmployeeHiredHandler)(nil)

package hiring

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/catalog"
	"github.com/hirehub/backend/internal/domain/hiring"
	"github.com/hirehub/backend/internal/domain/shared"
	"github.com/hirehub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// HireService coordinates hire attempts between the catalog, the holdings
// cache, and the store. The store's uniqueness constraint is the final
// authority on "does this user already hold this employee"; everything the
// cache says is advisory. The coordinator therefore never blocks a hire on
// cache state alone and collapses a losing race into the same outcome as a
// repeated request.
type HireService struct {
	store        hiring.Store
	cache        hiring.HoldingsCache
	employeeRepo catalog.EmployeeRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewHireService creates a new HireService
func NewHireService(
	store hiring.Store,
	cache hiring.HoldingsCache,
	employeeRepo catalog.EmployeeRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *HireService {
	return &HireService{
		store:        store,
		cache:        cache,
		employeeRepo: employeeRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// HasHired reports whether the user currently holds the employee.
//
// The read is cache-first: a hit answers from the cache, a miss rebuilds the
// user's holdings from the store and populates the cache before answering.
// A failed store read surfaces as ErrLookupFailed, never as "not hired".
func (s *HireService) HasHired(ctx context.Context, userID, employeeID uuid.UUID) (bool, error) {
	holdings, err := s.loadHoldings(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range holdings {
		if id == employeeID {
			return true, nil
		}
	}
	return false, nil
}

// Hire records that the user hires the employee. The operation is
// idempotent: a repeat request, or losing a concurrent race for the same
// pair, returns StatusAlreadyHired instead of an error.
func (s *HireService) Hire(ctx context.Context, userID, employeeID uuid.UUID) (*hiring.HireResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "hire", "create")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrUserID, userID.String(),
		telemetry.SpanAttrEmployeeID, employeeID.String(),
	)

	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !employee.IsActive() {
		telemetry.RecordError(span, hiring.ErrEmployeeRetired)
		return nil, hiring.ErrEmployeeRetired
	}

	// Fast path: answer repeats from local state without touching the
	// store. An uncertain lookup is not a refusal; the write below is
	// guarded by the store's own uniqueness constraint, so we proceed.
	held, err := s.HasHired(ctx, userID, employeeID)
	if err != nil {
		s.logger.Warn("holdings lookup failed, proceeding to guarded write",
			zap.String("user_id", userID.String()),
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
	} else if held {
		telemetry.SetAttribute(span, telemetry.SpanAttrHireStatus, string(hiring.StatusAlreadyHired))
		return s.alreadyHired(ctx, userID, employeeID), nil
	}

	hire, err := hiring.NewHire(userID, employeeID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, hire); err != nil {
		if errors.Is(err, hiring.ErrDuplicateHire) {
			// Lost a race or the pre-check missed a stale record.
			// The record exists, which is exactly what the caller
			// asked for.
			telemetry.AddEvent(span, "hire_race_lost",
				telemetry.SpanAttrEmployeeID, employeeID.String(),
			)
			telemetry.SetAttribute(span, telemetry.SpanAttrHireStatus, string(hiring.StatusAlreadyHired))
			s.markHired(ctx, userID, employeeID)
			return s.alreadyHired(ctx, userID, employeeID), nil
		}
		// Failed writes leave the cache untouched: nothing was
		// confirmed, so there is nothing to record.
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrHireID, hire.ID.String(),
		telemetry.SpanAttrHireStatus, string(hiring.StatusHired),
	)
	s.markHired(ctx, userID, employeeID)

	if err := s.eventBus.Publish(ctx, hire.GetDomainEvents()...); err != nil {
		s.logger.Error("failed to publish hire events",
			zap.String("hire_id", hire.ID.String()),
			zap.Error(err),
		)
	}
	hire.ClearDomainEvents()

	return &hiring.HireResult{Status: hiring.StatusHired, Record: hire}, nil
}

// ListHires returns the user's roster: every active hire joined with the
// employee it refers to.
func (s *HireService) ListHires(ctx context.Context, userID uuid.UUID) ([]HiredEmployeeResponse, error) {
	hires, err := s.store.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(hires) == 0 {
		return []HiredEmployeeResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(hires))
	for _, h := range hires {
		ids = append(ids, h.EmployeeID)
	}
	employees, err := s.employeeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Employee, len(employees))
	for i := range employees {
		byID[employees[i].ID] = &employees[i]
	}

	roster := make([]HiredEmployeeResponse, 0, len(hires))
	for _, h := range hires {
		entry := HiredEmployeeResponse{
			EmployeeID: h.EmployeeID,
			HiredAt:    h.HiredAt,
		}
		if e, ok := byID[h.EmployeeID]; ok {
			entry.Code = e.Code
			entry.DisplayName = e.DisplayName
			entry.Category = string(e.Category)
			entry.Role = e.Role
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

// InvalidateSession drops the user's cached holdings. The next read rebuilds
// them from the store.
func (s *HireService) InvalidateSession(ctx context.Context, userID uuid.UUID) error {
	return s.cache.Invalidate(ctx, userID)
}

// loadHoldings returns the user's held employee IDs, reading through the
// cache. Cache failures degrade to a direct store read.
func (s *HireService) loadHoldings(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	entryIDs, ok, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("holdings cache read failed, falling back to store",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	} else if ok {
		return entryIDs, nil
	}

	hires, err := s.store.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(hires))
	for _, h := range hires {
		ids = append(ids, h.EmployeeID)
	}

	if err := s.cache.Populate(ctx, userID, ids); err != nil {
		s.logger.Warn("failed to populate holdings cache",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
	return ids, nil
}

// markHired records a store-confirmed hire in the cache. Failures are
// logged and swallowed: a stale miss only costs an extra store read.
func (s *HireService) markHired(ctx context.Context, userID, employeeID uuid.UUID) {
	if err := s.cache.MarkHired(ctx, userID, employeeID); err != nil {
		s.logger.Warn("failed to mark hire in holdings cache",
			zap.String("user_id", userID.String()),
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
	}
}

// alreadyHired builds the idempotent success result, attaching the existing
// record when the store can still produce it.
func (s *HireService) alreadyHired(ctx context.Context, userID, employeeID uuid.UUID) *hiring.HireResult {
	record, err := s.store.FindActive(ctx, userID, employeeID)
	if err != nil {
		s.logger.Warn("could not load existing hire record",
			zap.String("user_id", userID.String()),
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
	}
	return &hiring.HireResult{Status: hiring.StatusAlreadyHired, Record: record}
}

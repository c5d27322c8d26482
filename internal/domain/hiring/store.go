package hiring

import (
	"context"

	"github.com/google/uuid"
)

// Store is the system of record for hire records. Implementations must
// enforce the (user, employee) uniqueness invariant at the storage level:
// client code performs no locking, because only the store sees all
// concurrent attempts.
type Store interface {
	// HasActive reports whether an active hire exists for the pair.
	// A failed read returns ErrLookupFailed: the answer is unknown, not false.
	HasActive(ctx context.Context, userID, employeeID uuid.UUID) (bool, error)

	// Create persists a new hire record. It is safe to retry.
	// Returns ErrDuplicateHire when the uniqueness invariant is already
	// satisfied, ErrStoreUnavailable on transient failure, and
	// ErrStoreNotProvisioned when the schema is missing.
	Create(ctx context.Context, hire *Hire) error

	// ListActiveByUser returns every active hire for a user, used to
	// rebuild the holdings cache on a miss.
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Hire, error)

	// FindActive returns the active hire record for the pair, if any
	FindActive(ctx context.Context, userID, employeeID uuid.UUID) (*Hire, error)
}

// HoldingsCache is the process-local, advisory cache of "what does this user
// already hold". The store is the source of truth; the cache only exists to
// avoid redundant remote reads. It is read-through and write-after-confirm:
// MarkHired may only be called once the store has confirmed the write.
type HoldingsCache interface {
	// Get returns the cached employee IDs for a user. ok is false on a
	// miss (never populated or invalidated); an empty populated set
	// returns ok=true with no IDs.
	Get(ctx context.Context, userID uuid.UUID) (entryIDs []uuid.UUID, ok bool, err error)

	// Populate replaces the user's cached holdings after an authoritative
	// store read.
	Populate(ctx context.Context, userID uuid.UUID, entryIDs []uuid.UUID) error

	// MarkHired appends one employee to the user's cached holdings.
	// Callers must only invoke this after the store confirmed the write.
	MarkHired(ctx context.Context, userID, employeeID uuid.UUID) error

	// Invalidate drops the user's cached holdings (session end, or local
	// state no longer trustworthy).
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

package hiring

import "github.com/hirehub/backend/internal/domain/shared"

// Store and lookup error taxonomy.
//
// ErrDuplicateHire is the race case: the store rejected a write because the
// (user, employee) uniqueness invariant already holds. The coordinator maps
// it to StatusAlreadyHired; it never reaches a caller as a failure.
//
// ErrStoreUnavailable is transient and retryable by the caller.
// ErrStoreNotProvisioned means the store schema is missing; it needs
// operator intervention and must render distinctly from unavailable.
// ErrLookupFailed means a remote read could not complete; the answer is
// unknown, never "false".
var (
	ErrDuplicateHire       = shared.NewDomainError("ALREADY_HIRED", "Employee is already hired by this user")
	ErrStoreUnavailable    = shared.NewDomainError("STORE_UNAVAILABLE", "Hiring store is temporarily unavailable")
	ErrStoreNotProvisioned = shared.NewDomainError("STORE_NOT_PROVISIONED", "Hiring store is not provisioned; run migrations")
	ErrLookupFailed        = shared.NewDomainError("LOOKUP_FAILED", "Could not determine hiring state")
	ErrEmployeeRetired     = shared.NewDomainError("EMPLOYEE_RETIRED", "Employee is no longer offerable")
)

package hiring

// HireStatus is the success-shaped outcome of a hire attempt. Failures are
// not statuses; they surface as typed domain errors. Under a race both
// callers observe one of these two statuses, never a hard failure, because
// duplication is indistinguishable from success for the caller.
type HireStatus string

const (
	// StatusHired means this call created the durable record
	StatusHired HireStatus = "hired"
	// StatusAlreadyHired means the record already existed, whether found
	// up front or discovered via the store's uniqueness rejection
	StatusAlreadyHired HireStatus = "already_hired"
)

// HireResult is the outcome of a hire attempt
type HireResult struct {
	Status HireStatus
	Record *Hire
}

// Hired reports whether this call created the record
func (r *HireResult) Hired() bool {
	return r.Status == StatusHired
}

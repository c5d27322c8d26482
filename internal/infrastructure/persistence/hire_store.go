package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/hiring"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes the store translates into the hiring taxonomy.
const (
	pgCodeUniqueViolation = "23505"
	pgCodeUndefinedTable  = "42P01"
)

// GormHireStore implements hiring.Store using GORM on PostgreSQL.
//
// The composite unique index on (user_id, employee_id) is the only
// concurrency guard: racing inserts collapse to a unique violation, which
// is translated to hiring.ErrDuplicateHire so the coordinator can treat
// the loser of the race as already hired rather than failed.
type GormHireStore struct {
	db *gorm.DB
}

// NewGormHireStore creates a new GormHireStore
func NewGormHireStore(db *gorm.DB) *GormHireStore {
	return &GormHireStore{db: db}
}

// HasActive reports whether an active hire exists for the pair.
// A failed read returns ErrLookupFailed: the answer is unknown, not false.
func (s *GormHireStore) HasActive(ctx context.Context, userID, employeeID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&hiring.Hire{}).
		Where("user_id = ? AND employee_id = ? AND active = ?", userID, employeeID, true).
		Count(&count).Error; err != nil {
		return false, s.translateReadError(err)
	}
	return count > 0, nil
}

// Create persists a new hire record, translating storage failures into the
// hiring error taxonomy.
func (s *GormHireStore) Create(ctx context.Context, hire *hiring.Hire) error {
	if err := s.db.WithContext(ctx).Create(hire).Error; err != nil {
		return s.translateWriteError(err)
	}
	return nil
}

// ListActiveByUser returns every active hire for a user
func (s *GormHireStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]hiring.Hire, error) {
	var hires []hiring.Hire
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("hired_at ASC").
		Find(&hires).Error; err != nil {
		return nil, s.translateReadError(err)
	}
	return hires, nil
}

// FindActive returns the active hire record for the pair, if any
func (s *GormHireStore) FindActive(ctx context.Context, userID, employeeID uuid.UUID) (*hiring.Hire, error) {
	var hire hiring.Hire
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND employee_id = ? AND active = ?", userID, employeeID, true).
		First(&hire).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, s.translateReadError(err)
	}
	return &hire, nil
}

// translateWriteError maps storage write failures onto the hiring taxonomy.
// GORM's TranslateError covers unique violations portably; the raw
// PostgreSQL codes are checked as well since translation only applies to
// errors the dialector recognizes.
func (s *GormHireStore) translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return hiring.ErrDuplicateHire
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUniqueViolation:
			return hiring.ErrDuplicateHire
		case pgCodeUndefinedTable:
			return hiring.ErrStoreNotProvisioned
		}
	}
	return hiring.ErrStoreUnavailable
}

// translateReadError maps storage read failures. A missing table is still a
// provisioning problem; everything else means the answer is unknown.
func (s *GormHireStore) translateReadError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCodeUndefinedTable {
		return hiring.ErrStoreNotProvisioned
	}
	return hiring.ErrLookupFailed
}

// Ensure GormHireStore implements Store
var _ hiring.Store = (*GormHireStore)(nil)

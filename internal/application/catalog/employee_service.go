package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/catalog"
	"github.com/hirehub/backend/internal/domain/shared"
	"github.com/hirehub/backend/internal/infrastructure/telemetry"
)

// ObjectStorageService defines the interface for object storage operations.
// It is implemented by the infrastructure layer (S3-compatible backends).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// EmployeeServiceConfig holds configuration for the employee service
type EmployeeServiceConfig struct {
	// AvatarURLExpiry is the lifetime of presigned avatar URLs
	AvatarURLExpiry time.Duration
	// DefaultPageSize is used when a list request omits page size
	DefaultPageSize int
	// MaxPageSize caps the page size a caller can request
	MaxPageSize int
}

// DefaultEmployeeServiceConfig returns sensible defaults
func DefaultEmployeeServiceConfig() EmployeeServiceConfig {
	return EmployeeServiceConfig{
		AvatarURLExpiry: 15 * time.Minute,
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

// EmployeeService handles catalog read and curation operations. On the read
// path the repository supplies the raw active entries and the pure query
// engine does all filtering and ordering, so the view is deterministic
// regardless of storage backend.
type EmployeeService struct {
	employeeRepo catalog.EmployeeRepository
	storage      ObjectStorageService
	config       EmployeeServiceConfig
}

// NewEmployeeService creates a new EmployeeService.
// storage may be nil when avatar handling is disabled.
func NewEmployeeService(employeeRepo catalog.EmployeeRepository, storage ObjectStorageService) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		storage:      storage,
		config:       DefaultEmployeeServiceConfig(),
	}
}

// Create adds a new employee to the catalog
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	exists, err := s.employeeRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Employee with this code already exists")
	}

	employee, err := catalog.NewEmployee(req.Code, req.DisplayName, req.Role, req.Category, req.PriceMinor)
	if err != nil {
		return nil, err
	}

	if req.Specialty != "" || len(req.Skills) > 0 {
		if err := employee.UpdateProfile(req.DisplayName, req.Role, req.Specialty, req.Skills); err != nil {
			return nil, err
		}
	}
	if req.PopularityRank != 0 {
		employee.SetPopularityRank(req.PopularityRank)
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// List returns a filtered, ordered, paginated catalog view.
// The total reflects the filtered set, not the page.
func (s *EmployeeService) List(ctx context.Context, req ListEmployeesRequest) ([]EmployeeResponse, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "employee", "list")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrCategory, string(req.Category),
		"term_present", req.Term != "",
	)

	entries, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, err
	}

	view, err := catalog.Query(entries, catalog.QueryParams{
		Term:     req.Term,
		Category: req.Category,
		Sort:     req.Sort,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, err
	}

	total := int64(len(view))
	telemetry.SetAttribute(span, "result_count", int(total))
	page, pageSize := s.normalizePage(req.Page, req.PageSize)

	start := (page - 1) * pageSize
	if start >= len(view) {
		return []EmployeeResponse{}, total, nil
	}
	end := start + pageSize
	if end > len(view) {
		end = len(view)
	}

	responses := make([]EmployeeResponse, 0, end-start)
	for i := start; i < end; i++ {
		responses = append(responses, ToEmployeeResponse(&view[i]))
	}
	return responses, total, nil
}

// Retire removes an employee from the offerable catalog
func (s *EmployeeService) Retire(ctx context.Context, id uuid.UUID) error {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := employee.Retire(); err != nil {
		return err
	}
	return s.employeeRepo.Save(ctx, employee)
}

// GenerateAvatarUploadURL returns a presigned upload URL for an employee
// avatar and records the storage key on the employee.
func (s *EmployeeService) GenerateAvatarUploadURL(ctx context.Context, id uuid.UUID, contentType string) (*AvatarUploadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Object storage is not configured")
	}

	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	storageKey := fmt.Sprintf("avatars/%s/%s", employee.Code, uuid.New().String())
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, contentType, s.config.AvatarURLExpiry)
	if err != nil {
		return nil, err
	}

	employee.SetAvatarKey(storageKey)
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	return &AvatarUploadResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// GetAvatarURL returns a presigned download URL for an employee avatar
func (s *EmployeeService) GetAvatarURL(ctx context.Context, id uuid.UUID) (*AvatarURLResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Object storage is not configured")
	}

	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee.AvatarKey == "" {
		return nil, shared.ErrNotFound
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, employee.AvatarKey, s.config.AvatarURLExpiry)
	if err != nil {
		return nil, err
	}

	return &AvatarURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// normalizePage applies defaults and caps to pagination parameters
func (s *EmployeeService) normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.config.DefaultPageSize
	}
	if pageSize > s.config.MaxPageSize {
		pageSize = s.config.MaxPageSize
	}
	return page, pageSize
}

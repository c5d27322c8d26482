package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest represents a request to add an employee to the catalog
type CreateEmployeeRequest struct {
	Code           string
	DisplayName    string
	Category       catalog.Category
	Role           string
	Specialty      string
	Skills         []string
	PriceMinor     int64
	PopularityRank int
}

// ListEmployeesRequest represents catalog query parameters after parsing.
// Term/category/sort map one to one onto the query engine's params.
type ListEmployeesRequest struct {
	Term     string
	Category catalog.Category
	Sort     catalog.SortKey
	Page     int
	PageSize int
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID             uuid.UUID        `json:"id"`
	Code           string           `json:"code"`
	DisplayName    string           `json:"display_name"`
	Category       catalog.Category `json:"category"`
	Role           string           `json:"role"`
	Specialty      string           `json:"specialty,omitempty"`
	Skills         []string         `json:"skills"`
	PriceMinor     int64            `json:"price_minor"`
	Price          string           `json:"price"`
	PopularityRank int              `json:"popularity_rank"`
	TimesHired     int64            `json:"times_hired"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

// AvatarUploadResponse carries a presigned upload URL for an employee avatar
type AvatarUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// AvatarURLResponse carries a presigned download URL for an employee avatar
type AvatarURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToEmployeeResponse converts a domain employee to a response DTO
func ToEmployeeResponse(e *catalog.Employee) EmployeeResponse {
	skills := e.Skills
	if skills == nil {
		skills = []string{}
	}
	return EmployeeResponse{
		ID:             e.ID,
		Code:           e.Code,
		DisplayName:    e.DisplayName,
		Category:       e.Category,
		Role:           e.Role,
		Specialty:      e.Specialty,
		Skills:         skills,
		PriceMinor:     e.PriceMinor,
		Price:          formatPrice(e.PriceMinor),
		PopularityRank: e.PopularityRank,
		TimesHired:     e.TimesHired,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt,
	}
}

// formatPrice renders minor currency units as a major-unit decimal string
func formatPrice(priceMinor int64) string {
	return decimal.NewFromInt(priceMinor).Div(decimal.NewFromInt(100)).StringFixed(2)
}

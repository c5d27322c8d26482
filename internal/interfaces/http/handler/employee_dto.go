package handler

// CreateEmployeeRequest represents a request to add an employee to the catalog
type CreateEmployeeRequest struct {
	Code           string   `json:"code" binding:"required,min=1,max=50"`
	DisplayName    string   `json:"display_name" binding:"required,min=1,max=100"`
	Category       string   `json:"category" binding:"required"`
	Role           string   `json:"role" binding:"required,min=1,max=100"`
	Specialty      string   `json:"specialty" binding:"omitempty,max=200"`
	Skills         []string `json:"skills" binding:"omitempty,max=20,dive,min=1,max=50"`
	PriceMinor     int64    `json:"price_minor" binding:"required,gt=0"`
	PopularityRank int      `json:"popularity_rank" binding:"omitempty,gte=0"`
}

// AvatarUploadRequest carries upload parameters for an employee avatar
type AvatarUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

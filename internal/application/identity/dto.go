package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/identity"
	"github.com/hirehub/backend/internal/infrastructure/auth"
)

// RegisterInput contains data for registering a new account
type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
}

// LoginInput contains login credentials
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// LoginResult contains the outcome of a successful login
type LoginResult struct {
	User   UserResponse
	Tokens *auth.TokenPair
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

package auth

import (
	"time"

	"github.com/example/movie-catalog/domain/account"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse represents a user registration response.
type RegisterResponse struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Role      account.Role `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a user login response with tokens and the
// account's public profile.
type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
	TokenType    string          `json:"token_type"`
	User         account.Profile `json:"user"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse represents a token refresh response.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid     bool      `json:"valid"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	IssuedAt  time.Time `json:"issued_at,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// GetUserRequest represents a get user request.
type GetUserRequest struct {
	UserID string `json:"user_id"`
}

// GetUserResponse represents a get user response.
type GetUserResponse struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Role      account.Role `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
}

// ListUsersRequest represents a list users request.
type ListUsersRequest struct {
	Role account.Role `json:"role,omitempty"`
}

// ListUsersResponse represents a list users response.
type ListUsersResponse struct {
	Users []account.Profile `json:"users"`
}

// UpdateUserInput carries a partial account update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Email    *string       `json:"email,omitempty"`
	Password *string       `json:"password,omitempty"`
	Role     *account.Role `json:"role,omitempty"`
}

// UpdateUserRequest represents an update user request.
type UpdateUserRequest struct {
	UserID string `json:"user_id"`
	UpdateUserInput
}

// DeleteUserRequest represents a delete user request.
type DeleteUserRequest struct {
	UserID string `json:"user_id"`
}

// DeleteUserResponse represents a delete user response.
type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
}

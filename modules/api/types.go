package api

import (
	"time"

	"github.com/example/movie-catalog/domain/account"
	domain "github.com/example/movie-catalog/domain/movie"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
// Token is accepted as an alias for RefreshToken.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
	Token        string `json:"token"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// LoginResponse is a token response together with the account profile.
type LoginResponse struct {
	TokenResponse
	User account.Profile `json:"user"`
}

// UserResponse represents a user response.
type UserResponse struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Role      account.Role `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
}

// UsersResponse lists accounts.
type UsersResponse struct {
	Users []account.Profile `json:"users"`
	Count int               `json:"count"`
}

// UserUpdateRequest is the body of an account update. Absent fields are unchanged.
type UserUpdateRequest struct {
	Email    *string       `json:"email"`
	Password *string       `json:"password"`
	Role     *account.Role `json:"role"`
}

// MovieRequest is the body of create and update requests.
// Update treats absent fields as unchanged.
type MovieRequest struct {
	Title          *string `json:"title"`
	Image          *string `json:"image"`
	PublishingYear *string `json:"publishing_year"`
}

// MoviesResponse lists movies.
type MoviesResponse struct {
	Movies []*domain.Movie `json:"movies"`
	Count  int             `json:"count"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

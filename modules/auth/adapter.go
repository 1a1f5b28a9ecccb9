package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/movie-catalog/domain/account"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the interface for authentication operations.
// This is the port that other modules use to access auth functionality.
// Returned errors are the package sentinels whenever the cause is known.
type AuthPort interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error)
	ValidateToken(ctx context.Context, token string) (*account.Claims, error)
	GetUser(ctx context.Context, userID string) (*account.Account, error)
	ListUsers(ctx context.Context, role account.Role) ([]account.Profile, error)
	UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (*account.Account, error)
	DeleteUser(ctx context.Context, userID string) error
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// call invokes a request-reply service and restores known sentinel errors.
func (a *AuthAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		if known := DecodeServiceError(err); known != err {
			return known
		}
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// Register creates a new account.
func (a *AuthAdapter) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := a.call(ctx, "register", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates credentials and returns a token pair.
func (a *AuthAdapter) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := a.call(ctx, "login", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (a *AuthAdapter) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	req := RefreshRequest{RefreshToken: refreshToken}
	var resp RefreshResponse
	if err := a.call(ctx, "refresh-token", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateToken validates an access token and returns claims.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*account.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse
	if err := a.call(ctx, "validate-token", &req, &resp); err != nil {
		return nil, err
	}

	if !resp.Valid {
		if resp.Error == ErrExpiredToken.Error() {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	return &account.Claims{
		UserID:    resp.UserID,
		Email:     resp.Email,
		IssuedAt:  resp.IssuedAt,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// GetUser retrieves an account by ID. The password hash is never returned.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*account.Account, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse
	if err := a.call(ctx, "get-user", &req, &resp); err != nil {
		return nil, err
	}

	return &account.Account{
		ID:        resp.ID,
		Email:     resp.Email,
		Role:      resp.Role,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// ListUsers lists account profiles, optionally filtered by role.
func (a *AuthAdapter) ListUsers(ctx context.Context, role account.Role) ([]account.Profile, error) {
	req := ListUsersRequest{Role: role}
	var resp ListUsersResponse
	if err := a.call(ctx, "list-users", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// UpdateUser applies a partial update to an account.
func (a *AuthAdapter) UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (*account.Account, error) {
	req := UpdateUserRequest{UserID: userID, UpdateUserInput: input}
	var resp GetUserResponse
	if err := a.call(ctx, "update-user", &req, &resp); err != nil {
		return nil, err
	}

	return &account.Account{
		ID:        resp.ID,
		Email:     resp.Email,
		Role:      resp.Role,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// DeleteUser removes an account.
func (a *AuthAdapter) DeleteUser(ctx context.Context, userID string) error {
	req := DeleteUserRequest{UserID: userID}
	var resp DeleteUserResponse
	return a.call(ctx, "delete-user", &req, &resp)
}

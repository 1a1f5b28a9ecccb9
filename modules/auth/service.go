package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/example/movie-catalog/domain/account"
	"github.com/google/uuid"
)

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Tokens  *account.TokenPair
	Account account.Profile
}

// AuthService handles authentication business logic.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates a new account with the User role.
func (s *AuthService) Register(ctx context.Context, email, password string) (*account.Account, error) {
	return s.createAccount(ctx, email, password, account.RoleUser)
}

func (s *AuthService) createAccount(ctx context.Context, email, password string, role account.Role) (*account.Account, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	acc := &account.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return acc, nil
}

// EnsureAdmin makes sure an Admin account exists for email. A missing account
// is created; an existing one is promoted without touching its password.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (*account.Account, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	acc, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return s.createAccount(ctx, email, password, account.RoleAdmin)
	case err != nil:
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if acc.Role == account.RoleAdmin {
		return acc, nil
	}
	if err := s.repo.UpdateRole(ctx, acc.ID, account.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}
	acc.Role = account.RoleAdmin
	return acc, nil
}

// Login authenticates an account and returns a token pair with its profile.
// Unknown emails and wrong passwords yield the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		s.hasher.VerifyDummy(password)
		log.Printf("[auth] Login rejected: malformed email")
		return nil, ErrInvalidCredentials
	}

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same bcrypt work as a wrong password.
			s.hasher.VerifyDummy(password)
			log.Printf("[auth] Login rejected: account not found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, acc.PasswordHash) {
		log.Printf("[auth] Login rejected: bad credentials for user %s", acc.ID)
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokenPair(acc.ID, acc.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Tokens:  tokens,
		Account: acc.Profile(),
	}, nil
}

// RefreshTokens exchanges a valid refresh token for a new token pair bound to
// the same subject. The presented token is not invalidated.
func (s *AuthService) RefreshTokens(_ context.Context, refreshToken string) (*account.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		log.Printf("[auth] Refresh rejected: %v", err)
		return nil, err
	}

	return s.generateTokenPair(claims.UserID, claims.Email)
}

// ValidateToken validates an access token and returns claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*account.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return toDomainClaims(claims), nil
}

// GetUser retrieves an account by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*account.Account, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateUser applies the non-nil fields of input to the account with the
// given ID. A new password is hashed before it is stored.
func (s *AuthService) UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (*account.Account, error) {
	acc, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if input.Email != nil {
		email, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		if email != acc.Email {
			exists, err := s.repo.EmailExists(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email existence: %w", err)
			}
			if exists {
				return nil, ErrUserExists
			}
			fields["email"] = email
			acc.Email = email
		}
	}

	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fields["password_hash"] = hash
		acc.PasswordHash = hash
	}

	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, ErrInvalidRole
		}
		fields["role"] = *input.Role
		acc.Role = *input.Role
	}

	if len(fields) == 0 {
		return acc, nil
	}

	acc.UpdatedAt = time.Now()
	fields["updated_at"] = acc.UpdatedAt
	if err := s.repo.Update(ctx, acc.ID, fields); err != nil {
		if errors.Is(err, ErrUserExists) || errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return acc, nil
}

// DeleteUser removes an account. Tokens already issued to it stay valid
// until expiry, but role-gated routes reject it immediately.
func (s *AuthService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ListUsers lists accounts, optionally filtered by role.
func (s *AuthService) ListUsers(ctx context.Context, role account.Role) ([]*account.Account, error) {
	accounts, err := s.repo.FindByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return accounts, nil
}

// generateTokenPair generates both access and refresh tokens.
func (s *AuthService) generateTokenPair(userID, email string) (*account.TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &account.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwt.AccessTokenDuration(),
		TokenType:    "Bearer",
	}, nil
}

func toDomainClaims(claims *JWTClaims) *account.Claims {
	out := &account.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out
}

// normalizeEmail accepts a bare address only (no display name or angle
// brackets) and returns it lower-cased.
func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

// validatePassword checks password length before hashing.
func validatePassword(password string) error {
	// bcrypt has a 72-byte limit
	if len(password) < 8 {
		return ErrWeakPassword
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}

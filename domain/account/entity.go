package account

import (
	"time"
)

// Role is a coarse authorization category attached to an account.
type Role string

const (
	// RoleUser is the default role given to every registered account.
	RoleUser Role = "User"
	// RoleAdmin grants access to administrative operations.
	RoleAdmin Role = "Admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account represents a user account in the system.
type Account struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	Role         Role   `gorm:"not null;type:text;default:User"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the Account entity.
func (Account) TableName() string {
	return "users"
}

// Profile returns the public view of the account, without the password hash.
func (a *Account) Profile() Profile {
	return Profile{
		ID:        a.ID,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

// Profile is the public part of an account.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Claims is the verified identity carried by a token.
// The role is deliberately absent: it is resolved from the account store
// whenever a route requires one.
type Claims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccessPolicy is the set of roles admitted by a route.
// An empty policy admits any authenticated subject.
type AccessPolicy []Role

// Allows reports whether an account with the given role satisfies the policy.
func (p AccessPolicy) Allows(role Role) bool {
	if len(p) == 0 {
		return true
	}
	for _, r := range p {
		if r == role {
			return true
		}
	}
	return false
}

// RequiresRole reports whether the policy restricts access by role.
func (p AccessPolicy) RequiresRole() bool {
	return len(p) > 0
}

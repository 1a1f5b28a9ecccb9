package auth

import (
	"context"
	"errors"

	"github.com/example/movie-catalog/domain/account"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when a user already exists.
	ErrUserExists = errors.New("user with this email already exists")
)

// UserRepository handles account persistence using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *UserRepository) Create(ctx context.Context, acc *account.Account) error {
	result := r.db.WithContext(ctx).Create(acc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return result.Error
	}
	return nil
}

// FindByID finds an account by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*account.Account, error) {
	var acc account.Account
	result := r.db.WithContext(ctx).First(&acc, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &acc, nil
}

// FindByEmail finds an account by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	var acc account.Account
	result := r.db.WithContext(ctx).First(&acc, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &acc, nil
}

// FindByRole lists accounts with the given role, oldest first.
// An empty role lists every account.
func (r *UserRepository) FindByRole(ctx context.Context, role account.Role) ([]*account.Account, error) {
	var accounts []*account.Account
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// EmailExists checks if an account with the given email exists.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&account.Account{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// UpdateRole changes the role of an existing account.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role account.Role) error {
	result := r.db.WithContext(ctx).Model(&account.Account{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Update writes the given columns of an existing account.
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&account.Account{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes an account by ID.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&account.Account{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

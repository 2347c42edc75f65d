package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aerosafe/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// FindByEmail finds an account by email. Emails are unique case-insensitively,
// so the lookup lower-cases both sides.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// ListByRole lists all accounts with the given role.
func (r *accountRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Where("role = ?", role).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

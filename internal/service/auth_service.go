package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aerosafe/internal/auth"
	apperrors "aerosafe/internal/errors"
	"aerosafe/internal/model"
	"aerosafe/internal/repository"
)

const bcryptCost = 10

// AuthResult carries a freshly issued token together with the account it belongs to.
type AuthResult struct {
	Token   string
	Account *model.Account
}

// AuthService handles signup and login for admins and pilots.
type AuthService interface {
	SignUp(ctx context.Context, role model.Role, name, email, uid, password, confirmPassword string) (*AuthResult, error)
	Login(ctx context.Context, email, password string, role model.Role) (*AuthResult, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.Account, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	jwtService  *auth.JWTService
	limiter     auth.AttemptLimiterInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(accountRepo repository.AccountRepository, jwtService *auth.JWTService, limiter auth.AttemptLimiterInterface) AuthService {
	return &authService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		limiter:     limiter,
	}
}

// SignUp creates a new account with a hashed password and issues a token for it.
// The password confirmation is checked before the repository is touched.
func (s *authService) SignUp(ctx context.Context, role model.Role, name, email, uid, password, confirmPassword string) (*AuthResult, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	if password != confirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	email = strings.TrimSpace(email)

	// Email uniqueness is global across roles
	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailAlreadyRegistered
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Name:         name,
		Email:        email,
		Role:         role,
		UID:          uid,
		PasswordHash: string(hashedPassword),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	token, err := s.jwtService.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, Account: account}, nil
}

// Login authenticates an account and issues a fresh token. Unknown email, role
// mismatch and wrong password all surface as ErrInvalidCredentials so responses
// never reveal which part failed.
func (s *authService) Login(ctx context.Context, email, password string, role model.Role) (*AuthResult, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidCredentials
	}

	throttled, err := s.limiter.TooManyFailures(ctx, email)
	if err == nil && throttled {
		return nil, apperrors.ErrTooManyAttempts
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		_ = s.limiter.RecordFailure(ctx, email)
		return nil, apperrors.ErrInvalidCredentials
	}

	if account.Role != role {
		_ = s.limiter.RecordFailure(ctx, email)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		_ = s.limiter.RecordFailure(ctx, email)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	_ = s.limiter.Reset(ctx, email)

	return &AuthResult{Token: token, Account: account}, nil
}

// ListByRole returns all accounts with the given role.
func (s *authService) ListByRole(ctx context.Context, role model.Role) ([]model.Account, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	accounts, err := s.accountRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

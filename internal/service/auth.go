package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-marketplace-api/internal/core/auth"
	"go-marketplace-api/internal/domain"
	"go-marketplace-api/pkg/utils"
)

type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

type AuthResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      UserSummary `json:"user"`
}

type AuthService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwt *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, log: log}
}

// Register creates a user with role User and returns a fresh token.
// The partial unique index on live users.email rows is the authority on
// duplicates; the pre-check only gives a friendlier answer in the common
// case. A soft-deleted user's email is free to register again.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	u := &domain.User{
		ID:             utils.NewID(),
		Name:           name,
		Email:          email,
		PasswordHash:   utils.HashPassword(password),
		Role:           domain.RoleUser,
		IsActive:       true,
		EmailConfirmed: false,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if isDupKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID))
	return s.issue(u)
}

// Login collapses unknown email and wrong password into one error so the
// response never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		s.log.Debug("login failed: unknown email")
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		s.log.Debug("login failed: password mismatch", zap.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}
	return s.issue(u)
}

func (s *AuthService) ConfirmEmail(ctx context.Context, email, token string) error {
	return ErrNotImplemented
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return ErrNotImplemented
}

func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	return ErrNotImplemented
}

func (s *AuthService) issue(u *domain.User) (*AuthResult, error) {
	tok, err := s.jwt.Issue(u.ID, u.Email, u.Role, u.Name)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     tok,
		ExpiresAt: time.Now().Add(s.jwt.TTL),
		User: UserSummary{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Role:     u.Role,
			IsActive: u.IsActive,
		},
	}, nil
}

package service

import (
	"context"

	"go.uber.org/zap"

	"go-marketplace-api/internal/domain"
)

// UserService covers administrative user management: listing, reads and the
// activate/deactivate/soft-delete lifecycle.
type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.users.List(ctx, (page-1)*pageSize, pageSize)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *UserService) Activate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true)
}

func (s *UserService) Deactivate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, false)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.log.Info("user soft-deleted", zap.String("user_id", id))
	return nil
}

func (s *UserService) setActive(ctx context.Context, id string, active bool) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	u.IsActive = active
	return s.users.Update(ctx, u)
}

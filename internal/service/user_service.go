package service

import (
	"context"
	"errors"
	"fmt"

	"crud-api/internal/domain"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// UserService 资料查询；reader 可以是带缓存的实现
type UserService struct {
	repo   domain.UserRepository
	reader domain.UserReader
}

func NewUserService(repo domain.UserRepository, reader domain.UserReader) *UserService {
	if reader == nil {
		reader = repo
	}
	return &UserService{repo: repo, reader: reader}
}

type Viewer struct {
	ID   string
	Role domain.Role
}

// Get 本人或 admin 可查看
func (s *UserService) Get(ctx context.Context, viewer Viewer, id string) (*domain.User, error) {
	if viewer.ID != id && viewer.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	u, err := s.reader.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	us, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return us, total, nil
}

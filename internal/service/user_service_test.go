package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crud-api/internal/domain"
	"crud-api/internal/repo"
	"crud-api/internal/testutil"
	"crud-api/pkg/utils"
)

type stubReader struct {
	err error
	got string
}

func (s *stubReader) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.got = id
	if s.err != nil {
		return nil, s.err
	}
	return &domain.User{ID: id, Email: "cached@x.com", Role: domain.RoleUser}, nil
}

func seedUsers(t *testing.T, r domain.UserRepository, n int) []domain.User {
	t.Helper()
	out := make([]domain.User, 0, n)
	for i := 0; i < n; i++ {
		u := domain.User{ID: utils.NewID(), Email: utils.NewID() + "@x.com", PasswordHash: "h", Role: domain.RoleUser}
		require.NoError(t, r.Create(context.Background(), &u))
		out = append(out, u)
	}
	return out
}

func TestUserService_Get(t *testing.T) {
	r := repo.NewUserRepo(testutil.NewSQLite(t))
	us := seedUsers(t, r, 2)
	s := NewUserService(r, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		viewer Viewer
		id     string
		want   error
	}{
		{"self", Viewer{ID: us[0].ID, Role: domain.RoleUser}, us[0].ID, nil},
		{"other user", Viewer{ID: us[0].ID, Role: domain.RoleUser}, us[1].ID, ErrForbidden},
		{"admin", Viewer{ID: "admin-1", Role: domain.RoleAdmin}, us[1].ID, nil},
		{"admin missing", Viewer{ID: "admin-1", Role: domain.RoleAdmin}, "missing", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := s.Get(ctx, tt.viewer, tt.id)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, u.ID)
		})
	}
}

func TestUserService_GetUsesReader(t *testing.T) {
	rd := &stubReader{}
	s := NewUserService(nil, rd)

	u, err := s.Get(context.Background(), Viewer{ID: "u-1"}, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "cached@x.com", u.Email)
	assert.Equal(t, "u-1", rd.got)

	rd.err = errors.New("redis timeout")
	_, err = s.Get(context.Background(), Viewer{ID: "u-1"}, "u-1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUserService_GetForbiddenSkipsLookup(t *testing.T) {
	rd := &stubReader{}
	s := NewUserService(nil, rd)

	_, err := s.Get(context.Background(), Viewer{ID: "u-1", Role: domain.RoleUser}, "u-2")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, rd.got)
}

func TestUserService_ListClampsPaging(t *testing.T) {
	r := repo.NewUserRepo(testutil.NewSQLite(t))
	seedUsers(t, r, 3)
	s := NewUserService(r, nil)
	ctx := context.Background()

	us, total, err := s.List(ctx, -5, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, us, 3)

	us, _, err = s.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, us, 1)

	us, _, err = s.List(ctx, 0, MaxPageSize+1)
	require.NoError(t, err)
	assert.Len(t, us, 3)
}

type pagingRepo struct {
	domain.UserRepository
	offset, limit int
}

func (p *pagingRepo) List(_ context.Context, offset, limit int) ([]domain.User, int64, error) {
	p.offset, p.limit = offset, limit
	return nil, 0, nil
}

func TestUserService_ListLimitBounds(t *testing.T) {
	tests := []struct {
		name             string
		offset, limit    int
		wantOff, wantLim int
	}{
		{"defaults", -1, 0, 0, DefaultPageSize},
		{"within range", 5, 10, 5, 10},
		{"capped", 0, MaxPageSize + 50, 0, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &pagingRepo{}
			_, _, err := NewUserService(r, nil).List(context.Background(), tt.offset, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOff, r.offset)
			assert.Equal(t, tt.wantLim, r.limit)
		})
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"crud-api/internal/domain"
	"crud-api/pkg/utils"
)

var validate = validator.New()

// dummyHash 邮箱不存在时也比对一次，耗时与密码错误一致
var dummyHash = func() string {
	h, err := utils.HashPassword("not-a-real-password")
	if err != nil {
		panic(err)
	}
	return h
}()

var checkPassword = utils.CheckPassword

// TokenIssuer 由 auth.JWTer 实现
type TokenIssuer interface {
	Issue(uid, role string) (string, error)
}

type RegisterInput struct {
	FirstName *string
	LastName  *string
	Email     string
	Password  string
	Role      domain.Role
}

type AuthService struct {
	users  domain.UserRepository
	tokens TokenIssuer
	log    *zap.Logger
}

func NewAuthService(users domain.UserRepository, tokens TokenIssuer, l *zap.Logger) *AuthService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    l.Named("auth"),
	}
}

// Register 校验 → 哈希 → 入库 → 签发令牌。所有失败都按客户端错误处理。
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if in.Password == "" {
		return nil, "", &ValidationError{Field: "password", Msg: "is required"}
	}
	if !in.Role.Valid() {
		return nil, "", &ValidationError{Field: "role", Msg: "must be one of user, admin"}
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		s.log.Warn("hash password failed", zap.Error(err))
		return nil, "", &ValidationError{Field: "password", Msg: "cannot be hashed"}
	}

	u := &domain.User{
		ID:           utils.NewID(),
		FirstName:    trimOptional(in.FirstName),
		LastName:     trimOptional(in.LastName),
		Email:        email,
		PasswordHash: hashed,
		Role:         in.Role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, "", ErrDuplicateEmail
		}
		s.log.Error("create user failed", zap.String("email", email), zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}

	tok, err := s.tokens.Issue(u.ID, string(u.Role))
	if err != nil {
		s.log.Error("issue token failed", zap.String("uid", u.ID), zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}
	return u, tok, nil
}

// Login 邮箱不存在与密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		checkPassword(password, dummyHash)
		return nil, "", ErrInvalidCredentials
	case err != nil:
		s.log.Error("find user failed", zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !checkPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.ID, string(u.Role))
	if err != nil {
		s.log.Error("issue token failed", zap.String("uid", u.ID), zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return u, tok, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", &ValidationError{Field: "email", Msg: "is required"}
	}
	if err := validate.Var(email, "email,max=255"); err != nil {
		return "", &ValidationError{Field: "email", Msg: "must be a valid email address"}
	}
	return email, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

package handler

import (
	"time"

	"crud-api/internal/domain"
)

// UserView 对外的用户表示，不含密码哈希
type UserView struct {
	ID        string    `json:"id"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type AuthOut struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

type UserOut struct {
	User UserView `json:"user"`
}

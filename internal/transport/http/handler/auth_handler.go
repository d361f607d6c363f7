package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crud-api/internal/domain"
	"crud-api/internal/service"
	httpez "crud-api/internal/transport/http/ez"
	resp "crud-api/internal/transport/http/response"
)

type AuthHandler struct{ svc *service.AuthService }

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Priority() int { return 10 }

type registerIn struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=64"`
	LastName  *string `json:"lastName"  binding:"omitempty,max=64"`
	Email     string  `json:"email"     binding:"required,email,max=255"`
	Password  string  `json:"password"  binding:"required,max=72"`
	Role      string  `json:"role"      binding:"required,oneof=user admin"`
}

// loginIn 不做字段校验：缺字段与凭证错误同样返回 401
type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Mount POST /auth/register, POST /auth/login
func (h *AuthHandler) Mount(api *gin.RouterGroup) {
	ez := httpez.New(api.Group("/auth"))

	httpez.RegisterAction(ez, httpez.Action[registerIn, AuthOut]{
		Method:  http.MethodPost,
		Path:    "/register",
		Binder:  httpez.BindJSON,
		Status:  http.StatusCreated,
		Handler: h.register,
	})
	httpez.RegisterAction(ez, httpez.Action[loginIn, AuthOut]{
		Method:  http.MethodPost,
		Path:    "/login",
		Binder:  httpez.BindJSON,
		Handler: h.login,
	})
}

func (h *AuthHandler) register(c *gin.Context, in *registerIn) (AuthOut, error) {
	u, tok, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		Role:      domain.Role(in.Role),
	})
	if err != nil {
		// 注册失败一律按客户端错误
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			return AuthOut{}, httpez.BadRequest(ve.Error())
		case errors.Is(err, service.ErrDuplicateEmail):
			return AuthOut{}, httpez.BadRequest("Email already in use")
		default:
			return AuthOut{}, &httpez.HTTPError{Status: http.StatusBadRequest, Msg: "Registration failed", Err: err}
		}
	}
	return AuthOut{User: NewUserView(u), Token: tok}, nil
}

func (h *AuthHandler) login(c *gin.Context, in *loginIn) (AuthOut, error) {
	u, tok, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return AuthOut{}, httpez.Unauthorized(resp.MsgInvalidCredentials)
		}
		return AuthOut{}, httpez.Internal(err)
	}
	return AuthOut{User: NewUserView(u), Token: tok}, nil
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crud-api/internal/core/auth"
	"crud-api/internal/domain"
	"crud-api/internal/service"
	httpez "crud-api/internal/transport/http/ez"
	mdw "crud-api/internal/transport/http/middleware"
	resp "crud-api/internal/transport/http/response"
)

// UserHandler /users 下全部需要登录；guard 由路由层注入
type UserHandler struct {
	svc   *service.UserService
	guard gin.HandlerFunc
}

func NewUserHandler(svc *service.UserService, guard gin.HandlerFunc) *UserHandler {
	return &UserHandler{svc: svc, guard: guard}
}

func (h *UserHandler) Priority() int { return 20 }

type listQ struct {
	Offset int `form:"offset,default=0" binding:"min=0"`
	Limit  int `form:"limit,default=20" binding:"min=0,max=100"`
}

type listOut struct {
	Total int64      `json:"total"`
	Items []UserView `json:"items"`
}

func (h *UserHandler) Mount(api *gin.RouterGroup) {
	users := api.Group("/users", h.guard)
	ez := httpez.New(users)

	httpez.RegisterAction(ez, httpez.Action[struct{}, UserOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (UserOut, error) {
			id, _ := auth.IdentityFrom(c.Request.Context())
			return h.get(c, id.UID)
		},
	})
	httpez.RegisterAction(ez, httpez.Action[struct{}, UserOut]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (UserOut, error) {
			return h.get(c, c.Param("id"))
		},
	})

	// 管理端列表，仅 admin
	admin := httpez.New(users.Group("", mdw.RequireRole(string(domain.RoleAdmin))))
	httpez.RegisterAction(admin, httpez.Action[listQ, listOut]{
		Method:  http.MethodGet,
		Path:    "",
		Binder:  httpez.BindQuery,
		Handler: h.list,
	})
}

func (h *UserHandler) get(c *gin.Context, id string) (UserOut, error) {
	ident, ok := auth.IdentityFrom(c.Request.Context())
	if !ok {
		return UserOut{}, httpez.Unauthorized(resp.MsgUnauthorized)
	}
	viewer := service.Viewer{ID: ident.UID, Role: domain.Role(ident.Role)}
	u, err := h.svc.Get(c.Request.Context(), viewer, id)
	switch {
	case errors.Is(err, service.ErrForbidden):
		return UserOut{}, httpez.Forbidden("")
	case errors.Is(err, service.ErrNotFound):
		return UserOut{}, httpez.NotFound("User not found")
	case err != nil:
		return UserOut{}, httpez.Internal(err)
	}
	return UserOut{User: NewUserView(u)}, nil
}

func (h *UserHandler) list(c *gin.Context, in *listQ) (listOut, error) {
	us, total, err := h.svc.List(c.Request.Context(), in.Offset, in.Limit)
	if err != nil {
		return listOut{}, httpez.Internal(err)
	}
	out := listOut{Total: total, Items: make([]UserView, 0, len(us))}
	for i := range us {
		out.Items = append(out.Items, NewUserView(&us[i]))
	}
	return out, nil
}

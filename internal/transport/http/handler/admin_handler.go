package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewellery-backoffice/internal/domain"
	"jewellery-backoffice/internal/service"
	"jewellery-backoffice/internal/transport/http/ez"
	resp "jewellery-backoffice/internal/transport/http/response"
)

// AdminHandler 管理端：用户列表 / 封禁
type AdminHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewAdminHandler(users *service.UserService, l *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, log: l}
}

func (h *AdminHandler) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin, h.log)

	type listQ struct {
		ez.PageQuery
		Q string `form:"q"` // 按 email/name 模糊搜
	}
	ez.RegisterAction(e, ez.Action[listQ, resp.Page[domain.User]]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Roles:  []string{string(domain.RoleAdmin)},
		Handler: func(c *gin.Context, in *listQ) (resp.Page[domain.User], error) {
			offset, limit := in.Normalize()
			us, total, err := h.users.List(c.Request.Context(), in.Q, offset, limit)
			if err != nil {
				return resp.Page[domain.User]{}, err
			}
			return resp.Page[domain.User]{List: us, Total: total, Page: in.Page, Size: in.Size}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: ez.BindNone,
		Auth:   true,
		Roles:  []string{string(domain.RoleAdmin)},
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := h.users.Ban(c.Request.Context(), id); err != nil {
				return nil, err
			}
			h.log.Info("user banned", zap.String("id", id), zap.String("by", c.GetString(ez.KeyUserID)))
			return gin.H{"id": id}, nil
		},
	})
}

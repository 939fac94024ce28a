package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewellery-backoffice/internal/domain"
	"jewellery-backoffice/internal/service"
	"jewellery-backoffice/internal/transport/http/ez"
	mdw "jewellery-backoffice/internal/transport/http/middleware"
)

type registerReq struct {
	FirstName string `json:"firstName" binding:"required,max=64"`
	LastName  string `json:"lastName"  binding:"required,max=64"`
	Email     string `json:"email"     binding:"required,email,max=191"`
	Password  string `json:"password"  binding:"required,min=6,max=72"`
	Role      string `json:"role"      binding:"required,oneof=admin manager staff"`
}

type loginReq struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler 公共 /auth/* + 登录后 /me
type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, l *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: l}
}

func (h *AuthHandler) MountPublic(g *gin.RouterGroup) {
	grp := g.Group("/auth")
	grp.Use(mdw.RateLimitPerIP(5, 20))
	e := ez.New(grp, h.log)

	ez.RegisterAction(e, ez.Action[registerReq, *domain.User]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *registerReq) (*domain.User, error) {
			return h.svc.Register(c.Request.Context(), service.RegisterInput{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
				Password:  in.Password,
				Role:      domain.Role(in.Role),
			})
		},
	})

	ez.RegisterAction(e, ez.Action[loginReq, *service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginReq) (*service.LoginResult, error) {
			res, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return nil, err
			}
			h.log.Info("user login", zap.String("uid", res.User.ID), zap.String("role", string(res.User.Role)))
			return res, nil
		},
	})
}

func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)
	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.svc.Me(c.Request.Context(), c.GetString(ez.KeyUserID))
		},
	})
}

package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewellery-backoffice/internal/core/auth"
	"jewellery-backoffice/internal/core/server"
	"jewellery-backoffice/internal/domain"
)

func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, reg *Registry, o Options) *gin.Engine {
	r := server.NewRouter(l, o.AllowOrigins)
	r.Use(common(l)...)

	r.GET("/health", health)

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(authed(l, jwter, string(domain.RoleAdmin), o)...)
	reg.MountAdmin(admin)

	return r
}

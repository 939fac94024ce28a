package router

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"jewellery-backoffice/internal/core/auth"
	"jewellery-backoffice/internal/core/server"
	mdw "jewellery-backoffice/internal/transport/http/middleware"
)

// Options engine 级别的可选项
type Options struct {
	AllowOrigins []string
	StaticDir    string // 旧版 dashboard 页面，空则不挂
	// 非 nil 时鉴权分组每个请求都校验账号仍可用
	ActiveCheck mdw.ActiveFunc
}

// authed Bearer 校验 + 可选的账号状态校验
func authed(l *zap.Logger, jwter *auth.JWTer, role string, o Options) []gin.HandlerFunc {
	hs := []gin.HandlerFunc{mdw.AuthJWT(jwter, role)}
	if o.ActiveCheck != nil {
		hs = append(hs, mdw.RequireActive(o.ActiveCheck, l))
	}
	return hs
}

// 通用中间件链（api / admin 共用）
func common(l *zap.Logger) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300, 2*time.Second),
		mdw.MaxBodyBytes(16 << 20),
		mdw.Timeout(10 * time.Second),
		mdw.SimpleRecovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	}
}

func health(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) }

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, reg *Registry, o Options) *gin.Engine {
	r := server.NewRouter(l, o.AllowOrigins)
	r.Use(common(l)...)

	r.GET("/health", health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 公共：注册 / 登录
	reg.MountPublic(api)

	// 鉴权分组（⚠️ 业务接口都挂这里，才能拿到 userId）
	authUser := api.Group("")
	authUser.Use(authed(l, jwter, "", o)...)
	reg.MountAPI(authUser)

	if o.StaticDir != "" {
		mountStatic(r, o.StaticDir)
	}
	return r
}

// mountStatic 旧版页面：/ 登录，/register 注册，/dashboard 面板
func mountStatic(r *gin.Engine, dir string) {
	r.StaticFile("/", filepath.Join(dir, "index.html"))
	r.StaticFile("/register", filepath.Join(dir, "register.html"))
	r.StaticFile("/dashboard", filepath.Join(dir, "dashboard.html"))
	r.Static("/assets", dir)
}

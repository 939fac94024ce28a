package main

import (
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jewellery-backoffice/internal/core/auth"
	"jewellery-backoffice/internal/core/config"
	"jewellery-backoffice/internal/core/database"
	"jewellery-backoffice/internal/core/logger"
	"jewellery-backoffice/internal/core/server"
	"jewellery-backoffice/internal/repo"
	"jewellery-backoffice/internal/service"
	"jewellery-backoffice/internal/transport/http/handler"
	"jewellery-backoffice/internal/transport/http/router"
)

// 后台进程：只挂用户管理，需 admin 角色；表由 api 进程迁移
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))

	log, cleanup := logger.New(logger.Options{
		App:   cfg.App.Name,
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
	})
	defer cleanup()
	log = log.Named("admin")

	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)
	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                log,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	users := service.NewUserService(repo.NewUserRepo(db))
	reg := router.NewRegistry(handler.NewAdminHandler(users, log))
	r := router.NewAdminEngine(log, jwter, reg, router.Options{
		AllowOrigins: cfg.CORS.AllowOrigins,
		ActiveCheck:  users.Active,
	})

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)
	if el, err := logger.ToStdLogger(log, zapcore.WarnLevel); err == nil {
		srv.ErrorLog = el
	}

	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("admin_v1", server.BaseURL(cfg.App.Admin.Host, cfg.App.Admin.Port)+"/admin/v1"),
	)
	server.Serve(srv, log, 10*time.Second)
	log.Info("admin api stopped")
}

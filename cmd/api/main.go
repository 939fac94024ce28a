package main

import (
	"context"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"jewellery-backoffice/internal/core/auth"
	"jewellery-backoffice/internal/core/cache"
	"jewellery-backoffice/internal/core/config"
	"jewellery-backoffice/internal/core/database"
	"jewellery-backoffice/internal/core/logger"
	"jewellery-backoffice/internal/core/server"
	"jewellery-backoffice/internal/jobs"
	"jewellery-backoffice/internal/repo"
	"jewellery-backoffice/internal/service"
	"jewellery-backoffice/internal/transport/http/handler"
	"jewellery-backoffice/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 标准库 log 与 gin 输出统一进 zap
	restore := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer restore()
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)
	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 统计缓存（未配置 redis.addr 时只做 singleflight）
	rc := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rc.Prefix = cfg.App.Name + ":"
	defer rc.Close()
	if rc.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unreachable, stats served uncached", zap.Error(err))
		}
		cancel()
	}

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// 依赖
	store := repo.NewStore(db)
	reports := service.NewReportService(store, rc, time.Duration(cfg.Cache.StatsTTLSec)*time.Second, log)
	catalog := service.NewCatalogService(store, reports, cfg.Inventory.LowStockThreshold)
	customers := service.NewCustomerService(store, reports)
	orders := service.NewOrderService(store, reports)
	authSvc := service.NewAuthService(store.Users(), jwter)
	users := service.NewUserService(store.Users())

	reg := router.NewRegistry(
		handler.NewAuthHandler(authSvc, log),
		handler.NewCatalogHandler(catalog, log),
		handler.NewCustomerHandler(customers, log),
		handler.NewOrderHandler(orders, log),
		handler.NewReportHandler(reports, log),
	)

	// 路由（用户端）
	r := router.NewAPIEngine(log, jwter, reg, router.Options{
		AllowOrigins: cfg.CORS.AllowOrigins,
		StaticDir:    cfg.Web.StaticDir,
		ActiveCheck:  users.Active,
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)
	if el, err := logger.ToStdLogger(log, zapcore.WarnLevel); err == nil {
		srv.ErrorLog = el
	}

	// 低库存巡检
	watcher := jobs.NewLowStockWatcher(catalog, log)
	if cfg.Inventory.WatchCron != "" {
		if err := watcher.Start(cfg.Inventory.WatchCron); err != nil {
			log.Fatal("low-stock watcher", zap.Error(err))
		}
	}

	base := server.BaseURL(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	log.Info("back office api starting",
		zap.String("addr", addr),
		zap.String("health", base+"/health"),
		zap.String("api_v1", base+"/api/v1"),
	)
	server.Serve(srv, log, 10*time.Second, watcher.Stop)
	log.Info("back office api stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	o := logger.Options{App: cfg.App.Name, Level: cfg.Log.Level, JSON: cfg.Log.JSON}
	if f := cfg.Log.File; f.Enable {
		o.Rotate = logger.Rotate{
			Filename:   f.Filename,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAgeDays: f.MaxAgeDays,
			Compress:   f.Compress,
		}
	}
	return logger.New(o)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

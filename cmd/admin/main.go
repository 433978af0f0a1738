package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-dashboard-admin/internal/core/auth"
	"go-dashboard-admin/internal/core/cache"
	"go-dashboard-admin/internal/core/config"
	"go-dashboard-admin/internal/core/database"
	"go-dashboard-admin/internal/core/logger"
	"go-dashboard-admin/internal/core/server"
	"go-dashboard-admin/internal/domain"
	"go-dashboard-admin/internal/repo"
	"go-dashboard-admin/internal/service"
	"go-dashboard-admin/internal/transport/http/handler"
	"go-dashboard-admin/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON, logger.Rotate{
		Enable:     cfg.Log.Rotate.Enable,
		Filename:   cfg.Log.Rotate.Filename,
		MaxSizeMB:  cfg.Log.Rotate.MaxSizeMB,
		MaxBackups: cfg.Log.Rotate.MaxBackups,
		MaxAgeDays: cfg.Log.Rotate.MaxAgeDays,
		Compress:   cfg.Log.Rotate.Compress,
	})
	defer cleanup()

	// DB 连接（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.Account{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// redis 可选；配置了就在持久层外面套读穿缓存，不配就直连 DB
	var accountRepo domain.AccountRepository = repo.NewAccountRepo(db)
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		accountRepo = repo.NewCachedAccountRepo(accountRepo, c, log)
		log.Info("redis detail cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	accountSvc := service.NewAccountService(accountRepo, log)
	accountH := handler.NewAccountHandler(accountSvc)

	ensureBootstrapAdmin(cfg, accountRepo, accountSvc, log)

	r := router.NewAdminEngine(log, accountH, jwter)

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.Admin.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.Admin.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.Admin.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()
	log.Info("admin api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("admin api stopped gracefully")
}

// ensureBootstrapAdmin 首启播种管理员账号；已存在则跳过
func ensureBootstrapAdmin(cfg *config.Config, r domain.AccountRepository, svc *service.AccountService, l *zap.Logger) {
	if cfg.Bootstrap.UserName == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := r.FindByUserName(ctx, cfg.Bootstrap.UserName)
	if err != nil {
		l.Warn("bootstrap admin lookup failed", zap.Error(err))
		return
	}
	if existing != nil {
		return
	}
	if _, err := svc.CreateAccount(ctx, domain.AccountInput{
		UserName: cfg.Bootstrap.UserName,
		Password: cfg.Bootstrap.Password,
		Role:     "admin",
		Enabled:  true,
	}); err != nil {
		l.Warn("bootstrap admin create failed", zap.Error(err))
		return
	}
	l.Info("bootstrap admin created", zap.String("userName", cfg.Bootstrap.UserName))
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
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

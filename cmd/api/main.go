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

	"jobboard-api/internal/core/auth"
	"jobboard-api/internal/core/cache"
	"jobboard-api/internal/core/config"
	"jobboard-api/internal/core/database"
	"jobboard-api/internal/core/logger"
	"jobboard-api/internal/core/server"
	"jobboard-api/internal/core/storage"
	"jobboard-api/internal/domain"
	"jobboard-api/internal/repo"
	"jobboard-api/internal/service"
	"jobboard-api/internal/transport/http/handler"
	"jobboard-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Job{}, &domain.Application{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// redis 缓存（未配置则跳过，读路径直连 DB）
	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	store := mustOpenStorage(cfg, log)

	// 依赖装配
	userRepo := repo.NewUserRepo(db)
	jobRepo := repo.NewJobRepo(db)
	appRepo := repo.NewApplicationRepo(db)

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(service.NewAuthService(userRepo, jwter)),
		Job:         handler.NewJobHandler(service.NewJobService(jobRepo, c)),
		Application: handler.NewApplicationHandler(service.NewApplicationService(appRepo, jobRepo, store)),
	}

	r := router.NewAPIEngine(log, jwter, h)
	if ls, ok := store.(*storage.LocalStore); ok {
		// 本地存储时顺带把简历目录挂成静态资源
		r.Static("/uploads", ls.Dir)
	}

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
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

func mustOpenStorage(cfg *config.Config, l *zap.Logger) storage.ResumeStore {
	switch cfg.Storage.Driver {
	case "cloudinary":
		s, err := storage.NewCloudinary(cfg.Storage.CloudinaryURL)
		if err != nil {
			l.Fatal("cloudinary init", zap.Error(err))
		}
		return s
	case "local", "":
		dir := cfg.Storage.LocalDir
		if dir == "" {
			dir = "./uploads"
		}
		base := cfg.Storage.BaseURL
		if base == "" {
			base = "/uploads"
		}
		s, err := storage.NewLocal(dir, base)
		if err != nil {
			l.Fatal("local storage init", zap.Error(err))
		}
		return s
	default:
		l.Fatal("unknown storage driver", zap.String("driver", cfg.Storage.Driver))
		return nil
	}
}

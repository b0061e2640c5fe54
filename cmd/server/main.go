package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/api"
	"github.com/yourname/studytracker/internal/auth"
	"github.com/yourname/studytracker/internal/config"
	"github.com/yourname/studytracker/internal/response"
	"github.com/yourname/studytracker/internal/scheduler"
	"github.com/yourname/studytracker/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.DBType == "file" {
		for _, f := range []string{cfg.FileLogs, cfg.FileMilestones, cfg.FileSettings} {
			if dir := filepath.Dir(f); dir != "." {
				_ = os.MkdirAll(dir, 0o755)
			}
		}
	}

	store, err := storage.NewStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	var provider auth.Provider
	if cfg.AuthMode == "local" {
		provider = auth.NewLocalProvider(cfg.AuthToken, logger)
	} else {
		provider = auth.NewRemoteProvider(cfg.AuthServiceURL, logger)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := api.NewApplication(logger, store)
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf("panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.InternalError())
	}))
	api.RegisterRoutes(r, app, provider)

	var sched *scheduler.ReminderScheduler
	if cfg.ReminderCron {
		sched = scheduler.NewReminderScheduler(store, logger)
		if err := sched.Start(); err != nil {
			logger.Fatalf("failed to start reminder scheduler: %v", err)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Infof("server running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if sched != nil {
		sched.Stop()
	}
	if err := store.Close(); err != nil {
		logger.Errorf("storage close: %v", err)
	}
}

func newLogger(cfg *config.Config) (internal.Logger, error) {
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return internal.NewZapLogger(l.Sugar()), nil
}

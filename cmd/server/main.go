package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sourceboard/internal/auth"
	"sourceboard/internal/config"
	apphttp "sourceboard/internal/http"
	"sourceboard/internal/repository/sqlite"
	"sourceboard/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	sourceRepo := sqlite.NewSourceRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := sourceRepo.Init(ctx); err != nil {
		logger.Fatalf("init source repository: %v", err)
	}
	if err := sessionRepo.Init(ctx); err != nil {
		logger.Fatalf("init session repository: %v", err)
	}

	if removed, err := sessionRepo.DeleteExpired(ctx); err != nil {
		logger.Warnf("sweep expired sessions: %v", err)
	} else if removed > 0 {
		logger.Infof("removed %d expired sessions", removed)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	userService := service.NewUserService(userRepo, cfg.Auth.RegisterSecret)
	sourceService := service.NewSourceService(sourceRepo)
	sessionService := service.NewSessionService(
		sessionRepo,
		userRepo,
		tokens,
		time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute,
		time.Duration(cfg.Auth.RememberTTLHours)*time.Hour,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		sourceService,
		userService,
		sessionService,
		logger,
		cfg.Server.SecureCookie,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

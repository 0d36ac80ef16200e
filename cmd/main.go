package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpctx "github.com/veriflow/kyc-server/internal/api/http/context"
	"github.com/veriflow/kyc-server/internal/api/http/cookie"
	"github.com/veriflow/kyc-server/internal/api/http/router"
	"github.com/veriflow/kyc-server/internal/config"
	"github.com/veriflow/kyc-server/internal/logger"
	"github.com/veriflow/kyc-server/internal/model"
	"github.com/veriflow/kyc-server/internal/notification"
	"github.com/veriflow/kyc-server/internal/repository/postgres"
	"github.com/veriflow/kyc-server/internal/server"
	"github.com/veriflow/kyc-server/internal/service"
	"github.com/veriflow/kyc-server/internal/session"
	"github.com/veriflow/kyc-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	if err := postgres.SeedDemoAccounts(ctx, userRepo); err != nil {
		logger.Fatal("failed to seed demo accounts", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	notificationQueue := notification.NewQueue()

	tokenService := service.NewTokens(tokenManager, refreshTokenRepo, userRepo, logger)
	authService := service.NewAuth(userRepo, tokenService, logger)
	verificationService := service.NewVerification(applicationRepo, userRepo, notificationQueue, logger)
	sessionStore := session.NewStore(authService, tokenManager, logger)

	cookieProvider := cookie.NewProvider(cfg.Session.Secret, cfg.Session.CookieName)
	ctxMgr := httpctx.NewManager()

	r := router.New(sessionStore, tokenService, verificationService, notificationQueue, cookieProvider, ctxMgr, logger)
	httpServer := server.NewHTTPServer(r.Handler(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

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

	httpctx "github.com/dtroode/learnhub-auth/internal/api/http/context"
	"github.com/dtroode/learnhub-auth/internal/api/http/router"
	httpServer "github.com/dtroode/learnhub-auth/internal/api/http/server"
	"github.com/dtroode/learnhub-auth/internal/config"
	"github.com/dtroode/learnhub-auth/internal/hasher"
	"github.com/dtroode/learnhub-auth/internal/identity/oidc"
	"github.com/dtroode/learnhub-auth/internal/logger"
	"github.com/dtroode/learnhub-auth/internal/metrics"
	"github.com/dtroode/learnhub-auth/internal/model"
	"github.com/dtroode/learnhub-auth/internal/repository/postgres"
	"github.com/dtroode/learnhub-auth/internal/server"
	"github.com/dtroode/learnhub-auth/internal/service"
	"github.com/dtroode/learnhub-auth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// A missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWT.UsesDevSecret() {
		logger.Warn("JWT_SECRET is not set, tokens are signed with the development secret")
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	authTokenRepo := postgres.NewAuthTokenRepository(db)

	signer := token.NewJWT(cfg.JWT.Secret, cfg.JWT.KeyID, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	passwordHasher := hasher.NewBcrypt(cfg.Hasher.Cost, cfg.Hasher.MaxConcurrent)
	verifier := oidc.New(ctx, cfg.Federation.Issuer, cfg.Federation.JWKSURL, cfg.Federation.Timeout, logger)
	if cfg.Federation.Audience == "" {
		logger.Warn("FEDERATION_AUDIENCE is empty, federated login will reject every assertion")
	}

	ctxMgr := httpctx.NewManager()
	ledger := service.NewTokenLedger(signer, authTokenRepo, logger)
	authService, err := service.NewAuth(userRepo, passwordHasher, ledger, verifier, ctxMgr, cfg.Federation.Audience, logger)
	if err != nil {
		logger.Fatal("failed to initialize auth service", "error", err)
	}

	r := router.New(authService, ledger, db, ctxMgr, metrics.New(), logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)

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
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
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

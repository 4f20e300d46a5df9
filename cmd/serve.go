package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	grpcrouter "github.com/dtroode/aboh-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/aboh-server/internal/api/grpc/server"
	httpctx "github.com/dtroode/aboh-server/internal/api/http/context"
	httprouter "github.com/dtroode/aboh-server/internal/api/http/router"
	httpserver "github.com/dtroode/aboh-server/internal/api/http/server"
	"github.com/dtroode/aboh-server/internal/config"
	"github.com/dtroode/aboh-server/internal/logger"
	"github.com/dtroode/aboh-server/internal/metrics"
	"github.com/dtroode/aboh-server/internal/model"
	"github.com/dtroode/aboh-server/internal/password"
	"github.com/dtroode/aboh-server/internal/repository/postgres"
	"github.com/dtroode/aboh-server/internal/server"
	"github.com/dtroode/aboh-server/internal/service"
	"github.com/dtroode/aboh-server/internal/token"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.AutoMigrate)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer db.Close()

	m := metrics.New()

	userRepo := postgres.NewUserRepository(db)
	workSessionRepo := postgres.NewWorkSessionRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)
	hasher := password.NewBcrypt(cfg.Password.Cost)

	authService := service.NewAuth(userRepo, hasher, tokenManager, cfg.JWT.AccessTTL, m, logger)
	workSessionService := service.NewWorkSession(workSessionRepo, m, logger)

	httpRouter := httprouter.New(authService, workSessionService, db, m, httpctx.NewManager(), logger)
	httpSrv := httpserver.NewHTTPServer(httpRouter.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadHeaderTimeout)

	grpcRouter := grpcrouter.New(logger)
	grpcSrv := grpcserver.NewGRPCServer(grpcRouter.Register(), grpcRouter.Health(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	sl := server.NewSecurityLayer(cfg.HTTP)
	servers := []model.Server{httpSrv, grpcSrv}

	// a server that fails to start cancels the whole process
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			serverLogger := logger.With("address", s.Address())
			serverLogger.Info("Starting server")
			if err := s.Start(sl); err != nil {
				serverLogger.Error("failed to start server", "error", err)
				cancel()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")

	return nil
}

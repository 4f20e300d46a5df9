package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/aboh-server/internal/api/grpc/middleware"
	"github.com/dtroode/aboh-server/internal/logger"
)

// Router builds the operational gRPC server.
type Router struct {
	health *health.Server
	logger *logger.Logger
}

// New creates new gRPC Router instance. The health server starts NOT_SERVING
// until the gRPC server begins accepting connections.
func New(logger *logger.Logger) *Router {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	return &Router{health: hs, logger: logger}
}

// Health returns the health server registered by Register.
func (r *Router) Health() *health.Server {
	return r.health
}

// Register creates the gRPC server with logging and recovery interceptors and
// registers the health and reflection services.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(middleware.RecoveryHandler(r.logger))

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			logging.HandleGRPCStream,
			recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}

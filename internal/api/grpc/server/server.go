package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/aboh-server/internal/model"
)

// GRPCServer wraps a gRPC server with address and lifecycle methods and keeps
// its health status in sync with the lifecycle.
type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	addr   string
}

// NewGRPCServer creates a GRPCServer with given server and address.
func NewGRPCServer(
	server *grpc.Server,
	health *health.Server,
	addr string,
) *GRPCServer {
	return &GRPCServer{server: server, health: health, addr: addr}
}

// Start starts serving on the configured address using the provided security layer.
func (s *GRPCServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return s.server.Serve(listener)
}

// Stop marks the server NOT_SERVING and stops it gracefully. Open streams are
// cut when ctx expires.
func (s *GRPCServer) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		<-done
		return fmt.Errorf("grpc server forced to stop: %w", ctx.Err())
	}
}

// Address returns the configured listen address.
func (s *GRPCServer) Address() string {
	return s.addr
}

package middleware

import (
	"context"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/aboh-server/internal/logger"
)

// RecoveryHandler logs a recovered panic and converts it to codes.Internal.
func RecoveryHandler(logger *logger.Logger) recovery.RecoveryHandlerFuncContext {
	return func(_ context.Context, p any) error {
		logger.Error("gRPC handler panicked",
			"panic", p,
			"stack", string(debug.Stack()))
		return status.Error(codes.Internal, "internal server error")
	}
}

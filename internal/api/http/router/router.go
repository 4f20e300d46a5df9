package router

import (
	"net/http"

	"github.com/dtroode/aboh-server/internal/api/http/handler"
	"github.com/dtroode/aboh-server/internal/api/http/middleware"
	"github.com/dtroode/aboh-server/internal/logger"
	"github.com/dtroode/aboh-server/internal/metrics"
	"github.com/dtroode/aboh-server/internal/model"
	"github.com/dtroode/aboh-server/internal/service"
)

// Router wires the HTTP handlers and middleware of the public API.
type Router struct {
	authService        *service.Auth
	workSessionService *service.WorkSession
	pinger             handler.Pinger
	metrics            *metrics.Metrics
	contextManager     model.ContextManager
	logger             *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService *service.Auth,
	workSessionService *service.WorkSession,
	pinger handler.Pinger,
	metrics *metrics.Metrics,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:        authService,
		workSessionService: workSessionService,
		pinger:             pinger,
		metrics:            metrics,
		contextManager:     contextManager,
		logger:             logger,
	}
}

// Register builds the request multiplexer. Requests pass through metrics,
// logging and panic recovery before reaching a route.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)

	r.registerUserRoutes(mux, authenticate)
	r.registerWorkSessionRoutes(mux, authenticate)
	r.registerOperationalRoutes(mux)

	var h http.Handler = mux
	h = middleware.NewRecovery(r.logger).Handle(h)
	h = middleware.NewLogging(r.logger).Handle(h)
	h = middleware.NewMetrics(r.metrics).Handle(h)

	return h
}

func (r *Router) registerUserRoutes(mux *http.ServeMux, authenticate *middleware.Authenticate) {
	users := handler.NewUsers(r.authService, r.contextManager, r.logger)

	mux.HandleFunc("POST /users/register", users.Register)
	mux.HandleFunc("POST /users/token", users.Token)
	mux.Handle("GET /users/me", authenticate.Handle(http.HandlerFunc(users.Me)))
	mux.HandleFunc("GET /users/id/{id}", users.GetByID)
	mux.HandleFunc("GET /users/{$}", users.List)
	mux.HandleFunc("GET /users", users.List)
}

func (r *Router) registerWorkSessionRoutes(mux *http.ServeMux, authenticate *middleware.Authenticate) {
	sessions := handler.NewWorkSessions(r.workSessionService, r.contextManager, r.logger)

	create := authenticate.Handle(http.HandlerFunc(sessions.Create))
	list := authenticate.Handle(http.HandlerFunc(sessions.List))

	mux.Handle("POST /work_sessions/{$}", create)
	mux.Handle("POST /work_sessions", create)
	mux.Handle("GET /work_sessions/{$}", list)
	mux.Handle("GET /work_sessions", list)
}

func (r *Router) registerOperationalRoutes(mux *http.ServeMux) {
	health := handler.NewHealth(r.pinger, r.logger)

	mux.HandleFunc("GET /healthz", health.Check)
	mux.Handle("GET /metrics", r.metrics.Handler())
}

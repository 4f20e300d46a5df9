package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/aboh-server/internal/api/http/response"
	"github.com/dtroode/aboh-server/internal/logger"
	"github.com/dtroode/aboh-server/internal/model"
)

// WorkSessionService defines work session recording operations.
type WorkSessionService interface {
	Create(ctx context.Context, owner model.User, params model.CreateWorkSessionParams) (model.WorkSession, error)
	List(ctx context.Context, owner model.User, page model.Pagination) ([]model.WorkSession, error)
}

// WorkSessions handles HTTP endpoints under /work_sessions. Both routes
// require an authenticated user in context.
type WorkSessions struct {
	service        WorkSessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewWorkSessions creates a new WorkSessions handler.
func NewWorkSessions(service WorkSessionService, contextManager model.ContextManager, logger *logger.Logger) *WorkSessions {
	return &WorkSessions{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *WorkSessions) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, response.MsgNotAuthenticated)
		return
	}

	var req workSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.Create(r.Context(), owner, req.toParams())
	if err != nil {
		h.logger.Debug("WorkSessions handler: create failed",
			"user_id", owner.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toWorkSessionResponse(session))
}

func (h *WorkSessions) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, response.MsgNotAuthenticated)
		return
	}

	page, err := parsePagination(r, model.DefaultWorkSessionsLimit)
	if err != nil {
		response.Validation(w, "query", err)
		return
	}

	sessions, err := h.service.List(r.Context(), owner, page)
	if err != nil {
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toWorkSessionResponses(sessions))
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/aboh-server/internal/api/http/response"
	"github.com/dtroode/aboh-server/internal/logger"
	"github.com/dtroode/aboh-server/internal/model"
)

// AuthService defines user registration, login and lookup operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.User, error)
	Login(ctx context.Context, username, password string) (model.AccessToken, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	ListUsers(ctx context.Context, page model.Pagination) ([]model.User, error)
}

// Users handles HTTP endpoints under /users.
type Users struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUsers creates a new Users handler.
func NewUsers(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Users {
	return &Users{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account from a JSON body and responds 201.
func (h *Users) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.logger.Debug("Users handler: processing registration request",
		"username", req.Username)

	user, err := h.authService.Register(r.Context(), model.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			response.Error(w, http.StatusBadRequest, response.MsgAlreadyRegistered)
			return
		}
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toUserResponse(user))
}

// Token exchanges form-encoded credentials for a bearer token.
func (h *Users) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Validation(w, "body", err)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" {
		response.Validation(w, "body", model.NewValidationError("username", "field required"))
		return
	}
	if password == "" {
		response.Validation(w, "body", model.NewValidationError("password", "field required"))
		return
	}

	token, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			response.Error(w, http.StatusBadRequest, response.MsgIncorrectLogin)
			return
		}
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, tokenResponse{AccessToken: token.Token, TokenType: token.TokenType})
}

// Me returns the authenticated user.
func (h *Users) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, response.MsgNotAuthenticated)
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(user))
}

// GetByID returns a user by the id path value.
func (h *Users) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Validation(w, "path", model.NewValidationError("id", "value is not a valid uuid"))
		return
	}

	user, err := h.authService.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, response.MsgUserNotFound)
			return
		}
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(user))
}

// List returns a page of users.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePagination(r, model.DefaultUsersLimit)
	if err != nil {
		response.Validation(w, "query", err)
		return
	}

	users, err := h.authService.ListUsers(r.Context(), page)
	if err != nil {
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toUserResponses(users))
}

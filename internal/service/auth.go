package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/aboh-server/internal/logger"
	"github.com/dtroode/aboh-server/internal/model"
)

const tokenTypeBearer = "bearer"

// Auth attempt outcomes reported to AttemptRecorder.
const (
	resultSuccess      = "success"
	resultConflict     = "conflict"
	resultInvalid      = "invalid"
	resultUnauthorized = "unauthorized"
	resultError        = "error"
)

// AttemptRecorder counts register and login outcomes.
type AttemptRecorder interface {
	RecordAuthAttempt(operation, result string)
}

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	accessTTL    time.Duration
	recorder     AttemptRecorder
	logger       *logger.Logger
	now          func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	accessTTL time.Duration,
	recorder AttemptRecorder,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		accessTTL:    accessTTL,
		recorder:     recorder,
		logger:       logger,
		now:          time.Now,
	}
}

// Register creates a new user. Username and email must both be unused.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", params.Username)

	params, err := normalizeRegisterParams(params)
	if err != nil {
		a.record("register", resultInvalid)
		return model.User{}, err
	}

	existing, err := a.userStore.FindByUsernameOrEmail(ctx, params.Username, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to look up existing user",
			"username", params.Username,
			"error", err.Error())
		a.record("register", resultError)
		return model.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: username or email already registered",
			"username", params.Username)
		a.record("register", resultConflict)
		return model.User{}, model.ErrConflict
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			a.record("register", resultInvalid)
			return model.User{}, err
		}
		a.logger.Error("Auth service: failed to hash password",
			"username", params.Username,
			"error", err.Error())
		a.record("register", resultError)
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		CreatedAt:    a.now().UTC(),
	}

	saved, err := a.userStore.Create(ctx, user)
	if err != nil {
		// a concurrent registration may win between lookup and insert
		if errors.Is(err, model.ErrConflict) {
			a.logger.Info("Auth service: username or email registered concurrently",
				"username", params.Username)
			a.record("register", resultConflict)
			return model.User{}, model.ErrConflict
		}
		a.logger.Error("Auth service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		a.record("register", resultError)
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered successfully",
		"username", saved.Username,
		"user_id", saved.ID)
	a.record("register", resultSuccess)

	return withoutHash(saved), nil
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, username, password string) (model.AccessToken, error) {
	username = strings.TrimSpace(username)
	a.logger.Debug("Auth service: starting user login",
		"username", username)

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown user",
			"username", username)
		a.record("login", resultUnauthorized)
		return model.AccessToken{}, model.ErrUnauthorized
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		a.record("login", resultError)
		return model.AccessToken{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	ok, err := a.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		a.logger.Error("Auth service: failed to verify password",
			"user_id", user.ID,
			"error", err.Error())
		a.record("login", resultError)
		return model.AccessToken{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		a.logger.Info("Auth service: wrong password",
			"user_id", user.ID)
		a.record("login", resultUnauthorized)
		return model.AccessToken{}, model.ErrUnauthorized
	}

	token, err := a.tokenManager.Issue(user.ID.String(), a.accessTTL)
	if err != nil {
		a.logger.Error("Auth service: failed to issue access token",
			"user_id", user.ID,
			"error", err.Error())
		a.record("login", resultError)
		return model.AccessToken{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	a.logger.Info("Auth service: user logged in successfully",
		"user_id", user.ID)
	a.record("login", resultSuccess)

	return model.AccessToken{Token: token, TokenType: tokenTypeBearer}, nil
}

// ResolveCurrentUser maps a bearer token to the user it was issued for.
// Every failure is reported as model.ErrUnauthorized except storage errors.
func (a *Auth) ResolveCurrentUser(ctx context.Context, token string) (model.User, error) {
	subject, err := a.tokenManager.Validate(token)
	if err != nil {
		a.logger.Debug("Auth service: token rejected",
			"error", err.Error())
		return model.User{}, fmt.Errorf("%w: %w", model.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		a.logger.Debug("Auth service: token subject is not a user id",
			"subject", subject)
		return model.User{}, fmt.Errorf("%w: malformed subject", model.ErrUnauthorized)
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: token subject no longer exists",
			"user_id", userID)
		return model.User{}, fmt.Errorf("%w: unknown subject", model.ErrUnauthorized)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by id",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return withoutHash(user), nil
}

func (a *Auth) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			a.logger.Error("Auth service: failed to get user by id",
				"user_id", id,
				"error", err.Error())
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return withoutHash(user), nil
}

func (a *Auth) ListUsers(ctx context.Context, page model.Pagination) ([]model.User, error) {
	users, err := a.userStore.List(ctx, page)
	if err != nil {
		a.logger.Error("Auth service: failed to list users",
			"skip", page.Skip,
			"limit", page.Limit,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for i := range users {
		users[i] = withoutHash(users[i])
	}

	return users, nil
}

func (a *Auth) record(operation, result string) {
	if a.recorder != nil {
		a.recorder.RecordAuthAttempt(operation, result)
	}
}

func normalizeRegisterParams(params model.RegisterParams) (model.RegisterParams, error) {
	params.Username = strings.TrimSpace(params.Username)
	if params.Username == "" {
		return model.RegisterParams{}, model.NewValidationError("username", "must not be empty")
	}

	params.Email = strings.TrimSpace(params.Email)
	addr, err := mail.ParseAddress(params.Email)
	if err != nil || addr.Address != params.Email {
		return model.RegisterParams{}, model.NewValidationError("email", "value is not a valid email address")
	}

	if params.Password == "" {
		return model.RegisterParams{}, model.NewValidationError("password", "must not be empty")
	}

	return params, nil
}

func withoutHash(user model.User) model.User {
	user.PasswordHash = ""
	return user
}

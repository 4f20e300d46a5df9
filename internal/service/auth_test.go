package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/dtroode/aboh-server/internal/mocks"
	"github.com/dtroode/aboh-server/internal/model"
	"github.com/dtroode/aboh-server/internal/testutil"
)

type attemptsRecorder struct {
	attempts []string
}

func (r *attemptsRecorder) RecordAuthAttempt(operation, result string) {
	r.attempts = append(r.attempts, operation+":"+result)
}

func newTestAuth(t *testing.T) (*Auth, *servermocks.UserStore, *servermocks.PasswordHasher, *servermocks.TokenManager, *attemptsRecorder) {
	t.Helper()

	userStore := servermocks.NewUserStore(t)
	hasher := servermocks.NewPasswordHasher(t)
	tokMan := servermocks.NewTokenManager(t)
	rec := &attemptsRecorder{}

	a := NewAuth(userStore, hasher, tokMan, time.Hour, rec, testutil.MakeNoopLogger())
	return a, userStore, hasher, tokMan, rec
}

func TestAuth_Register_Success(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, _, rec := newTestAuth(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return fixed }

	userStore.On("FindByUsernameOrEmail", mock.Anything, "alice", "a@x.io").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", "pw1").Return("$2a$hash", nil)
	userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.ID != uuid.Nil &&
			u.Username == "alice" &&
			u.Email == "a@x.io" &&
			u.PasswordHash == "$2a$hash" &&
			u.CreatedAt.Equal(fixed)
	})).Return(func(_ context.Context, u model.User) (model.User, error) {
		return u, nil
	})

	user, err := a.Register(ctx, model.RegisterParams{Username: " alice ", Email: "a@x.io", Password: "pw1"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.io", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, []string{"register:success"}, rec.attempts)
}

func TestAuth_Register_Conflict(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, _, rec := newTestAuth(t)

	userStore.On("FindByUsernameOrEmail", mock.Anything, "alice", "other@x.io").
		Return(model.User{ID: uuid.New(), Username: "alice"}, nil)

	_, err := a.Register(ctx, model.RegisterParams{Username: "alice", Email: "other@x.io", Password: "pw2"})
	require.ErrorIs(t, err, model.ErrConflict)
	assert.Equal(t, []string{"register:conflict"}, rec.attempts)
}

func TestAuth_Register_ConcurrentConflict(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, _, _ := newTestAuth(t)

	userStore.On("FindByUsernameOrEmail", mock.Anything, "alice", "a@x.io").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", "pw1").Return("hash", nil)
	userStore.On("Create", mock.Anything, mock.Anything).
		Return(model.User{}, errors.Join(errors.New("duplicate key"), model.ErrConflict))

	_, err := a.Register(ctx, model.RegisterParams{Username: "alice", Email: "a@x.io", Password: "pw1"})
	require.ErrorIs(t, err, model.ErrConflict)
}

func TestAuth_Register_Validation(t *testing.T) {
	tests := []struct {
		name      string
		params    model.RegisterParams
		wantField string
	}{
		{name: "empty username", params: model.RegisterParams{Username: "  ", Email: "a@x.io", Password: "pw"}, wantField: "username"},
		{name: "bad email", params: model.RegisterParams{Username: "alice", Email: "not-an-email", Password: "pw"}, wantField: "email"},
		{name: "display name email", params: model.RegisterParams{Username: "alice", Email: "Alice <a@x.io>", Password: "pw"}, wantField: "email"},
		{name: "empty password", params: model.RegisterParams{Username: "alice", Email: "a@x.io"}, wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _, _, rec := newTestAuth(t)

			_, err := a.Register(context.Background(), tt.params)
			require.ErrorIs(t, err, model.ErrValidation)
			var vErr *model.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, []string{"register:invalid"}, rec.attempts)
		})
	}
}

func TestAuth_Register_PasswordTooLong(t *testing.T) {
	a, userStore, hasher, _, _ := newTestAuth(t)

	userStore.On("FindByUsernameOrEmail", mock.Anything, "alice", "a@x.io").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", mock.Anything).Return("", model.NewValidationError("password", "too long"))

	_, err := a.Register(context.Background(), model.RegisterParams{Username: "alice", Email: "a@x.io", Password: "long"})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestAuth_Register_StoreError(t *testing.T) {
	a, userStore, _, _, rec := newTestAuth(t)

	userStore.On("FindByUsernameOrEmail", mock.Anything, "alice", "a@x.io").Return(model.User{}, errors.New("db down"))

	_, err := a.Register(context.Background(), model.RegisterParams{Username: "alice", Email: "a@x.io", Password: "pw"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrConflict)
	assert.Contains(t, err.Error(), "db down")
	assert.Equal(t, []string{"register:error"}, rec.attempts)
}

func TestAuth_Login(t *testing.T) {
	userID := uuid.New()
	stored := model.User{ID: userID, Username: "alice", PasswordHash: "hash"}

	tests := []struct {
		name       string
		password   string
		setup      func(us *servermocks.UserStore, h *servermocks.PasswordHasher, tm *servermocks.TokenManager)
		wantErr    error
		wantToken  string
		wantResult string
	}{
		{
			name:     "success",
			password: "pw1",
			setup: func(us *servermocks.UserStore, h *servermocks.PasswordHasher, tm *servermocks.TokenManager) {
				us.On("GetByUsername", mock.Anything, "alice").Return(stored, nil)
				h.On("Verify", "pw1", "hash").Return(true, nil)
				tm.On("Issue", userID.String(), time.Hour).Return("signed", nil)
			},
			wantToken:  "signed",
			wantResult: "login:success",
		},
		{
			name:     "wrong password",
			password: "nope",
			setup: func(us *servermocks.UserStore, h *servermocks.PasswordHasher, _ *servermocks.TokenManager) {
				us.On("GetByUsername", mock.Anything, "alice").Return(stored, nil)
				h.On("Verify", "nope", "hash").Return(false, nil)
			},
			wantErr:    model.ErrUnauthorized,
			wantResult: "login:unauthorized",
		},
		{
			name:     "unknown user",
			password: "pw1",
			setup: func(us *servermocks.UserStore, _ *servermocks.PasswordHasher, _ *servermocks.TokenManager) {
				us.On("GetByUsername", mock.Anything, "alice").Return(model.User{}, model.ErrNotFound)
			},
			wantErr:    model.ErrUnauthorized,
			wantResult: "login:unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, us, h, tm, rec := newTestAuth(t)
			tt.setup(us, h, tm)

			tok, err := a.Login(context.Background(), "alice", tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, tok.Token)
				assert.Equal(t, "bearer", tok.TokenType)
			}
			assert.Equal(t, []string{tt.wantResult}, rec.attempts)
		})
	}
}

func TestAuth_Login_TrimsUsername(t *testing.T) {
	a, us, h, tm, _ := newTestAuth(t)
	userID := uuid.New()

	us.On("GetByUsername", mock.Anything, "alice").Return(model.User{ID: userID, Username: "alice", PasswordHash: "hash"}, nil)
	h.On("Verify", "pw1", "hash").Return(true, nil)
	tm.On("Issue", userID.String(), time.Hour).Return("signed", nil)

	tok, err := a.Login(context.Background(), "  alice ", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "signed", tok.Token)
}

func TestAuth_Login_StoreError(t *testing.T) {
	a, us, _, _, _ := newTestAuth(t)
	us.On("GetByUsername", mock.Anything, "alice").Return(model.User{}, errors.New("db down"))

	_, err := a.Login(context.Background(), "alice", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrUnauthorized)
}

func TestAuth_ResolveCurrentUser(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		setup   func(us *servermocks.UserStore, tm *servermocks.TokenManager)
		wantErr error
	}{
		{
			name: "valid token",
			setup: func(us *servermocks.UserStore, tm *servermocks.TokenManager) {
				tm.On("Validate", "tok").Return(userID.String(), nil)
				us.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Username: "alice", PasswordHash: "hash"}, nil)
			},
		},
		{
			name: "invalid token",
			setup: func(_ *servermocks.UserStore, tm *servermocks.TokenManager) {
				tm.On("Validate", "tok").Return("", model.ErrInvalidToken)
			},
			wantErr: model.ErrUnauthorized,
		},
		{
			name: "subject is not a uuid",
			setup: func(_ *servermocks.UserStore, tm *servermocks.TokenManager) {
				tm.On("Validate", "tok").Return("alice", nil)
			},
			wantErr: model.ErrUnauthorized,
		},
		{
			name: "user deleted",
			setup: func(us *servermocks.UserStore, tm *servermocks.TokenManager) {
				tm.On("Validate", "tok").Return(userID.String(), nil)
				us.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)
			},
			wantErr: model.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, us, _, tm, _ := newTestAuth(t)
			tt.setup(us, tm)

			user, err := a.ResolveCurrentUser(context.Background(), "tok")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, user.ID)
			assert.Empty(t, user.PasswordHash)
		})
	}
}

func TestAuth_GetUser(t *testing.T) {
	a, us, _, _, _ := newTestAuth(t)
	known := uuid.New()
	unknown := uuid.New()

	us.On("GetByID", mock.Anything, known).Return(model.User{ID: known, PasswordHash: "hash"}, nil)
	us.On("GetByID", mock.Anything, unknown).Return(model.User{}, model.ErrNotFound)

	user, err := a.GetUser(context.Background(), known)
	require.NoError(t, err)
	assert.Equal(t, known, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = a.GetUser(context.Background(), unknown)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestAuth_ListUsers(t *testing.T) {
	a, us, _, _, _ := newTestAuth(t)
	page := model.Pagination{Skip: 0, Limit: 10}

	us.On("List", mock.Anything, page).Return([]model.User{
		{ID: uuid.New(), Username: "alice", PasswordHash: "h1"},
		{ID: uuid.New(), Username: "bob", PasswordHash: "h2"},
	}, nil)

	users, err := a.ListUsers(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

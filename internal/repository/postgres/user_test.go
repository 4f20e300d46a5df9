package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/aboh-server/internal/model"
)

var userCols = []string{"id", "username", "email", "password_hash", "created_at"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_Create(t *testing.T) {
	user := model.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful creation",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
					WillReturnRows(pgxmock.NewRows(userCols).
						AddRow(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt))
			},
		},
		{
			name: "unique violation becomes conflict",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: model.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setupMock(mock)

			got, err := NewUserRepository(mock).Create(context.Background(), user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user, got)
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	id := uuid.New()
	created := time.Now().UTC()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      model.User
		wantErr   error
		errMsg    string
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
					WithArgs(id).
					WillReturnRows(pgxmock.NewRows(userCols).AddRow(id, "alice", "a@x.com", "hash", created))
			},
			want: model.User{ID: id, Username: "alice", Email: "a@x.com", PasswordHash: "hash", CreatedAt: created},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
					WithArgs(id).
					WillReturnRows(pgxmock.NewRows(userCols))
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
					WithArgs(id).
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setupMock(mock)

			got, err := NewUserRepository(mock).GetByID(context.Background(), id)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	mock := newMockPool(t)
	id := uuid.New()
	created := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(id, "alice", "a@x.com", "hash", created))
	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
		WithArgs("bob").
		WillReturnRows(pgxmock.NewRows(userCols))

	repo := NewUserRepository(mock)

	got, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = repo.GetByUsername(context.Background(), "bob")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_FindByUsernameOrEmail(t *testing.T) {
	mock := newMockPool(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM users WHERE username = \$1 OR email = \$2`).
		WithArgs("alice", "b@x.com").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(id, "alice", "a@x.com", "hash", time.Now().UTC()))
	mock.ExpectQuery(`FROM users WHERE username = \$1 OR email = \$2`).
		WithArgs("carol", "c@x.com").
		WillReturnRows(pgxmock.NewRows(userCols))

	repo := NewUserRepository(mock)

	got, err := repo.FindByUsernameOrEmail(context.Background(), "alice", "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = repo.FindByUsernameOrEmail(context.Background(), "carol", "c@x.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_List(t *testing.T) {
	mock := newMockPool(t)
	created := time.Now().UTC()
	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery(`FROM users ORDER BY created_at, id LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 5).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(first, "alice", "a@x.com", "h1", created).
			AddRow(second, "bob", "b@x.com", "h2", created))

	users, err := NewUserRepository(mock).List(context.Background(), model.Pagination{Skip: 5, Limit: 10})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first, users[0].ID)
	assert.Equal(t, second, users[1].ID)
}

func TestUserRepository_ListError(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`FROM users`).
		WithArgs(10, 0).
		WillReturnError(errors.New("connection refused"))

	_, err := NewUserRepository(mock).List(context.Background(), model.Pagination{Limit: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list users")
}

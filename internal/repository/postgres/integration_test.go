//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/aboh-server/internal/model"
	repo "github.com/dtroode/aboh-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("aboh_test"),
		tcpostgres.WithUsername("aboh"),
		tcpostgres.WithPassword("aboh"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	if err != nil {
		panic("failed to start postgres container: " + err.Error())
	}

	dsn, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to get connection string: " + err.Error())
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConnection(context.Background(), dsn, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newUser(name string) model.User {
	return model.User{
		ID:           uuid.New(),
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestUserRepository_Integration(t *testing.T) {
	ctx := context.Background()
	ur := repo.NewUserRepository(connect(t))

	u := newUser("user-" + uuid.NewString()[:8])
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, byID.Username)

	byName, err := ur.GetByUsername(ctx, u.Username)
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	found, err := ur.FindByUsernameOrEmail(ctx, "nobody", u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, found.ID)

	dupName := newUser(u.Username)
	dupName.Email = "other-" + u.Email
	_, err = ur.Create(ctx, dupName)
	require.ErrorIs(t, err, model.ErrConflict)

	dupEmail := newUser("other-" + u.Username)
	dupEmail.Email = u.Email
	_, err = ur.Create(ctx, dupEmail)
	require.ErrorIs(t, err, model.ErrConflict)

	_, err = ur.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)

	page, err := ur.List(ctx, model.Pagination{Skip: 0, Limit: 100})
	require.NoError(t, err)
	require.NotEmpty(t, page)
}

func TestUserRepository_ConcurrentCreateSameUsername(t *testing.T) {
	ctx := context.Background()
	ur := repo.NewUserRepository(connect(t))

	name := "race-" + uuid.NewString()[:8]
	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := newUser(name)
			u.Email = fmt.Sprintf("%s-%d@example.com", name, i)
			_, err := ur.Create(ctx, u)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, model.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestWorkSessionRepository_Integration(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ur := repo.NewUserRepository(conn)
	wr := repo.NewWorkSessionRepository(conn)

	alice, err := ur.Create(ctx, newUser("alice-"+uuid.NewString()[:8]))
	require.NoError(t, err)
	bob, err := ur.Create(ctx, newUser("bob-"+uuid.NewString()[:8]))
	require.NoError(t, err)

	duration := 1500
	note := "focus"
	base := time.Now().UTC().Truncate(time.Microsecond)
	var aliceIDs []uuid.UUID
	for i := 0; i < 3; i++ {
		now := base.Add(time.Duration(i) * time.Second)
		for _, owner := range []model.User{alice, bob} {
			saved, err := wr.Create(ctx, model.WorkSession{
				ID:           uuid.New(),
				UserID:       owner.ID,
				StartTime:    now,
				Mode:         "work",
				WorkDuration: &duration,
				Note:         &note,
				CreatedAt:    now,
			})
			require.NoError(t, err)
			if owner.ID == alice.ID {
				aliceIDs = append(aliceIDs, saved.ID)
			}
		}
	}

	list, err := wr.ListByUserID(ctx, alice.ID, model.Pagination{Limit: 100})
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, ws := range list {
		assert.Equal(t, alice.ID, ws.UserID)
		assert.Equal(t, aliceIDs[i], ws.ID)
		assert.Equal(t, "work", ws.Mode)
		require.NotNil(t, ws.WorkDuration)
		assert.Equal(t, duration, *ws.WorkDuration)
		require.NotNil(t, ws.Note)
		assert.Equal(t, note, *ws.Note)
		assert.Nil(t, ws.EndTime)
	}

	page, err := wr.ListByUserID(ctx, alice.ID, model.Pagination{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, aliceIDs[1], page[0].ID)

	_, err = wr.Create(ctx, model.WorkSession{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		StartTime: time.Now().UTC(),
		Mode:      "work",
		CreatedAt: time.Now().UTC(),
	})
	require.ErrorIs(t, err, model.ErrNotFound)
}

package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/aboh-server/internal/model"
)

// UserStore is an in-memory model.UserStore enforcing unique usernames and emails.
type UserStore struct {
	mu    sync.Mutex
	users []model.User
}

var _ model.UserStore = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return model.User{}, model.ErrConflict
		}
	}
	s.users = append(s.users, user)
	return user, nil
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	return s.find(func(u model.User) bool { return u.ID == id })
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	return s.find(func(u model.User) bool { return u.Username == username })
}

func (s *UserStore) FindByUsernameOrEmail(_ context.Context, username, email string) (model.User, error) {
	return s.find(func(u model.User) bool { return u.Username == username || u.Email == email })
}

func (s *UserStore) List(_ context.Context, page model.Pagination) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return paginate(s.users, page), nil
}

func (s *UserStore) find(match func(model.User) bool) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if match(u) {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

// WorkSessionStore is an in-memory model.WorkSessionStore. Owners are checked
// against users when a UserStore is attached.
type WorkSessionStore struct {
	mu       sync.Mutex
	users    *UserStore
	sessions []model.WorkSession
}

var _ model.WorkSessionStore = (*WorkSessionStore)(nil)

func NewWorkSessionStore(users *UserStore) *WorkSessionStore {
	return &WorkSessionStore{users: users}
}

func (s *WorkSessionStore) Create(ctx context.Context, session model.WorkSession) (model.WorkSession, error) {
	if s.users != nil {
		if _, err := s.users.GetByID(ctx, session.UserID); err != nil {
			return model.WorkSession{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = append(s.sessions, session)
	return session, nil
}

func (s *WorkSessionStore) ListByUserID(_ context.Context, userID uuid.UUID, page model.Pagination) ([]model.WorkSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owned []model.WorkSession
	for _, ws := range s.sessions {
		if ws.UserID == userID {
			owned = append(owned, ws)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})

	return paginate(owned, page), nil
}

func paginate[T any](items []T, page model.Pagination) []T {
	if page.Skip >= len(items) {
		return []T{}
	}
	end := page.Skip + page.Limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-page.Skip)
	copy(out, items[page.Skip:end])
	return out
}

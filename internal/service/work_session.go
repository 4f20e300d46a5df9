package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/aboh-server/internal/logger"
	"github.com/dtroode/aboh-server/internal/model"
)

// SessionRecorder counts stored work sessions.
type SessionRecorder interface {
	RecordSessionCreated()
}

type WorkSession struct {
	store    model.WorkSessionStore
	recorder SessionRecorder
	logger   *logger.Logger
	now      func() time.Time
}

func NewWorkSession(store model.WorkSessionStore, recorder SessionRecorder, logger *logger.Logger) *WorkSession {
	return &WorkSession{
		store:    store,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Create stores a work session owned by owner. Any owner carried in the
// request payload is ignored.
func (s *WorkSession) Create(ctx context.Context, owner model.User, params model.CreateWorkSessionParams) (model.WorkSession, error) {
	s.logger.Debug("WorkSession service: creating work session",
		"user_id", owner.ID,
		"mode", params.Mode)

	now := s.now().UTC()

	session, err := buildWorkSession(owner.ID, params, now)
	if err != nil {
		return model.WorkSession{}, err
	}

	saved, err := s.store.Create(ctx, session)
	if err != nil {
		s.logger.Error("WorkSession service: failed to create work session",
			"user_id", owner.ID,
			"error", err.Error())
		return model.WorkSession{}, fmt.Errorf("failed to create work session: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordSessionCreated()
	}

	s.logger.Info("WorkSession service: work session created",
		"user_id", owner.ID,
		"session_id", saved.ID)

	return saved, nil
}

// List returns a page of owner's sessions ordered by creation time.
func (s *WorkSession) List(ctx context.Context, owner model.User, page model.Pagination) ([]model.WorkSession, error) {
	sessions, err := s.store.ListByUserID(ctx, owner.ID, page)
	if err != nil {
		s.logger.Error("WorkSession service: failed to list work sessions",
			"user_id", owner.ID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list work sessions: %w", err)
	}

	return sessions, nil
}

func buildWorkSession(ownerID uuid.UUID, params model.CreateWorkSessionParams, now time.Time) (model.WorkSession, error) {
	mode := strings.TrimSpace(params.Mode)
	if mode == "" {
		return model.WorkSession{}, model.NewValidationError("mode", "must not be empty")
	}

	counters := []struct {
		field string
		value *int
	}{
		{"work_duration", params.WorkDuration},
		{"pause_duration", params.PauseDuration},
		{"work_cycles", params.WorkCycles},
	}
	for _, c := range counters {
		if c.value != nil && *c.value < 0 {
			return model.WorkSession{}, model.NewValidationError(c.field, "must be greater than or equal to 0")
		}
		// stored as INTEGER
		if c.value != nil && *c.value > math.MaxInt32 {
			return model.WorkSession{}, model.NewValidationError(c.field, fmt.Sprintf("must be less than or equal to %d", math.MaxInt32))
		}
	}

	start := now
	if params.StartTime != nil {
		start = params.StartTime.UTC()
	}

	var end *time.Time
	if params.EndTime != nil {
		e := params.EndTime.UTC()
		if e.Before(start) {
			return model.WorkSession{}, model.NewValidationError("end_time", "must not be before start_time")
		}
		end = &e
	}

	// an empty note is stored as absent
	var note *string
	if params.Note != nil && *params.Note != "" {
		n := *params.Note
		note = &n
	}

	return model.WorkSession{
		ID:            uuid.New(),
		UserID:        ownerID,
		StartTime:     start,
		EndTime:       end,
		Mode:          mode,
		WorkDuration:  params.WorkDuration,
		PauseDuration: params.PauseDuration,
		WorkCycles:    params.WorkCycles,
		Note:          note,
		CreatedAt:     now,
	}, nil
}

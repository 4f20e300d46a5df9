package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WorkSessionStore defines persistence operations for work sessions.
type WorkSessionStore interface {
	Create(ctx context.Context, session WorkSession) (WorkSession, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, page Pagination) ([]WorkSession, error)
}

// WorkSession is a single timed focus or pause interval owned by a user.
type WorkSession struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	StartTime     time.Time
	EndTime       *time.Time
	Mode          string
	WorkDuration  *int
	PauseDuration *int
	WorkCycles    *int
	Note          *string
	CreatedAt     time.Time
}

// CreateWorkSessionParams contains client-supplied work session fields.
// The owner is never part of it; it comes from the authenticated user.
type CreateWorkSessionParams struct {
	StartTime     *time.Time
	EndTime       *time.Time
	Mode          string
	WorkDuration  *int
	PauseDuration *int
	WorkCycles    *int
	Note          *string
}

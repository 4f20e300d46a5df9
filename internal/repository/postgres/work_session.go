package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/aboh-server/internal/model"
)

var _ model.WorkSessionStore = (*WorkSessionRepository)(nil)

type WorkSessionRepository struct {
	db DB
}

func NewWorkSessionRepository(db DB) *WorkSessionRepository {
	return &WorkSessionRepository{
		db: db,
	}
}

const workSessionColumns = `id, user_id, start_time, end_time, mode, work_duration,
	pause_duration, work_cycles, note, created_at`

func scanWorkSession(row pgx.Row) (model.WorkSession, error) {
	var ws model.WorkSession
	err := row.Scan(
		&ws.ID, &ws.UserID, &ws.StartTime, &ws.EndTime, &ws.Mode, &ws.WorkDuration,
		&ws.PauseDuration, &ws.WorkCycles, &ws.Note, &ws.CreatedAt,
	)
	return ws, err
}

// Create inserts the session in a single statement, so it is stored whole or not at all.
func (r *WorkSessionRepository) Create(ctx context.Context, ws model.WorkSession) (model.WorkSession, error) {
	query := `INSERT INTO work_sessions (id, user_id, start_time, end_time, mode, work_duration,
			  pause_duration, work_cycles, note, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + workSessionColumns

	saved, err := scanWorkSession(r.db.QueryRow(ctx, query,
		ws.ID, ws.UserID, ws.StartTime, ws.EndTime, ws.Mode, ws.WorkDuration,
		ws.PauseDuration, ws.WorkCycles, ws.Note, ws.CreatedAt,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.WorkSession{}, fmt.Errorf("owner %s: %w", ws.UserID, model.ErrNotFound)
		}
		return model.WorkSession{}, fmt.Errorf("failed to create work session: %w", err)
	}

	return saved, nil
}

// ListByUserID returns one page of the user's sessions in creation order.
func (r *WorkSessionRepository) ListByUserID(ctx context.Context, userID uuid.UUID, page model.Pagination) ([]model.WorkSession, error) {
	query := `SELECT ` + workSessionColumns + `
			  FROM work_sessions
			  WHERE user_id = $1
			  ORDER BY created_at, id
			  LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list work sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]model.WorkSession, 0, page.Limit)
	for rows.Next() {
		ws, err := scanWorkSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work session: %w", err)
		}
		sessions = append(sessions, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work sessions: %w", err)
	}

	return sessions, nil
}

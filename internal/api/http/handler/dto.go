package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/aboh-server/internal/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// workSessionRequest has no owner field; a user_id sent by the client is
// dropped by the decoder.
type workSessionRequest struct {
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Mode          string     `json:"mode"`
	WorkDuration  *int       `json:"work_duration"`
	PauseDuration *int       `json:"pause_duration"`
	WorkCycles    *int       `json:"work_cycles"`
	Note          *string    `json:"note"`
}

type workSessionResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Mode          string     `json:"mode"`
	WorkDuration  *int       `json:"work_duration"`
	PauseDuration *int       `json:"pause_duration"`
	WorkCycles    *int       `json:"work_cycles"`
	Note          *string    `json:"note"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func toUserResponses(users []model.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func (r workSessionRequest) toParams() model.CreateWorkSessionParams {
	return model.CreateWorkSessionParams{
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Mode:          r.Mode,
		WorkDuration:  r.WorkDuration,
		PauseDuration: r.PauseDuration,
		WorkCycles:    r.WorkCycles,
		Note:          r.Note,
	}
}

func toWorkSessionResponse(ws model.WorkSession) workSessionResponse {
	return workSessionResponse{
		ID:            ws.ID,
		UserID:        ws.UserID,
		StartTime:     ws.StartTime,
		EndTime:       ws.EndTime,
		Mode:          ws.Mode,
		WorkDuration:  ws.WorkDuration,
		PauseDuration: ws.PauseDuration,
		WorkCycles:    ws.WorkCycles,
		Note:          ws.Note,
	}
}

func toWorkSessionResponses(sessions []model.WorkSession) []workSessionResponse {
	out := make([]workSessionResponse, 0, len(sessions))
	for _, ws := range sessions {
		out = append(out, toWorkSessionResponse(ws))
	}
	return out
}

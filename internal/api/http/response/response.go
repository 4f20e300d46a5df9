// Package response writes JSON bodies and error details for the HTTP API.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/aboh-server/internal/model"
)

// Messages returned to clients in the detail field.
const (
	MsgNotAuthenticated    = "Not authenticated"
	MsgInvalidCredentials  = "Could not validate credentials"
	MsgIncorrectLogin      = "Incorrect username or password"
	MsgAlreadyRegistered   = "Username or email already registered"
	MsgUserNotFound        = "User not found"
	MsgInternalServerError = "Internal server error"
)

// Detail is the error body shape.
type Detail struct {
	Detail any `json:"detail"`
}

// FieldError is a single entry of a 422 response.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"detail": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Detail{Detail: msg})
}

// Unauthorized writes a 401 with the bearer challenge header.
func Unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	Error(w, http.StatusUnauthorized, msg)
}

// Validation writes a 422 describing which field of location was rejected.
// Errors that are not validation errors produce a generic body entry.
func Validation(w http.ResponseWriter, location string, err error) {
	fe := FieldError{Loc: []string{location}, Msg: err.Error(), Type: "value_error"}

	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		fe.Loc = append(fe.Loc, vErr.Field)
		fe.Msg = vErr.Message
	}

	JSON(w, http.StatusUnprocessableEntity, Detail{Detail: []FieldError{fe}})
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/aboh-server/internal/api/http/response"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON reads a size-limited JSON body into v. On failure it writes the
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		response.Validation(w, "body", err)
		return false
	}

	return true
}

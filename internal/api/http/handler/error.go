package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dtroode/aboh-server/internal/api/http/response"
	"github.com/dtroode/aboh-server/internal/model"
)

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		response.Validation(w, "body", err)
	case errors.Is(err, model.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, model.ErrUnauthorized):
		response.Unauthorized(w, response.MsgInvalidCredentials)
	default:
		response.Error(w, http.StatusInternalServerError, response.MsgInternalServerError)
	}
}

// parsePagination reads skip and limit from the query string.
func parsePagination(r *http.Request, defaultLimit int) (model.Pagination, error) {
	q := r.URL.Query()

	skip, err := intQuery(q.Get("skip"), "skip", 0)
	if err != nil {
		return model.Pagination{}, err
	}
	limit, err := intQuery(q.Get("limit"), "limit", defaultLimit)
	if err != nil {
		return model.Pagination{}, err
	}

	return model.NewPagination(skip, limit)
}

func intQuery(raw, field string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidationError(field, "value is not a valid integer")
	}
	return v, nil
}

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/blogon/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// writeError answers with the status matching the kind of err. Only server
// faults are logged; their detail never reaches the client.
func writeError(w http.ResponseWriter, msg, slug string, err error) {
	status := apperr.HTTPStatus(err)
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, status, errorBody("post not found"))
		return
	}
	slog.Error(msg, slog.String("slug", slug), slog.String("error", err.Error()))
	writeJSON(w, status, errorBody("internal error"))
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

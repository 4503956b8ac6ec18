package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mushroom-trivia/internal/domain"
)

type jsonResponse struct {
	Error   bool   `json:"error"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, jsonResponse{Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeEnvelope(w, status, jsonResponse{Error: true, Message: msg})
}

func writeEnvelope(w http.ResponseWriter, status int, body jsonResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeServiceError maps domain errors to HTTP statuses. Validation failures
// keep their field detail in the data payload so clients can highlight inputs.
func writeServiceError(w http.ResponseWriter, err error) {
	var multi domain.ValidationErrors
	var single domain.ValidationError
	switch {
	case errors.As(err, &multi):
		writeEnvelope(w, http.StatusUnprocessableEntity, jsonResponse{Error: true, Data: multi, Message: "validation failed"})
	case errors.As(err, &single):
		writeEnvelope(w, http.StatusUnprocessableEntity, jsonResponse{Error: true, Data: domain.ValidationErrors{single}, Message: "validation failed"})
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSessionFinished),
		errors.Is(err, domain.ErrSessionInProgress),
		errors.Is(err, domain.ErrScoreAlreadySaved),
		errors.Is(err, domain.ErrNotCurrentQuestion):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

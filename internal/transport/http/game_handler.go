package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mushroom-trivia/internal/app"
	"mushroom-trivia/internal/domain"
)

type answerRequest struct {
	QuestionID  int64 `json:"question_id"`
	AnswerIndex int   `json:"answer_index"`
}

type saveScoreRequest struct {
	PlayerName string `json:"player_name"`
}

type answerResponse struct {
	Verdict  domain.Verdict `json:"verdict"`
	Progress app.Progress   `json:"progress"`
}

// StartSession opens a game session and returns a randomized batch of
// questions with the answer key stripped.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.game.StartSession(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) AnswerCurrent(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	verdict, progress, err := h.game.AnswerCurrent(r.Context(), chi.URLParam(r, "token"), req.QuestionID, req.AnswerIndex)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Verdict: verdict, Progress: progress})
}

func (h *Handler) SaveScore(w http.ResponseWriter, r *http.Request) {
	var req saveScoreRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	score, err := h.game.SaveScore(r.Context(), chi.URLParam(r, "token"), req.PlayerName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, score)
}

func (h *Handler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := h.game.Abandon(r.Context(), chi.URLParam(r, "token")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VerifyAnswer is the stateless check for clients that keep their own tally.
func (h *Handler) VerifyAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	verdict, err := h.game.Verify(r.Context(), req.QuestionID, req.AnswerIndex)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

package http

import (
	"net/http"
	"strconv"

	"mushroom-trivia/internal/app"
	"mushroom-trivia/internal/domain"
)

type highScoreView struct {
	domain.HighScore
	Accuracy float64 `json:"accuracy"`
}

func withAccuracy(scores []domain.HighScore) []highScoreView {
	views := make([]highScoreView, 0, len(scores))
	for _, s := range scores {
		views = append(views, highScoreView{HighScore: s, Accuracy: s.Accuracy()})
	}
	return views
}

// Leaderboard returns the ranked top scores, optionally capped by ?limit.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	scores, err := h.scores.Top(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, withAccuracy(scores))
}

// SubmitHighScore records a client-computed tally after server-side validation.
func (h *Handler) SubmitHighScore(w http.ResponseWriter, r *http.Request) {
	var input app.HighScoreInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	score, err := h.scores.Submit(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, highScoreView{HighScore: score, Accuracy: score.Accuracy()})
}

func (h *Handler) GetHighScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	score, err := h.scores.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, highScoreView{HighScore: score, Accuracy: score.Accuracy()})
}

// RecentHighScores is the admin browse view ordered by submission recency.
func (h *Handler) RecentHighScores(w http.ResponseWriter, r *http.Request) {
	page, err := h.scores.Recent(r.Context(), queryPage(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

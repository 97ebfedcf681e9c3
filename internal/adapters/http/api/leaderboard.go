package api

import (
	"context"
	"net/http"

	service "github.com/okian/scoutboard/internal/app"
	"github.com/okian/scoutboard/pkg/logger"
)

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	SubmitScore(ctx context.Context, username, score any) (Entry, error)
	Leaderboard(ctx context.Context) ([]Entry, error)
	ClearLeaderboard(ctx context.Context)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps   LeaderboardDependencies
	logger logger.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, log logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps, logger: log}
}

// HandleSubmitScore handles POST /leaderboard/submit requests.
func (h *LeaderboardHandler) HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_score"
	body, err := decodeObject(w, r)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, WrapKind(op, ErrBadRequest, err))
		return
	}

	username, hasUsername := body["username"]
	score, hasScore := body["score"]
	if !hasUsername || !hasScore {
		writeFailure(r.Context(), w, h.logger, NewKind(op, service.ErrMissingFields))
		return
	}

	entry, err := h.deps.SubmitScore(r.Context(), username, score)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		Status:   statusSuccess,
		Message:  msgScoreSubmitted,
		Score:    entry.Score,
		Username: entry.Username,
	})
}

// HandleGetLeaderboard handles GET /leaderboard requests.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	entries, err := h.deps.Leaderboard(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, h.logger, WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleClearLeaderboard handles POST /leaderboard/clear requests.
func (h *LeaderboardHandler) HandleClearLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.deps.ClearLeaderboard(r.Context())
	writeSuccess(w, msgBoardCleared)
}

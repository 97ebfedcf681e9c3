// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	service "github.com/okian/scoutboard/internal/app"
	"github.com/okian/scoutboard/internal/domain/model"
	"github.com/okian/scoutboard/internal/domain/types"
	"github.com/okian/scoutboard/pkg/logger"
)

// maxBodyBytes caps request bodies read by JSON handlers.
const maxBodyBytes = 1 << 20

// Client-facing messages.
const (
	msgInvalidJSON    = "Invalid JSON body"
	msgMissingSavedAt = "_savedAt is required"
	msgMissingFields  = "Missing required fields"
	msgScoreNotNumber = "Score must be a number"
	msgEmptyUsername  = "Username cannot be empty"
	msgInternalError  = "Internal server error"
	msgSubmitted      = "Data submitted successfully!"
	msgDeleted        = "Entry deleted successfully!"
	msgHistoryCleared = "History cleared!"
	msgScoreSubmitted = "Score submitted successfully!"
	msgBoardCleared   = "Leaderboard cleared!"
	statusSuccess     = "success"
	statusError       = "error"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RecordsDependencies
	LeaderboardDependencies
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = model.Entry

// Ranking mirrors the read shape returned by /rankings.
type Ranking = types.Ranking

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	recordsHandler     *RecordsHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	log := logger.Get().Named("api")
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		recordsHandler:     NewRecordsHandler(deps, log),
		leaderboardHandler: NewLeaderboardHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /submit", MetricsMiddleware(s.recordsHandler.HandleSubmit, "submit"))
	mux.HandleFunc("GET /rankings", MetricsMiddleware(s.recordsHandler.HandleRankings, "rankings"))
	mux.HandleFunc("POST /delete", MetricsMiddleware(s.recordsHandler.HandleDelete, "delete"))
	mux.HandleFunc("POST /clear", MetricsMiddleware(s.recordsHandler.HandleClear, "clear"))

	mux.HandleFunc("POST /leaderboard/submit", MetricsMiddleware(s.leaderboardHandler.HandleSubmitScore, "leaderboard_submit"))
	mux.HandleFunc("GET /leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("POST /leaderboard/clear", MetricsMiddleware(s.leaderboardHandler.HandleClearLeaderboard, "leaderboard_clear"))
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type scoreResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Score    int64  `json:"score"`
	Username string `json:"username"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, statusResponse{Status: statusSuccess, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, statusResponse{Status: statusError, Message: message})
}

// writeFailure maps err to a status code and message and writes it.
func writeFailure(ctx context.Context, w http.ResponseWriter, log logger.Logger, err error) {
	status, message := classify(err)
	log = requestLogger(ctx, log)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.Error(err))
	} else {
		log.Debug(ctx, "request rejected", logger.Error(err))
	}
	writeError(w, status, message)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidRecord):
		return http.StatusBadRequest, msgInvalidJSON
	case errors.Is(err, service.ErrMissingSavedAt):
		return http.StatusBadRequest, msgMissingSavedAt
	case errors.Is(err, service.ErrMissingFields):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, service.ErrScoreNotNumber):
		return http.StatusBadRequest, msgScoreNotNumber
	case errors.Is(err, service.ErrEmptyUsername):
		return http.StatusBadRequest, msgEmptyUsername
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}

// decodeObject reads a single JSON object from the request body. Numbers
// are kept as json.Number so stored records echo their literals.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if obj == nil {
		return nil, errors.New("body is not a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return obj, nil
}

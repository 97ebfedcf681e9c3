package api

import (
	"context"
	"net/http"

	"github.com/okian/scoutboard/internal/domain/model"
	"github.com/okian/scoutboard/pkg/logger"
)

// RecordsDependencies defines the scouting record operations used by handlers.
type RecordsDependencies interface {
	Submit(ctx context.Context, rec model.Record) error
	Rankings(ctx context.Context) []Ranking
	Delete(ctx context.Context, savedAt any) (int, error)
	Clear(ctx context.Context)
}

// RecordsHandler handles scouting record requests.
type RecordsHandler struct {
	deps   RecordsDependencies
	logger logger.Logger
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps RecordsDependencies, log logger.Logger) *RecordsHandler {
	return &RecordsHandler{deps: deps, logger: log}
}

// HandleSubmit handles POST /submit requests.
func (h *RecordsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit"
	body, err := decodeObject(w, r)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.Submit(r.Context(), model.Record(body)); err != nil {
		writeFailure(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeSuccess(w, msgSubmitted)
}

// HandleRankings handles GET /rankings requests.
func (h *RecordsHandler) HandleRankings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Rankings(r.Context()))
}

// HandleDelete handles POST /delete requests. Records are matched on _savedAt.
func (h *RecordsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete"
	body, err := decodeObject(w, r)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, WrapKind(op, ErrBadRequest, err))
		return
	}
	if _, err := h.deps.Delete(r.Context(), body[model.KeySavedAt]); err != nil {
		writeFailure(r.Context(), w, h.logger, Wrap(op, err))
		return
	}
	writeSuccess(w, msgDeleted)
}

// HandleClear handles POST /clear requests. The body is ignored.
func (h *RecordsHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.deps.Clear(r.Context())
	writeSuccess(w, msgHistoryCleared)
}

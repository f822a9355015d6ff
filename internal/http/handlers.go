package http

import (
	"context"
	"errors"
	"net/http"

	"pocketledger/internal/core"
	"pocketledger/internal/ledger"
	"pocketledger/internal/log"
	"pocketledger/internal/present"
	"pocketledger/internal/services"
)

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.svc == nil {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// summary returns the rendered ledger for filter, from the cache when the
// ledger has not changed since it was rendered.
func (s *Server) summary(ctx context.Context, f core.Filter) present.Summary {
	if sum, ok := s.summaries.Get(summaryKey(s.svc.Revision(), f.String())); ok {
		log.FromContext(ctx).DebugContext(ctx, "Summary cache hit", log.FieldFilter, f)
		return sum
	}
	sum, rev := s.svc.SummaryFor(f)
	s.summaries.Set(summaryKey(rev, f.String()), sum)
	return sum
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	NewJSONResponse().JSON(s.summary(r.Context(), f)).Write(w)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	tx, ok := s.svc.Get(id)
	if !ok {
		NotFoundError(services.ErrNotFound.Error()).Write(w)
		return
	}
	NewJSONResponse().JSON(tx).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := ParseDraft(NewRequestBodyParser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tx, err := s.svc.Add(ctx, d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).JSON(tx).Write(w)
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if _, ok := s.svc.Get(id); !ok {
		NotFoundError(services.ErrNotFound.Error()).Write(w)
		return
	}
	if !confirmed(r) {
		ConflictError(services.DeletePrompt + " Repeat with confirm=true.").Write(w)
		return
	}
	d, err := ParseDraft(NewRequestBodyParser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := withConfirmation(r.Context(), true)
	tx, ok, err := s.svc.Edit(ctx, id, d)
	switch {
	case err != nil:
		s.writeError(w, r, err)
	case !ok:
		ConflictError(services.DeletePrompt).Write(w)
	default:
		NewJSONResponse().JSON(tx).Write(w)
	}
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if !confirmed(r) {
		ConflictError(services.DeletePrompt + " Repeat with confirm=true.").Write(w)
		return
	}
	// Deleting an unknown id is a no-op, answered like a successful delete.
	if _, err := s.svc.Delete(withConfirmation(r.Context(), true), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearTransactions(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		ConflictError(services.ClearPrompt + " Repeat with confirm=true.").Write(w)
		return
	}
	if _, err := s.svc.Clear(withConfirmation(r.Context(), true)); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.summaries.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSecurityStats(w http.ResponseWriter, _ *http.Request) {
	NewJSONResponse().JSON(s.metrics.snapshot()).Write(w)
}

// writeError maps service and parsing errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, errBadRequest):
		BadRequestError(err.Error()).Write(w)
	case errors.Is(err, services.ErrNotFound):
		NotFoundError(err.Error()).Write(w)
	case errors.Is(err, ledger.ErrPersist), errors.Is(err, ledger.ErrDuplicateID):
		log.FromContext(ctx).ErrorContext(ctx, "Ledger operation failed", log.FieldError, err, log.FieldPath, r.URL.Path)
		InternalServerError("could not save the ledger").Write(w)
	default:
		// Anything else is a validation failure of the submitted draft.
		UnprocessableEntityError(err.Error()).Write(w)
	}
}

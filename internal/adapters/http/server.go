// Package http exposes the workflow engine over a small JSON API: create a
// session, feed it inputs, read it back. Each input request runs the control
// loop until the workflow suspends or completes, so responses always carry a
// settled state.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inevo/formflow/pkg/domain"
)

// Engine defines the session operations the API needs from the core.
type Engine interface {
	StartSession(ctx context.Context, sessionID, userID string) (*domain.State, error)
	HandleInput(ctx context.Context, sessionID, input string) (*domain.State, error)
	Session(ctx context.Context, sessionID string) (*domain.State, error)
	EndSession(ctx context.Context, sessionID string) error
	Sessions(ctx context.Context) ([]string, error)
}

// Server hosts the REST handlers.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, logger *slog.Logger) http.Handler {
	s := &Server{engine: engine, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/input", s.postInput)
		})
	})
	return r
}

type createSessionRequest struct {
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id"`
}

type inputRequest struct {
	Input string `json:"input"`
}

// sessionResponse is the client view of a session: the transcript plus the
// flags a frontend needs to drive the conversation.
type sessionResponse struct {
	SessionID        string                   `json:"session_id"`
	Phase            domain.Phase             `json:"phase"`
	Status           domain.SubmissionStatus  `json:"status"`
	WaitingForInput  bool                     `json:"waiting_for_input"`
	WorkflowComplete bool                     `json:"workflow_complete"`
	History          []domain.Message         `json:"history"`
	ActiveForms      []string                 `json:"active_forms"`
	QuoteID          string                   `json:"quote_id,omitempty"`
	QuoteAmount      float64                  `json:"quote_amount,omitempty"`
	Forms            map[string]domain.FormData `json:"forms,omitempty"`
}

func toResponse(s *domain.State, includeForms bool) sessionResponse {
	resp := sessionResponse{
		SessionID:        s.SessionID,
		Phase:            s.Phase,
		Status:           s.Status,
		WaitingForInput:  s.WaitingForInput,
		WorkflowComplete: s.WorkflowComplete,
		History:          s.History,
		ActiveForms:      s.ActiveForms,
		QuoteID:          s.QuoteID,
		QuoteAmount:      s.QuoteAmount,
	}
	if includeForms {
		resp.Forms = s.Forms
	}
	return resp
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	state, err := s.engine.StartSession(r.Context(), body.SessionID, body.UserID)
	if err := s.checkTurnErr(w, state, err); err != nil {
		return
	}
	s.writeJSON(w, http.StatusCreated, toResponse(state, false))
}

func (s *Server) postInput(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body inputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Input == "" {
		http.Error(w, "input is required", http.StatusBadRequest)
		return
	}

	state, err := s.engine.HandleInput(r.Context(), sessionID, body.Input)
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err := s.checkTurnErr(w, state, err); err != nil {
		return
	}
	s.writeJSON(w, http.StatusOK, toResponse(state, false))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := s.engine.Session(r.Context(), sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toResponse(state, true))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.Sessions(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// checkTurnErr distinguishes a budget pause (state is valid, session is
// resumable) from a real failure.
func (s *Server) checkTurnErr(w http.ResponseWriter, state *domain.State, err error) error {
	if err == nil || errors.Is(err, domain.ErrStepBudgetExceeded) {
		if errors.Is(err, domain.ErrStepBudgetExceeded) {
			s.logger.Warn("turn paused at step budget", "session_id", state.SessionID)
		}
		return nil
	}
	s.serverError(w, err)
	return err
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

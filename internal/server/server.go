package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/rayulu7/chatbot/internal/chat"
	"github.com/rayulu7/chatbot/internal/config"
	"github.com/rayulu7/chatbot/internal/store"
	"github.com/rayulu7/chatbot/internal/types"
)

type Server struct {
	router *chi.Mux
	chat   *chat.Service
	cfg    config.Config
}

func NewServer(cfg config.Config, svc *chat.Service) *Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	s := &Server{router: r, chat: svc, cfg: cfg}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/chat/new", s.handleStartChat)
	s.router.Post("/api/chat/{sessionID}/ask", s.handleAsk)
	s.router.Get("/api/sessions", s.handleListSessions)
	s.router.Get("/api/chat/{sessionID}", s.handleGetSession)
	s.router.Post("/api/chat/{sessionID}/message/{messageID}/feedback", s.handleFeedback)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStartChat(w http.ResponseWriter, r *http.Request) {
	// The question is optional; an empty body starts an untitled chat.
	var req types.StartChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sess, err := s.chat.StartChat(req.Question)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, types.StartChatResponse{SessionID: sess.ID, Title: sess.Title})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req types.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	msg, err := s.chat.Ask(chi.URLParam(r, "sessionID"), req.Question)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.chat.ListSessions()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.chat.GetSession(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	err := s.chat.SetFeedback(chi.URLParam(r, "sessionID"), chi.URLParam(r, "messageID"), req.Feedback)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, types.FeedbackResponse{Success: true, Feedback: req.Feedback})
}

// writeServiceError maps service errors onto HTTP statuses: invalid input is
// a 400, unknown ids are 404, anything else (storage failures included) is a
// 500 that is also logged.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyQuestion), errors.Is(err, chat.ErrInvalidFeedback):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, store.ErrMessageNotFound):
		s.writeError(w, http.StatusNotFound, "Message not found")
	default:
		log.Println("internal error:", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, types.ErrorResponse{Error: msg})
}

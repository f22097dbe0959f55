package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"webmail-agent/internal/application/port/input"
	"webmail-agent/internal/application/port/output"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
)

// SenderFactory builds a fresh single-shot sender per request: each send
// operation owns its own browser session.
type SenderFactory func(ctx context.Context) (input.EmailSender, error)

// Server exposes the programmatic surface over HTTP. Sends are serialized:
// one browser session at a time.
type Server struct {
	factory SenderFactory
	logger  output.LoggerPort

	mu sync.Mutex
}

func NewServer(factory SenderFactory, logger output.LoggerPort) *Server {
	return &Server{
		factory: factory,
		logger:  logger,
	}
}

func (s *Server) Router() http.Handler {
	requestLogger := httplog.NewLogger("webmail-agent", httplog.Options{
		JSON:    true,
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(requestLogger))
	r.Post("/send", s.handleSend)
	return r
}

type sendRequest struct {
	Instruction string `json:"instruction"`
}

type sendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, sendResponse{Status: "error", Message: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Instruction) == "" {
		writeJSON(w, http.StatusBadRequest, sendResponse{Status: "error", Message: "instruction is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sender, err := s.factory(r.Context())
	if err != nil {
		s.logger.Error("Failed to start send session", "error", err)
		writeJSON(w, http.StatusInternalServerError, sendResponse{Status: "error", Message: err.Error()})
		return
	}

	result, err := sender.SendEmail(r.Context(), req.Instruction)
	if err != nil {
		s.logger.Error("Send rejected", "error", err)
		writeJSON(w, http.StatusInternalServerError, sendResponse{Status: "error", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, sendResponse{
		Status:  string(result.Status),
		Message: result.Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

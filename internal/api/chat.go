package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sagejournal/sage/internal/command"
)

// ChatRequest is the payload for both /api/v1/chat and /chat/preview.
type ChatRequest struct {
	OwnerUUID string `json:"owner_uuid"`
	Message   string `json:"message"`
	SentAt    string `json:"sent_at,omitempty"` // RFC3339; empty means now
}

// ChatResponse wraps the interpretation and, for /chat, the dispatch
// outcome. Command is null when the message expressed no command.
type ChatResponse struct {
	Matched bool             `json:"matched"`
	Command *command.Command `json:"command,omitempty"`
	Outcome any              `json:"outcome,omitempty"`
}

// chat handles POST /api/v1/chat: interpret the message and execute it.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	req, owner, at, ok := s.decodeChat(w, r)
	if !ok {
		return
	}

	cmd, err := s.classifier.Interpret(req.Message, at)
	if err != nil {
		badRequest(w, err)
		return
	}
	if cmd == nil {
		writeJSON(w, http.StatusOK, ChatResponse{Matched: false})
		return
	}

	outcome := s.runner.Run(r.Context(), owner, cmd)
	writeJSON(w, http.StatusOK, ChatResponse{Matched: true, Command: cmd, Outcome: outcome})
}

// preview handles POST /api/v1/chat/preview: interpret only, no dispatch.
// Lets the UI show what would happen before the user confirms.
func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	req, _, at, ok := s.decodeChat(w, r)
	if !ok {
		return
	}

	cmd, err := s.classifier.Interpret(req.Message, at)
	if err != nil {
		badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{Matched: cmd != nil, Command: cmd})
}

func (s *Server) decodeChat(w http.ResponseWriter, r *http.Request) (ChatRequest, uuid.UUID, time.Time, bool) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, fmt.Errorf("invalid JSON: %w", err))
		return req, uuid.Nil, time.Time{}, false
	}

	owner, err := uuid.Parse(req.OwnerUUID)
	if err != nil {
		badRequest(w, fmt.Errorf("invalid owner_uuid: %w", err))
		return req, uuid.Nil, time.Time{}, false
	}

	at := time.Now().UTC()
	if req.SentAt != "" {
		t, err := time.Parse(time.RFC3339, req.SentAt)
		if err != nil {
			badRequest(w, fmt.Errorf("invalid sent_at: %w", err))
			return req, uuid.Nil, time.Time{}, false
		}
		at = t
	}
	return req, owner, at, true
}

func badRequest(w http.ResponseWriter, err error) {
	http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

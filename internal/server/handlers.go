package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/lumiere-weddings/concierge/internal/chat"
	"github.com/lumiere-weddings/concierge/internal/llm"
	"github.com/lumiere-weddings/concierge/internal/models"
	"github.com/lumiere-weddings/concierge/internal/storage"
)

type chatRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"threadId,omitempty"`
}

type messageIDs struct {
	User      string `json:"user"`
	Assistant string `json:"assistant,omitempty"`
}

type chatResponse struct {
	OK             bool               `json:"ok"`
	ThreadID       string             `json:"threadId"`
	Reply          string             `json:"reply"`
	StructuredData *models.VendorLead `json:"structuredData,omitempty"`
	Meta           models.MessageMeta `json:"meta"`
	MessageIDs     messageIDs         `json:"messageIds"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ownerID := s.auth.Authenticate(r)
	if ownerID == "" {
		s.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	// A client disconnect must not abort server-side persistence; the
	// turn completes and durability is preserved either way.
	result, err := s.router.HandleChat(context.WithoutCancel(r.Context()), ownerID, req.ThreadID, req.Message)
	if err != nil {
		s.writeChatError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{
		OK:             true,
		ThreadID:       result.ThreadID,
		Reply:          result.Reply,
		StructuredData: result.Lead,
		Meta:           result.Meta,
		MessageIDs: messageIDs{
			User:      result.UserMessageID,
			Assistant: result.AssistantMessageID,
		},
	})
}

type vendorChatRequest struct {
	Message             string     `json:"message"`
	ConversationHistory []llm.Turn `json:"conversationHistory"`
}

type vendorChatResponse struct {
	Reply        string          `json:"reply"`
	Stage        string          `json:"stage"`
	Persona      string          `json:"persona"`
	Score        *int            `json:"score,omitempty"`
	Priority     models.Priority `json:"priority,omitempty"`
	BusinessName string          `json:"businessName,omitempty"`
	Category     string          `json:"category,omitempty"`
	Location     string          `json:"location,omitempty"`
	ContactName  string          `json:"contactName,omitempty"`
	ContactEmail string          `json:"contactEmail,omitempty"`
	Website      string          `json:"website,omitempty"`
}

func (s *Server) handleVendorChat(w http.ResponseWriter, r *http.Request) {
	var req vendorChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	result, err := s.router.HandleVendorTurn(context.WithoutCancel(r.Context()), chat.VendorTurn{
		Message: req.Message,
		History: req.ConversationHistory,
	})
	if err != nil {
		s.writeChatError(w, err)
		return
	}

	resp := vendorChatResponse{
		Reply:   result.Reply,
		Stage:   result.Stage,
		Persona: result.Persona,
	}
	if result.Lead != nil {
		score := result.Lead.Score
		resp.Score = &score
		resp.Priority = result.Lead.Priority
		resp.BusinessName = result.Lead.BusinessName
		resp.Category = result.Lead.Category
		resp.Location = result.Lead.Location
		resp.ContactName = result.Lead.ContactName
		resp.ContactEmail = result.Lead.ContactEmail
		resp.Website = result.Lead.Website
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// writeChatError maps the chat error taxonomy onto HTTP statuses.
// Authorization failures are explicit; everything else that reaches here is
// a hard failure the router could not degrade.
func (s *Server) writeChatError(w http.ResponseWriter, err error) {
	var validation *chat.ValidationError
	var persistence *chat.PersistenceError
	switch {
	case errors.Is(err, chat.ErrUnauthenticated):
		s.writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, storage.ErrNotThreadOwner):
		s.writeError(w, http.StatusForbidden, "thread belongs to another user")
	case errors.Is(err, storage.ErrThreadNotFound):
		s.writeError(w, http.StatusNotFound, "thread not found")
	case errors.As(err, &validation):
		s.writeError(w, http.StatusBadRequest, validation.Reason)
	case errors.As(err, &persistence):
		s.logger.Error("Chat turn failed on persistence", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to record your message, please try again")
	default:
		s.logger.Error("Chat turn failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{OK: false, Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

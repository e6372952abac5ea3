package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// ChatHandler serves the conversational endpoint.
type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// RegisterRoutes registers the chat route behind the auth middleware.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux, verifier contractx.TokenVerifier) {
	mux.Handle("POST /chat", authMiddleware(verifier)(http.HandlerFunc(h.handleChat)))
}

type chatRequest struct {
	Message string           `json:"message"`
	History []contractx.Turn `json:"history,omitempty"`
}

type chatResponse struct {
	Response any              `json:"response"`
	History  []contractx.Turn `json:"history"`
}

// handleChat runs one turn. Once orchestration starts the turn always
// completes with 200; only request-shape problems are client errors.
func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "body must be JSON")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	userID := userIDFrom(r.Context())
	reply, hist, err := h.svc.HandleMessage(r.Context(), userID, req.Message, req.History)
	if err != nil {
		if errors.Is(err, contractx.ErrValidation) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("chat turn failed")
		writeError(w, http.StatusInternalServerError, "internal", "could not handle the message")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: reply.Body(), History: hist})
}

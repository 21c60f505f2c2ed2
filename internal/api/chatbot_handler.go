package api

import (
	"net/http"

	"github.com/cradlewatch/cradlewatch/internal/ai"
	"github.com/cradlewatch/cradlewatch/internal/pkg/httputil"
)

type chatbotRequest struct {
	Message string        `json:"message"`
	History []ai.ChatTurn `json:"history"`
}

// HandleChatbot answers one parenting question for the authenticated
// guardian, with the client-held conversation history as context.
func (h *Handlers) HandleChatbot(w http.ResponseWriter, r *http.Request) {
	var req chatbotRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	if req.Message == "" {
		httputil.BadRequest(w, "message is required")
		return
	}

	reply, err := h.chat.ChatReply(r.Context(), req.History, req.Message)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"success": true,
		"reply":   reply,
	})
}

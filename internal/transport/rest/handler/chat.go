package handler

import (
	"encoding/json"
	"net/http"

	"formsmith/internal/model"
	"formsmith/internal/service"
	"formsmith/internal/transport/rest/middleware"
)

// ChatHandler handles the per-form chat history
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// AppendChatRequest is the request body for adding a chat message
type AppendChatRequest struct {
	FormID  string         `json:"formId"`
	Role    model.ChatRole `json:"role"`
	Content string         `json:"content"`
}

// History handles GET /v1/chat-history?formId=
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	formID := r.URL.Query().Get("formId")
	if formID == "" {
		writeError(w, http.StatusBadRequest, "formId is required")
		return
	}

	msgs, err := h.chatSvc.History(r.Context(), userID, formID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

// Append handles POST /v1/chat-history
func (h *ChatHandler) Append(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AppendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FormID == "" {
		writeError(w, http.StatusBadRequest, "formId is required")
		return
	}

	msg, err := h.chatSvc.Append(r.Context(), userID, req.FormID, model.ChatMessage{Role: req.Role, Content: req.Content})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

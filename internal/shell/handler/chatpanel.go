package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/chat"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/httputil"
)

// ChatHandler serves the messaging panel and the AI assistant mode.
type ChatHandler struct {
	chat   *chat.Client
	bot    *chat.BotSession
	logger *slog.Logger
}

// NewChatHandler creates the chat handler.
func NewChatHandler(chatClient *chat.Client, bot *chat.BotSession, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chat: chatClient, bot: bot, logger: logger}
}

// Conversations handles GET /chat/conversations.
func (h *ChatHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.chat.Conversations(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: conversations})
}

// Open handles GET /chat/conversations/{conversationId}.
func (h *ChatHandler) Open(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationId")

	conversation, messages, err := h.chat.Open(r.Context(), conversationID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"conversation": conversation,
		"messages":     messages,
	}})
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// Send handles POST /chat/conversations/{conversationId}/messages.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationId")

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	message, err := h.chat.Send(r.Context(), conversationID, req.Content)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: message})
}

// MarkRead handles PUT /chat/conversations/{conversationId}/read.
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationId")

	if err := h.chat.MarkRead(r.Context(), conversationID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{
		"conversationId": conversationID,
	}})
}

type askBotRequest struct {
	Message string `json:"message"`
}

// AskBot handles POST /chat/bot, the assistant mode with its own message
// list, independent of the human conversations.
func (h *ChatHandler) AskBot(w http.ResponseWriter, r *http.Request) {
	var req askBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	answer, err := h.bot.Ask(r.Context(), req.Message)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"answer":  answer,
		"history": h.bot.Messages(),
	}})
}

package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/api"
	apperrors "github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/errors"
)

// BotSession is the AI travel-assistant mode of the chat panel. It keeps its
// own message list, fully independent of the human-conversation state.
type BotSession struct {
	api *api.Client

	mu       sync.Mutex
	messages []Message
}

// NewBotSession creates a bot session over the shared API client.
func NewBotSession(apiClient *api.Client) *BotSession {
	return &BotSession{api: apiClient}
}

// botReply is the assistant endpoint's response shape.
type botReply struct {
	Reply   string `json:"reply"`
	Message string `json:"message"`
}

// Ask sends a prompt to the assistant and records both the prompt and the
// reply in the session's message list once the call resolves.
func (b *BotSession) Ask(ctx context.Context, prompt string) (*Message, error) {
	if prompt == "" {
		return nil, apperrors.InvalidInput("prompt is required")
	}
	if b.api.Vault().Token(ctx) == "" {
		return nil, apperrors.NotSignedIn()
	}

	body := map[string]string{"message": prompt}
	var raw json.RawMessage
	if err := b.api.Call(ctx, http.MethodPost, "/chat/bot", body, &raw); err != nil {
		return nil, err
	}

	replyText := ""
	if reply, ok := api.DecodeObject[botReply](raw); ok {
		replyText = reply.Reply
		if replyText == "" {
			replyText = reply.Message
		}
	}

	now := time.Now().UTC()
	question := Message{ID: uuid.New().String(), Content: prompt, Sender: "user", Timestamp: now}
	answer := Message{ID: uuid.New().String(), Content: replyText, Sender: "bot", Timestamp: now}

	b.mu.Lock()
	b.messages = append(b.messages, question, answer)
	b.mu.Unlock()

	return &answer, nil
}

// Messages returns the bot session's message list.
func (b *BotSession) Messages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Message, len(b.messages))
	copy(out, b.messages)
	return out
}

// Reset clears the bot session's message list.
func (b *BotSession) Reset() {
	b.mu.Lock()
	b.messages = nil
	b.mu.Unlock()
}

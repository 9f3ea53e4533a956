// Package chat is the messaging panel's client: it fetches and caches the
// signed-in account's conversations and messages for the lifetime of the
// process, never persisting them locally. An independent AI-bot mode lives
// in bot.go.
package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/api"
	apperrors "github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/errors"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/session"
)

// Participant is one side of a conversation.
type Participant struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Conversation is a thread between the signed-in account and a service
// provider or traveler. UnreadCount is kept per role so each side tracks its
// own unread messages.
type Conversation struct {
	ID           string         `json:"id"`
	Participants []Participant  `json:"participants"`
	ServiceType  string         `json:"serviceType"`
	LastMessage  string         `json:"lastMessage"`
	UnreadCount  map[string]int `json:"unreadCount"`
}

// Message is a single chat message.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Client drives the human-conversation side of the chat panel. All calls go
// through the shared API client; a missing token short-circuits to an
// explicit not-signed-in error before any request is issued.
type Client struct {
	api    *api.Client
	logger *slog.Logger

	mu            sync.Mutex
	conversations []Conversation
	openID        string
	messages      []Message
}

// NewClient creates a chat client over the shared API client.
func NewClient(apiClient *api.Client, logger *slog.Logger) *Client {
	return &Client{api: apiClient, logger: logger}
}

// requireSession returns an explicit error when no token is stored, instead
// of issuing a request that would 401.
func (c *Client) requireSession(ctx context.Context) error {
	if c.api.Vault().Token(ctx) == "" {
		return apperrors.NotSignedIn()
	}
	return nil
}

// Conversations fetches and caches the caller's conversation list.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	if err := c.requireSession(ctx); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.api.Call(ctx, http.MethodGet, "/chat/conversations", nil, &raw); err != nil {
		return nil, err
	}

	conversations := api.DecodeList[Conversation](raw)

	c.mu.Lock()
	c.conversations = conversations
	c.mu.Unlock()

	return conversations, nil
}

// Open fetches a conversation and its messages and makes it the open panel.
func (c *Client) Open(ctx context.Context, conversationID string) (*Conversation, []Message, error) {
	if err := c.requireSession(ctx); err != nil {
		return nil, nil, err
	}

	var rawConv json.RawMessage
	if err := c.api.Call(ctx, http.MethodGet, "/chat/conversations/"+conversationID, nil, &rawConv); err != nil {
		return nil, nil, err
	}
	conversation, ok := api.DecodeObject[Conversation](rawConv)
	if !ok {
		return nil, nil, apperrors.NotFound("conversation", conversationID)
	}

	var rawMsgs json.RawMessage
	if err := c.api.Call(ctx, http.MethodGet, "/chat/conversations/"+conversationID+"/messages", nil, &rawMsgs); err != nil {
		return nil, nil, err
	}
	messages := api.DecodeList[Message](rawMsgs)

	c.mu.Lock()
	c.openID = conversationID
	c.messages = messages
	c.mu.Unlock()

	return &conversation, messages, nil
}

// Send posts a message to the open conversation. The message is appended to
// the local cache only after the backend call resolves; there is no
// optimistic local copy to roll back.
func (c *Client) Send(ctx context.Context, conversationID, content string) (*Message, error) {
	if err := c.requireSession(ctx); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, apperrors.InvalidInput("message content is required")
	}

	body := map[string]string{"content": content}
	var raw json.RawMessage
	if err := c.api.Call(ctx, http.MethodPost, "/chat/conversations/"+conversationID+"/messages", body, &raw); err != nil {
		return nil, err
	}

	message, ok := api.DecodeObject[Message](raw)
	if !ok {
		message = Message{Content: content, Timestamp: time.Now().UTC()}
	}

	c.mu.Lock()
	if c.openID == conversationID {
		c.messages = append(c.messages, message)
	}
	c.mu.Unlock()

	return &message, nil
}

// MarkRead tells the backend the conversation is read, then patches only the
// current role's unread counter on the cached conversation. Other roles'
// counters are theirs to reset.
func (c *Client) MarkRead(ctx context.Context, conversationID string) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	if err := c.api.Call(ctx, http.MethodPut, "/chat/conversations/"+conversationID+"/read", nil, nil); err != nil {
		return err
	}

	role := c.api.Vault().Role(ctx)
	if role == session.RoleUnknown {
		return nil
	}

	c.mu.Lock()
	for i := range c.conversations {
		if c.conversations[i].ID == conversationID && c.conversations[i].UnreadCount != nil {
			c.conversations[i].UnreadCount[string(role)] = 0
			break
		}
	}
	c.mu.Unlock()

	return nil
}

// Cached returns the cached conversation list without a network call.
func (c *Client) Cached() []Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Conversation, len(c.conversations))
	copy(out, c.conversations)
	return out
}

// OpenMessages returns the cached messages of the open conversation.
func (c *Client) OpenMessages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

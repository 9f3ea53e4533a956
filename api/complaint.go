package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/validator"
	"github.com/WanderLanka/wanderlanka-web-app-sub001/storage"
)

// lastComplaintKey is the one-off storage pointer the complaints page keeps
// so it can highlight the most recently filed complaint after a reload.
const lastComplaintKey = "lastComplaintId"

// Complaint is a filed complaint against a booking or service.
type Complaint struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateComplaintInput is the complaint form payload.
type CreateComplaintInput struct {
	Subject     string `json:"subject" validate:"required,min=5,max=120"`
	Category    string `json:"category" validate:"required,oneof=booking payment service other"`
	Description string `json:"description" validate:"required,min=20,max=2000"`
	BookingID   string `json:"bookingId,omitempty"`
}

// Complaints lists the caller's complaints.
func (c *Client) Complaints(ctx context.Context) ([]Complaint, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodGet, "/complaints", nil, &raw); err != nil {
		return nil, err
	}
	return DecodeList[Complaint](raw), nil
}

// CreateComplaint files a complaint and remembers its id locally so the
// complaints page can point back at it.
func (c *Client) CreateComplaint(ctx context.Context, store storage.Store, input CreateComplaintInput) (*Complaint, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodPost, "/complaints", input, &raw); err != nil {
		return nil, err
	}

	complaint, ok := DecodeObject[Complaint](raw)
	if !ok {
		return nil, nil
	}

	if complaint.ID != "" && store != nil {
		// Best effort; losing the pointer only loses the highlight.
		_ = store.Set(ctx, lastComplaintKey, []byte(complaint.ID))
	}
	return &complaint, nil
}

// LastComplaintID returns the locally remembered id of the most recently
// filed complaint, or "".
func LastComplaintID(ctx context.Context, store storage.Store) string {
	data, err := store.Get(ctx, lastComplaintKey)
	if err != nil {
		return ""
	}
	return string(data)
}

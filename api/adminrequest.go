package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// AccountRequest is a provider's pending application for a platform account,
// reviewed on the admin dashboard.
type AccountRequest struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	RequestedFor string    `json:"requestedRole"`
	BusinessName string    `json:"businessName"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AccountRequests lists pending provider account applications.
func (c *Client) AccountRequests(ctx context.Context) ([]AccountRequest, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodGet, "/admin/requests", nil, &raw); err != nil {
		return nil, err
	}
	return DecodeList[AccountRequest](raw), nil
}

// ApproveAccountRequest approves a provider application.
func (c *Client) ApproveAccountRequest(ctx context.Context, requestID string) error {
	return c.Call(ctx, http.MethodPut, "/admin/requests/"+requestID+"/approve", nil, nil)
}

// RejectAccountRequest rejects a provider application with a reason.
func (c *Client) RejectAccountRequest(ctx context.Context, requestID, reason string) error {
	body := map[string]string{"reason": reason}
	return c.Call(ctx, http.MethodPut, "/admin/requests/"+requestID+"/reject", body, nil)
}

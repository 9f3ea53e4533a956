package api

import (
	"context"
	"net/http"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/validator"
)

// SubscribeInput is the landing-page newsletter form payload.
type SubscribeInput struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscribeNewsletter signs an email address up for the newsletter. Public:
// the landing page offers it to anonymous visitors.
func (c *Client) SubscribeNewsletter(ctx context.Context, input SubscribeInput) error {
	if err := validator.Validate(input); err != nil {
		return err
	}
	return c.Call(ctx, http.MethodPost, "/newsletter/subscribe", input, nil, Public())
}

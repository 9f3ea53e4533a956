package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/validator"
)

// Payment is a settled or pending charge against a booking.
type Payment struct {
	ID        string    `json:"id"`
	BookingID string    `json:"bookingId"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatePaymentInput is the checkout payload.
type CreatePaymentInput struct {
	BookingID string  `json:"bookingId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gte=0"`
	Method    string  `json:"method" validate:"required,oneof=card cash wallet"`
}

// Payments lists the caller's payments.
func (c *Client) Payments(ctx context.Context) ([]Payment, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodGet, "/payments", nil, &raw); err != nil {
		return nil, err
	}
	return DecodeList[Payment](raw), nil
}

// CreatePayment submits a payment for a booking.
func (c *Client) CreatePayment(ctx context.Context, input CreatePaymentInput) (*Payment, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodPost, "/payments", input, &raw); err != nil {
		return nil, err
	}

	payment, ok := DecodeObject[Payment](raw)
	if !ok {
		return nil, nil
	}
	return &payment, nil
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/validator"
)

// Booking statuses as the backend reports them.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking is a traveler's reservation for an accommodation, transport,
// or guide service.
type Booking struct {
	ID          string    `json:"id"`
	ServiceType string    `json:"serviceType"`
	ServiceID   string    `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	CheckIn     time.Time `json:"checkIn,omitempty"`
	CheckOut    time.Time `json:"checkOut,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateBookingInput is the booking form payload.
type CreateBookingInput struct {
	ServiceType string  `json:"serviceType" validate:"required,oneof=accommodation transport guide destination"`
	ServiceID   string  `json:"serviceId" validate:"required"`
	TotalAmount float64 `json:"totalAmount" validate:"gte=0"`
	CheckIn     string  `json:"checkIn,omitempty"`
	CheckOut    string  `json:"checkOut,omitempty"`
	Notes       string  `json:"notes,omitempty" validate:"max=500"`
}

// Bookings lists the caller's bookings.
func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodGet, "/bookings", nil, &raw); err != nil {
		return nil, err
	}
	return DecodeList[Booking](raw), nil
}

// CreateBooking submits a new booking.
func (c *Client) CreateBooking(ctx context.Context, input CreateBookingInput) (*Booking, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodPost, "/bookings", input, &raw); err != nil {
		return nil, err
	}

	booking, ok := DecodeObject[Booking](raw)
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

// UpdateBookingStatus moves a booking to a new status (provider dashboards
// confirm or complete, travelers cancel).
func (c *Client) UpdateBookingStatus(ctx context.Context, bookingID, status string) error {
	body := map[string]string{"status": status}
	return c.Call(ctx, http.MethodPut, "/bookings/"+bookingID+"/status", body, nil)
}

// CancelBooking cancels a booking.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	return c.UpdateBookingStatus(ctx, bookingID, BookingCancelled)
}

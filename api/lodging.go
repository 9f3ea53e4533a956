package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/validator"
)

// Hotel is an accommodation provider's property.
type Hotel struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Rating   float64 `json:"rating"`
	MinPrice float64 `json:"minPrice"`
}

// Room is a bookable room within a hotel.
type Room struct {
	ID           string  `json:"id"`
	HotelID      string  `json:"hotelId"`
	Name         string  `json:"name"`
	Capacity     int     `json:"capacity"`
	PricePerDay  float64 `json:"pricePerDay"`
	Availability bool    `json:"availability"`
}

// HotelInput is the create/update payload for a property.
type HotelInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	City        string `json:"city" validate:"required"`
	Description string `json:"description" validate:"max=2000"`
}

// RoomInput is the create/update payload for a room.
type RoomInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Capacity    int     `json:"capacity" validate:"required,gte=1,lte=20"`
	PricePerDay float64 `json:"pricePerDay" validate:"required,gte=0"`
}

// Hotels lists properties. Browsing is public; no session is required.
func (c *Client) Hotels(ctx context.Context) ([]Hotel, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodGet, "/hotels", nil, &raw, Public()); err != nil {
		return nil, err
	}
	return DecodeList[Hotel](raw), nil
}

// CreateHotel registers a new property for the signed-in provider.
func (c *Client) CreateHotel(ctx context.Context, input HotelInput) (*Hotel, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodPost, "/hotels", input, &raw); err != nil {
		return nil, err
	}
	hotel, ok := DecodeObject[Hotel](raw)
	if !ok {
		return nil, nil
	}
	return &hotel, nil
}

// UpdateHotel updates a property.
func (c *Client) UpdateHotel(ctx context.Context, hotelID string, input HotelInput) error {
	if err := validator.Validate(input); err != nil {
		return err
	}
	return c.Call(ctx, http.MethodPut, "/hotels/"+hotelID, input, nil)
}

// DeleteHotel removes a property.
func (c *Client) DeleteHotel(ctx context.Context, hotelID string) error {
	return c.Call(ctx, http.MethodDelete, "/hotels/"+hotelID, nil, nil)
}

// Rooms lists the rooms of a hotel.
func (c *Client) Rooms(ctx context.Context, hotelID string) ([]Room, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodGet, "/hotels/"+hotelID+"/rooms", nil, &raw, Public()); err != nil {
		return nil, err
	}
	return DecodeList[Room](raw), nil
}

// CreateRoom adds a room to a hotel.
func (c *Client) CreateRoom(ctx context.Context, hotelID string, input RoomInput) (*Room, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodPost, "/hotels/"+hotelID+"/rooms", input, &raw); err != nil {
		return nil, err
	}
	room, ok := DecodeObject[Room](raw)
	if !ok {
		return nil, nil
	}
	return &room, nil
}

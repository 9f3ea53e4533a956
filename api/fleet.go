package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/pkg/validator"
)

// Vehicle is a transport provider's vehicle.
type Vehicle struct {
	ID         string  `json:"id"`
	Model      string  `json:"model"`
	Type       string  `json:"type"`
	Seats      int     `json:"seats"`
	PricePerKm float64 `json:"pricePerKm"`
	Available  bool    `json:"available"`
}

// Driver is a transport provider's driver.
type Driver struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LicenseNumber string `json:"licenseNumber"`
	Phone         string `json:"phone"`
	Assigned      bool   `json:"assigned"`
}

// VehicleInput is the create/update payload for a vehicle.
type VehicleInput struct {
	Model      string  `json:"model" validate:"required,min=2,max=80"`
	Type       string  `json:"type" validate:"required,oneof=car van bus tuk"`
	Seats      int     `json:"seats" validate:"required,gte=1,lte=60"`
	PricePerKm float64 `json:"pricePerKm" validate:"required,gte=0"`
}

// DriverInput is the create/update payload for a driver.
type DriverInput struct {
	Name          string `json:"name" validate:"required,min=2,max=80"`
	LicenseNumber string `json:"licenseNumber" validate:"required,alphanum"`
	Phone         string `json:"phone" validate:"required,e164"`
}

// Vehicles lists the fleet. Browsing is public.
func (c *Client) Vehicles(ctx context.Context) ([]Vehicle, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodGet, "/vehicles", nil, &raw, Public()); err != nil {
		return nil, err
	}
	return DecodeList[Vehicle](raw), nil
}

// CreateVehicle registers a vehicle for the signed-in provider.
func (c *Client) CreateVehicle(ctx context.Context, input VehicleInput) (*Vehicle, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodPost, "/vehicles", input, &raw); err != nil {
		return nil, err
	}
	vehicle, ok := DecodeObject[Vehicle](raw)
	if !ok {
		return nil, nil
	}
	return &vehicle, nil
}

// UpdateVehicle updates a vehicle.
func (c *Client) UpdateVehicle(ctx context.Context, vehicleID string, input VehicleInput) error {
	if err := validator.Validate(input); err != nil {
		return err
	}
	return c.Call(ctx, http.MethodPut, "/vehicles/"+vehicleID, input, nil)
}

// DeleteVehicle removes a vehicle.
func (c *Client) DeleteVehicle(ctx context.Context, vehicleID string) error {
	return c.Call(ctx, http.MethodDelete, "/vehicles/"+vehicleID, nil, nil)
}

// Drivers lists the signed-in provider's drivers.
func (c *Client) Drivers(ctx context.Context) ([]Driver, error) {
	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodGet, "/drivers", nil, &raw); err != nil {
		return nil, err
	}
	return DecodeList[Driver](raw), nil
}

// CreateDriver registers a driver.
func (c *Client) CreateDriver(ctx context.Context, input DriverInput) (*Driver, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.Call(ctx, http.MethodPost, "/drivers", input, &raw); err != nil {
		return nil, err
	}
	driver, ok := DecodeObject[Driver](raw)
	if !ok {
		return nil, nil
	}
	return &driver, nil
}

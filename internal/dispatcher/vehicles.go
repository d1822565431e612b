package dispatcher

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// VehiclesResponse is a paged vehicle listing.
type VehiclesResponse struct {
	Envelope
	Vehicles   []Vehicle   `json:"vehicles"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// VehicleResponse holds one vehicle.
type VehicleResponse struct {
	Envelope
	Vehicle Vehicle `json:"vehicle"`
}

// VehicleFilters narrows ListVehicles results.
type VehicleFilters struct {
	Page        int
	Limit       int
	Status      string
	VehicleType string
	Brand       string
	Model       string
	Search      string
}

// ListVehicles returns vehicles matching the filters.
func (c *Client) ListVehicles(ctx context.Context, f VehicleFilters) (*VehiclesResponse, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.VehicleType != "" {
		q.Set("vehicle_type", f.VehicleType)
	}
	if f.Brand != "" {
		q.Set("brand", f.Brand)
	}
	if f.Model != "" {
		q.Set("model", f.Model)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}

	var out VehiclesResponse
	if err := c.do(ctx, http.MethodGet, pathWithQuery("admin/vehicles/list.php", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVehicle returns one vehicle by id.
func (c *Client) GetVehicle(ctx context.Context, id int) (*VehicleResponse, error) {
	path := "admin/vehicles/get.php?id=" + strconv.Itoa(id)
	var out VehicleResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateVehicleStatus approves or rejects a vehicle. rejectionReason is
// required when status is "rejected".
func (c *Client) UpdateVehicleStatus(ctx context.Context, vehicleID int, status, rejectionReason string) (*Envelope, error) {
	body := map[string]any{
		"vehicle_id": vehicleID,
		"status":     status,
	}
	if rejectionReason != "" {
		body["rejection_reason"] = rejectionReason
	}

	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPost, "admin/vehicles/update-status.php", body, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

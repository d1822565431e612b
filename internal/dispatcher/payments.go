package dispatcher

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PaymentsResponse is a paged payment listing.
type PaymentsResponse struct {
	Envelope
	Payments   []Payment   `json:"payments"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// PaymentResponse is returned by payment mutations.
type PaymentResponse struct {
	Envelope
	PaymentID int `json:"payment_id,omitempty"`
}

// PaymentFilters narrows ListPayments results.
type PaymentFilters struct {
	Page     int
	Limit    int
	Status   string
	DriverID int
}

// NewPayment is the payload for CreatePayment. Status defaults to "pending".
type NewPayment struct {
	DriverID      int    `json:"driver_id"`
	PlanID        int    `json:"plan_id"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	AdminNote     string `json:"admin_note,omitempty"`
}

// ListPayments returns payments matching the filters.
func (c *Client) ListPayments(ctx context.Context, f PaymentFilters) (*PaymentsResponse, error) {
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
	if f.DriverID > 0 {
		q.Set("driver_id", strconv.Itoa(f.DriverID))
	}

	var out PaymentsResponse
	if err := c.do(ctx, http.MethodGet, pathWithQuery("admin/payments/list.php", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DriverPayments returns all payments for one driver.
func (c *Client) DriverPayments(ctx context.Context, driverID int) (*PaymentsResponse, error) {
	return c.ListPayments(ctx, PaymentFilters{DriverID: driverID, Limit: 100})
}

// CreatePayment records a manual payment for a driver.
func (c *Client) CreatePayment(ctx context.Context, p NewPayment) (*PaymentResponse, error) {
	if p.Status == "" {
		p.Status = "pending"
	}
	var out PaymentResponse
	if err := c.do(ctx, http.MethodPost, "admin/payments/create.php", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApprovePayment marks a payment approved with an optional note.
func (c *Client) ApprovePayment(ctx context.Context, paymentID int, adminNote string) (*Envelope, error) {
	body := map[string]any{"payment_id": paymentID, "admin_note": adminNote}
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPut, "admin/payments/approve.php", body, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// RejectPayment marks a payment rejected; a note explaining why is required
// by the console workflow.
func (c *Client) RejectPayment(ctx context.Context, paymentID int, adminNote string) (*Envelope, error) {
	body := map[string]any{"payment_id": paymentID, "admin_note": adminNote}
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPut, "admin/payments/reject.php", body, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// UpdatePaymentStatus sets a payment's status directly.
func (c *Client) UpdatePaymentStatus(ctx context.Context, paymentID int, status string) (*Envelope, error) {
	body := map[string]any{"payment_id": paymentID, "status": status}
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPut, "admin/payments/update-status.php", body, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// DeletePayment removes a payment record completely.
func (c *Client) DeletePayment(ctx context.Context, paymentID int) (*Envelope, error) {
	body := map[string]int{"payment_id": paymentID}
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodDelete, "admin/payments/delete.php", body, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

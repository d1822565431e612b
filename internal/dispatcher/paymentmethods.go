package dispatcher

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PaymentMethodsResponse lists payment methods.
type PaymentMethodsResponse struct {
	Envelope
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	Pagination     *Pagination     `json:"pagination,omitempty"`
}

// PaymentMethodParams creates or updates a payment method. ID is ignored on
// create.
type PaymentMethodParams struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// PaymentMethodFilters narrows ListPaymentMethods results.
type PaymentMethodFilters struct {
	ShowDeleted bool
	Page        int
	Limit       int
}

// ListPaymentMethods returns the admin payment-method listing.
func (c *Client) ListPaymentMethods(ctx context.Context, f PaymentMethodFilters) (*PaymentMethodsResponse, error) {
	q := url.Values{}
	if f.ShowDeleted {
		q.Set("show_deleted", "true")
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	var out PaymentMethodsResponse
	if err := c.do(ctx, http.MethodGet, pathWithQuery("admin/payment-methods/list.php", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActivePaymentMethods returns the public list of active methods (no auth
// required).
func (c *Client) ActivePaymentMethods(ctx context.Context) (*PaymentMethodsResponse, error) {
	var out PaymentMethodsResponse
	if err := c.do(ctx, http.MethodGet, "payment-methods/list.php", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePaymentMethod adds a payment method.
func (c *Client) CreatePaymentMethod(ctx context.Context, p PaymentMethodParams) (*Envelope, error) {
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPost, "admin/payment-methods/create.php", p, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// UpdatePaymentMethod changes an existing payment method.
func (c *Client) UpdatePaymentMethod(ctx context.Context, p PaymentMethodParams) (*Envelope, error) {
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPut, "admin/payment-methods/update.php", p, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// DeletePaymentMethod soft-deletes a payment method by id.
func (c *Client) DeletePaymentMethod(ctx context.Context, id int) (*Envelope, error) {
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodDelete, "admin/payment-methods/delete.php", map[string]int{"id": id}, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

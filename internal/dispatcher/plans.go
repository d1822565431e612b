package dispatcher

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PlansResponse lists subscription plans.
type PlansResponse struct {
	Envelope
	Plans []Plan `json:"plans"`
}

// PlanParams creates or updates a plan. ID is ignored on create.
type PlanParams struct {
	ID           int     `json:"id,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	MaxPosts     int     `json:"max_posts"`
	DurationDays int     `json:"duration_days"`
}

// SubscriptionsResponse is a paged subscription listing.
type SubscriptionsResponse struct {
	Envelope
	Subscriptions []Subscription `json:"subscriptions"`
	Pagination    *Pagination    `json:"pagination,omitempty"`
}

// SubscriptionFilters narrows ListSubscriptions results.
type SubscriptionFilters struct {
	Page     int
	Limit    int
	PlanID   int
	IsActive string
}

// ListPlans returns all plans.
func (c *Client) ListPlans(ctx context.Context) (*PlansResponse, error) {
	var out PlansResponse
	if err := c.do(ctx, http.MethodGet, "admin/plans/list.php", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePlan adds a plan.
func (c *Client) CreatePlan(ctx context.Context, p PlanParams) (*Envelope, error) {
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPost, "admin/plans/create.php", p, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// UpdatePlan changes an existing plan.
func (c *Client) UpdatePlan(ctx context.Context, p PlanParams) (*Envelope, error) {
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPut, "admin/plans/update.php", p, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// DeletePlan removes a plan by id.
func (c *Client) DeletePlan(ctx context.Context, id int) (*Envelope, error) {
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodDelete, "admin/plans/delete.php", map[string]int{"id": id}, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// ListSubscriptions returns subscriptions matching the filters.
func (c *Client) ListSubscriptions(ctx context.Context, f SubscriptionFilters) (*SubscriptionsResponse, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.PlanID > 0 {
		q.Set("plan_id", strconv.Itoa(f.PlanID))
	}
	if f.IsActive != "" {
		q.Set("is_active", f.IsActive)
	}

	var out SubscriptionsResponse
	if err := c.do(ctx, http.MethodGet, pathWithQuery("admin/subscriptions/list.php", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSubscription assigns a driver to a plan starting on startDate
// (YYYY-MM-DD).
func (c *Client) CreateSubscription(ctx context.Context, driverID, planID int, startDate string) (*Envelope, error) {
	body := map[string]any{
		"driver_id":  driverID,
		"plan_id":    planID,
		"start_date": startDate,
	}
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPost, "admin/subscriptions/create.php", body, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// RemoveSubscription deactivates a subscription.
func (c *Client) RemoveSubscription(ctx context.Context, subscriptionID int) (*Envelope, error) {
	body := map[string]int{"subscription_id": subscriptionID}
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodDelete, "admin/subscriptions/remove.php", body, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

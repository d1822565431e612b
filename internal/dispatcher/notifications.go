package dispatcher

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// NotificationsResponse is a paged notification listing.
type NotificationsResponse struct {
	Envelope
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count,omitempty"`
	Pagination    *Pagination    `json:"pagination,omitempty"`
}

// NotificationFilters narrows ListNotifications results.
type NotificationFilters struct {
	Page       int
	Limit      int
	UnreadOnly bool
}

// ListNotifications returns the admin's notifications.
func (c *Client) ListNotifications(ctx context.Context, f NotificationFilters) (*NotificationsResponse, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.UnreadOnly {
		q.Set("unread_only", "true")
	}

	var out NotificationsResponse
	if err := c.do(ctx, http.MethodGet, pathWithQuery("admin/notifications/list.php", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkNotificationRead marks one notification read; id 0 marks all read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) (*Envelope, error) {
	body := map[string]any{}
	if id > 0 {
		body["notification_id"] = id
	}

	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPut, "admin/notifications/mark-read.php", body, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// CreateNotification publishes a custom announcement. Backend-driven
// notifications (payment, post events) are created server-side; this exists
// for manual announcements.
func (c *Client) CreateNotification(ctx context.Context, kind, message string, data map[string]any) (*Envelope, error) {
	body := map[string]any{"type": kind, "message": message, "data": data}
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPost, "admin/notifications/create.php", body, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

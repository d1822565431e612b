package dispatcher

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PostsResponse is a paged post listing.
type PostsResponse struct {
	Envelope
	Posts      []Post      `json:"posts"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// PostFilters narrows ListPosts results. IsActive uses -1 for "any".
type PostFilters struct {
	Page     int
	Limit    int
	DriverID int
	Country  int
	IsActive int
}

// PostUpdate carries the editable fields of a post.
type PostUpdate struct {
	FromCountry       int    `json:"from_country,omitempty"`
	ToCountry         int    `json:"to_country,omitempty"`
	FromToDeparture   string `json:"from_to_departure,omitempty"`
	ToFromReturn      string `json:"to_from_return,omitempty"`
	FromToDescription string `json:"from_to_description,omitempty"`
	ToFromDescription string `json:"to_from_description,omitempty"`
	PhoneVisible      *int   `json:"phone_visible,omitempty"`
	IsActive          *int   `json:"is_active,omitempty"`
}

// ListPosts returns trip posts matching the filters.
func (c *Client) ListPosts(ctx context.Context, f PostFilters) (*PostsResponse, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.DriverID > 0 {
		q.Set("driver_id", strconv.Itoa(f.DriverID))
	}
	if f.Country > 0 {
		q.Set("country", strconv.Itoa(f.Country))
	}
	if f.IsActive >= 0 {
		q.Set("is_active", strconv.Itoa(f.IsActive))
	}

	var out PostsResponse
	if err := c.do(ctx, http.MethodGet, pathWithQuery("admin/posts/list.php", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost edits a post by id.
func (c *Client) UpdatePost(ctx context.Context, postID int, u PostUpdate) (*Envelope, error) {
	path := "admin/posts/update.php?id=" + strconv.Itoa(postID)
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPut, path, u, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// DeletePost removes a post by id.
func (c *Client) DeletePost(ctx context.Context, postID int) (*Envelope, error) {
	path := "admin/posts/delete.php?id=" + strconv.Itoa(postID)
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

package dispatcher

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strconv"
)

// UserFilters narrows ListUsers results. Zero values are omitted.
type UserFilters struct {
	Page          int
	Limit         int
	Search        string
	Role          string
	Gender        string
	IsVerified    string
	IsBanned      string
	AccountStatus string
}

// UsersResponse is a paged user listing.
type UsersResponse struct {
	Envelope
	Users      []User      `json:"users"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// UserResponse holds one user plus their subscriptions.
type UserResponse struct {
	Envelope
	User          User           `json:"user"`
	Subscriptions []Subscription `json:"subscriptions,omitempty"`
}

// Photo is a document image attached to a new user. It travels as base64
// inside the JSON payload so user creation stays symmetric with the other
// JSON calls instead of requiring multipart.
type Photo struct {
	Filename string
	Data     []byte
}

// NewUser is the payload for CreateUser.
type NewUser struct {
	Name          string
	Email         string
	Password      string
	Role          string
	Phone         string
	DOB           string
	Gender        string
	PlaceOfLiving string

	FacePhoto          *Photo
	PassportPhoto      *Photo
	DriverLicensePhoto *Photo
}

// ListUsers returns users matching the filters.
func (c *Client) ListUsers(ctx context.Context, f UserFilters) (*UsersResponse, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	if f.Gender != "" {
		q.Set("gender", f.Gender)
	}
	if f.IsVerified != "" {
		q.Set("is_verified", f.IsVerified)
	}
	if f.IsBanned != "" {
		q.Set("is_banned", f.IsBanned)
	}
	if f.AccountStatus != "" {
		q.Set("account_status", f.AccountStatus)
	}

	var out UsersResponse
	if err := c.do(ctx, http.MethodGet, pathWithQuery("admin/users/list.php", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser returns one user by id, including their subscriptions.
func (c *Client) GetUser(ctx context.Context, id int) (*UserResponse, error) {
	var out UserResponse
	path := "admin/users/get.php?id=" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser registers a new driver or rider. Document photos are bundled
// into the JSON payload as base64 fields with their original filenames.
func (c *Client) CreateUser(ctx context.Context, u NewUser) (*UserResponse, error) {
	body := map[string]string{
		"name":            u.Name,
		"email":           u.Email,
		"password":        u.Password,
		"role":            u.Role,
		"phone":           u.Phone,
		"dob":             u.DOB,
		"gender":          u.Gender,
		"place_of_living": u.PlaceOfLiving,
	}
	encodePhoto(body, "face_photo_base64", "face_photo_filename", u.FacePhoto)
	encodePhoto(body, "passport_photo_base64", "passport_photo_filename", u.PassportPhoto)
	encodePhoto(body, "driver_license_base64", "driver_license_filename", u.DriverLicensePhoto)

	var out UserResponse
	if err := c.do(ctx, http.MethodPost, "admin/users/create.php", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser changes fields on an existing user. The map must include "id".
func (c *Client) UpdateUser(ctx context.Context, fields map[string]any) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPut, "admin/users/update.php", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user by id.
func (c *Client) DeleteUser(ctx context.Context, id int) (*Envelope, error) {
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodDelete, "admin/users/delete.php", map[string]int{"id": id}, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

func encodePhoto(body map[string]string, dataKey, nameKey string, p *Photo) {
	if p == nil {
		body[dataKey] = ""
		body[nameKey] = ""
		return
	}
	body[dataKey] = base64.StdEncoding.EncodeToString(p.Data)
	body[nameKey] = p.Filename
}

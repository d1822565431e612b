package dispatcher

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CountriesResponse lists countries.
type CountriesResponse struct {
	Envelope
	Countries  []Country   `json:"countries"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// CountryFilters narrows ListCountries results.
type CountryFilters struct {
	Page   int
	Limit  int
	Search string
}

// Countries returns the public country list (no auth required).
func (c *Client) Countries(ctx context.Context) (*CountriesResponse, error) {
	var out CountriesResponse
	if err := c.do(ctx, http.MethodGet, "countries/list.php", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCountries returns the admin country listing.
func (c *Client) ListCountries(ctx context.Context, f CountryFilters) (*CountriesResponse, error) {
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

	var out CountriesResponse
	if err := c.do(ctx, http.MethodGet, pathWithQuery("admin/countries/list.php", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCountry adds a country by name.
func (c *Client) CreateCountry(ctx context.Context, name string) (*Envelope, error) {
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPost, "admin/countries/create.php", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// UpdateCountry renames a country.
func (c *Client) UpdateCountry(ctx context.Context, id int, name string) (*Envelope, error) {
	body := map[string]any{"id": id, "name": name}
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodPut, "admin/countries/update.php", body, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

// DeleteCountry removes a country by id.
func (c *Client) DeleteCountry(ctx context.Context, id int) (*Envelope, error) {
	path := "admin/countries/delete.php?id=" + strconv.Itoa(id)
	var out struct{ Envelope }
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Envelope, nil
}

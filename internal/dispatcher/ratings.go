package dispatcher

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DriverRatingsResponse holds a driver's rating summary and reviews.
type DriverRatingsResponse struct {
	Envelope
	Driver     Admin       `json:"driver"`
	Stats      RatingStats `json:"stats"`
	Ratings    []Rating    `json:"ratings"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// DriverRatings returns ratings for one driver. page and limit default to
// 1 and 20 when zero.
func (c *Client) DriverRatings(ctx context.Context, driverID, page, limit int) (*DriverRatingsResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	q := url.Values{}
	q.Set("driver_id", strconv.Itoa(driverID))
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out DriverRatingsResponse
	if err := c.do(ctx, http.MethodGet, pathWithQuery("admin/drivers/ratings.php", q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

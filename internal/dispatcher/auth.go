package dispatcher

import (
	"context"
	"net/http"
)

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Envelope
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// Login authenticates an admin and persists the session on success.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "admin/login.php", body, &out); err != nil {
		return nil, err
	}

	if out.Token != "" {
		c.session.Save(Session{Token: out.Token, Admin: out.Admin})
	}
	return &out, nil
}

// Register creates an admin account and persists the session on success.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "admin/register.php", body, &out); err != nil {
		return nil, err
	}

	if out.Token != "" {
		c.session.Save(Session{Token: out.Token, Admin: out.Admin})
	}
	return &out, nil
}

// Logout clears the local session. The backend holds no server-side session
// state for the console, so no request is issued.
func (c *Client) Logout() {
	c.session.Clear()
}

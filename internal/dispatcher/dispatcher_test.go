package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(gatewayURL string) *Client {
	return New(Config{GatewayURL: gatewayURL}, nil, discardLogger())
}

func TestDo_SendsPathHeader(t *testing.T) {
	var gotPath, gotContentType string
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Header.Get(headerAPIPath)
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"success":true,"token":"t1","admin":{"id":1,"name":"A"}}`))
	}))
	defer gw.Close()

	c := newTestClient(gw.URL)

	if _, err := c.Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if gotPath != "admin/login.php" {
		t.Errorf("X-API-Path = %q, want admin/login.php", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
}

func TestDo_APIErrorOnFailureStatus(t *testing.T) {
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid token"}`))
	}))
	defer gw.Close()

	c := newTestClient(gw.URL)

	_, err := c.ListUsers(context.Background(), UserFilters{})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.Message != "Invalid token" {
		t.Errorf("Message = %q, want backend message surfaced", apiErr.Message)
	}
}

func TestDo_APIErrorOnEnvelopeFailure(t *testing.T) {
	// 200 OK with success=false is still an application failure.
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Plan not found"}`))
	}))
	defer gw.Close()

	c := newTestClient(gw.URL)

	_, err := c.ListPlans(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.Message != "Plan not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestDo_EmptyResponse(t *testing.T) {
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer gw.Close()

	c := newTestClient(gw.URL)

	_, err := c.ListUsers(context.Background(), UserFilters{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.Message != "Empty response from server" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestDo_InvalidJSON(t *testing.T) {
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<b>Fatal error</b>: something broke"))
	}))
	defer gw.Close()

	c := newTestClient(gw.URL)

	_, err := c.ListUsers(context.Background(), UserFilters{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if !strings.HasPrefix(apiErr.Message, "Invalid JSON response: ") {
		t.Errorf("Message = %q, want invalid JSON prefix", apiErr.Message)
	}
	if !strings.Contains(apiErr.Message, "Fatal error") {
		t.Errorf("Message = %q, want body snippet included", apiErr.Message)
	}
}

func TestDo_TransportError(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")

	_, err := c.ListUsers(context.Background(), UserFilters{})
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if tErr.Unwrap() == nil {
		t.Error("Unwrap() = nil, want wrapped cause")
	}
}

func TestDo_BearerTokenAfterLogin(t *testing.T) {
	var gotAuth string
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get(headerAPIPath) {
		case "admin/login.php":
			_, _ = w.Write([]byte(`{"success":true,"token":"tok-42","admin":{"id":1,"name":"A"}}`))
		default:
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"success":true,"users":[]}`))
		}
	}))
	defer gw.Close()

	c := newTestClient(gw.URL)

	if _, err := c.Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !c.IsAuthenticated() {
		t.Fatal("IsAuthenticated() = false after login")
	}

	if _, err := c.ListUsers(context.Background(), UserFilters{}); err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if gotAuth != "Bearer tok-42" {
		t.Errorf("Authorization = %q, want Bearer tok-42", gotAuth)
	}

	c.Logout()
	if c.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after logout")
	}
}

func TestDo_FallbackDevelopmentOnly(t *testing.T) {
	// The gateway answers 500; the backend answers fine. Only development
	// mode may take the direct path.
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"gateway broken"}`))
	}))
	defer gw.Close()

	var directHits int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		directHits++
		if r.URL.Path != "/admin/users/list.php" {
			t.Errorf("direct path = %q, want /admin/users/list.php", r.URL.Path)
		}
		if r.Header.Get(headerAPIPath) != "" {
			t.Error("direct call must not carry X-API-Path")
		}
		_, _ = w.Write([]byte(`{"success":true,"users":[]}`))
	}))
	defer backend.Close()

	dev := New(Config{
		GatewayURL:  gw.URL,
		UpstreamURL: backend.URL,
		Mode:        ModeDevelopment,
	}, nil, discardLogger())

	resp, err := dev.ListUsers(context.Background(), UserFilters{})
	if err != nil {
		t.Fatalf("ListUsers() with fallback error = %v", err)
	}
	if !resp.Success {
		t.Error("fallback response not used")
	}
	if directHits != 1 {
		t.Errorf("direct hits = %d, want 1", directHits)
	}

	prod := New(Config{
		GatewayURL:  gw.URL,
		UpstreamURL: backend.URL,
		Mode:        ModeProduction,
	}, nil, discardLogger())

	_, err = prod.ListUsers(context.Background(), UserFilters{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("production error = %T, want *APIError", err)
	}
	if directHits != 1 {
		t.Errorf("direct hits = %d, production must not bypass the gateway", directHits)
	}
}

func TestDo_FallbackKeepsGatewayResultWhenDirectFails(t *testing.T) {
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"message":"Backend server returned empty response"}`))
	}))
	defer gw.Close()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"backend down"}`))
	}))
	defer backend.Close()

	c := New(Config{
		GatewayURL:  gw.URL,
		UpstreamURL: backend.URL,
		Mode:        ModeDevelopment,
	}, nil, discardLogger())

	_, err := c.ListUsers(context.Background(), UserFilters{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	// The gateway's original failure wins when the direct retry also fails.
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want gateway's 502", apiErr.StatusCode)
	}
}

func TestAPIError_DefaultMessage(t *testing.T) {
	e := &APIError{StatusCode: 503}
	if got := e.Error(); got != "HTTP error! status: 503" {
		t.Errorf("Error() = %q", got)
	}

	e = &APIError{StatusCode: 503, Message: "down"}
	if got := e.Error(); got != "down" {
		t.Errorf("Error() = %q, want message", got)
	}
}

func TestImageURL(t *testing.T) {
	c := newTestClient("http://localhost:8080/gateway")

	got := c.ImageURL("drivers/5/face photo.jpg")
	want := "http://localhost:8080/gateway?path=uploads/image.php&image=drivers%2F5%2Fface+photo.jpg"
	if got != want {
		t.Errorf("ImageURL() = %q, want %q", got, want)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Load(); ok {
		t.Error("empty store reports a session")
	}

	s.Save(Session{Token: "t1", Admin: Admin{ID: 1, Name: "A"}})
	got, ok := s.Load()
	if !ok || got.Token != "t1" {
		t.Errorf("Load() = %+v, %v", got, ok)
	}

	s.Clear()
	if _, ok := s.Load(); ok {
		t.Error("cleared store still reports a session")
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("short"); got != "short" {
		t.Errorf("snippet() = %q", got)
	}

	long := strings.Repeat("x", 300)
	got := snippet(long)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("snippet() len = %d, want 200 chars plus ellipsis", len(got))
	}
}

func TestPathWithQuery(t *testing.T) {
	if got := pathWithQuery("admin/users/list.php", nil); got != "admin/users/list.php" {
		t.Errorf("pathWithQuery() = %q, want path unchanged", got)
	}
}

func TestListUsers_QueryBuilding(t *testing.T) {
	var gotPath string
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Header.Get(headerAPIPath)
		_, _ = w.Write([]byte(`{"success":true,"users":[]}`))
	}))
	defer gw.Close()

	c := newTestClient(gw.URL)

	_, err := c.ListUsers(context.Background(), UserFilters{
		Page:   2,
		Limit:  50,
		Role:   "driver",
		Search: "ali",
	})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}

	if !strings.HasPrefix(gotPath, "admin/users/list.php?") {
		t.Fatalf("path = %q, want query appended", gotPath)
	}
	for _, want := range []string{"page=2", "limit=50", "role=driver", "search=ali"} {
		if !strings.Contains(gotPath, want) {
			t.Errorf("path = %q, missing %q", gotPath, want)
		}
	}
}

func TestCreateUser_BundlesPhotos(t *testing.T) {
	var gotBody map[string]string
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"success":true,"user":{"id":9,"name":"B"}}`))
	}))
	defer gw.Close()

	c := newTestClient(gw.URL)

	resp, err := c.CreateUser(context.Background(), NewUser{
		Name:     "B",
		Email:    "b@c.d",
		Password: "pw",
		Role:     "driver",
		FacePhoto: &Photo{
			Filename: "face.jpg",
			Data:     []byte{1, 2, 3},
		},
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if resp.User.ID != 9 {
		t.Errorf("User.ID = %d, want 9", resp.User.ID)
	}

	if gotBody["face_photo_base64"] != "AQID" {
		t.Errorf("face_photo_base64 = %q, want AQID", gotBody["face_photo_base64"])
	}
	if gotBody["face_photo_filename"] != "face.jpg" {
		t.Errorf("face_photo_filename = %q", gotBody["face_photo_filename"])
	}
	// Absent photos travel as empty fields, not missing keys.
	if v, ok := gotBody["passport_photo_base64"]; !ok || v != "" {
		t.Errorf("passport_photo_base64 = %q, %v; want empty string present", v, ok)
	}
}

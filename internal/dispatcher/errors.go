package dispatcher

import "fmt"

// APIError is an application-level failure: the backend answered, but with a
// non-2xx status or an envelope carrying success=false. Message is the
// backend-provided message when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// TransportError is a connection-level failure: the request never produced a
// usable HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

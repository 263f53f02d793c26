package upstream

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodySnippet bounds how much of an error response body is kept.
const maxBodySnippet = 512

// Error is a non-success response (or transport failure) from an external service.
type Error struct {
	// Service names the upstream, e.g. "catalog" or "steam".
	Service string
	// Status is the HTTP status code, or 0 for transport errors and timeouts.
	Status int
	// Retryable reports whether the same call may succeed later.
	Retryable bool
	// Body holds the leading bytes of the response body, if any.
	Body string

	cause error
}

// NewError builds an Error for an HTTP status.
func NewError(service string, status int, body string) *Error {
	return &Error{
		Service:   service,
		Status:    status,
		Retryable: status == http.StatusTooManyRequests || status >= 500,
		Body:      body,
	}
}

// FromTransport wraps a transport level failure (dial, TLS, timeout).
func FromTransport(service string, err error) *Error {
	return &Error{Service: service, Retryable: true, cause: err}
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: request failed: %v", e.Service, e.cause)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Service, e.Status)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Check returns nil for 2xx responses and an *Error otherwise.
// The response body is read (bounded) but not closed.
func Check(service string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippet))
	return NewError(service, resp.StatusCode, string(snippet))
}

// IsRetryable reports whether err carries a retryable *Error.
func IsRetryable(err error) bool {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Retryable
	}
	return false
}

// NewHTTPClient returns a client with the given overall request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

package commerce

import (
	"errors"
	"net/http"
)

// ErrMissingAPIKey is returned before any network call when no API key is configured.
var ErrMissingAPIKey = errors.New("GHL_API_KEY is not configured")

const fallbackMessage = "commerce API error"

// APIError is the terminal failure of an order submission.
// Status is the last upstream HTTP status, or 502 when no response was received.
type APIError struct {
	Status   int
	Message  string
	Attempts int
	Err      error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// attemptError describes one failed attempt. status is zero when the request
// never produced a response.
type attemptError struct {
	status  int
	message string
	err     error
}

// transient reports whether the attempt may be retried. Only 5xx responses qualify.
func (a *attemptError) transient() bool {
	return a.status >= 500 && a.status < 600
}

func (a *attemptError) outcome() string {
	switch {
	case a.status == 0:
		return OutcomeTransportError
	case a.transient():
		return OutcomeTransient
	default:
		return OutcomeClientError
	}
}

func (a *attemptError) toAPIError(attempts int) *APIError {
	status := a.status
	if status == 0 {
		status = http.StatusBadGateway
	}
	message := a.message
	if message == "" && a.err != nil {
		message = a.err.Error()
	}
	if message == "" {
		message = fallbackMessage
	}
	return &APIError{
		Status:   status,
		Message:  message,
		Attempts: attempts,
		Err:      a.err,
	}
}

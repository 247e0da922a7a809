package agent

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportKind classifies generation backend failures.
type TransportKind string

const (
	// TransportUnreachable means the request never produced a response.
	TransportUnreachable TransportKind = "unreachable"
	// TransportStatus means the backend answered with a non-2xx status.
	TransportStatus TransportKind = "status"
	// TransportTimeout means the per-call deadline elapsed.
	TransportTimeout TransportKind = "timeout"
	// TransportDecode means the response body was not the expected envelope.
	TransportDecode TransportKind = "decode"
)

// TransportError reports a failed call to the generation backend.
type TransportError struct {
	Provider   string
	Kind       TransportKind
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case TransportStatus:
		return fmt.Sprintf("%s error: %d %s", e.Provider, e.StatusCode, e.Body)
	case TransportTimeout:
		return fmt.Sprintf("%s request timed out: %v", e.Provider, e.Err)
	case TransportDecode:
		return fmt.Sprintf("%s decode response: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr) && transportErr.Kind == TransportTimeout
}

// requestError classifies an error returned by HTTPDoer.Do.
func requestError(ctx context.Context, provider string, err error) *TransportError {
	kind := TransportUnreachable
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		kind = TransportTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = TransportTimeout
	}
	return &TransportError{Provider: provider, Kind: kind, Err: err}
}

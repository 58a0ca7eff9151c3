package catalog

import (
	"errors"
	"fmt"
)

// ErrNetwork matches every failure returned by Client, whether the request
// never completed or the server answered with a non-2xx status.
var ErrNetwork = errors.New("catalog network failure")

// NetworkError describes a failed call against the remote catalog.
type NetworkError struct {
	Op         string // list, get, update, create
	StatusCode int    // 0 when no response was received
	Body       []byte // raw response body for non-2xx answers
	Err        error  // transport or decode error, if any
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && len(e.Body) > 0:
		return fmt.Sprintf("catalog %s: status %d: %s", e.Op, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("catalog %s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("catalog %s: failed", e.Op)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is reports true for ErrNetwork so callers can test the failure class
// without caring about the concrete cause.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// Payload returns the server's error body verbatim, or "" if there was none.
func (e *NetworkError) Payload() string { return string(e.Body) }

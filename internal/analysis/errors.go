package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRepoURL and ErrMissingToken are precondition failures:
	// no network call is attempted without both.
	ErrMissingRepoURL = errors.New("no repository URL saved")
	ErrMissingToken   = errors.New("no access token saved")

	// ErrMalformedResponse means the endpoint answered 2xx with a body
	// that is not valid JSON.
	ErrMalformedResponse = errors.New("analysis response is not valid JSON")

	// ErrNoCachedData means a dialog was opened with nothing in the
	// store and no fallback fetch is configured for its kind.
	ErrNoCachedData = errors.New("no cached analysis data")
)

// RequestError is a non-2xx response from an analysis endpoint,
// carrying the server-supplied message when one was present.
type RequestError struct {
	Kind          Kind
	Status        int
	ServerMessage string
}

func (e *RequestError) Error() string {
	if e.ServerMessage != "" {
		return fmt.Sprintf("%s analysis failed: %s (status %d)", e.Kind, e.ServerMessage, e.Status)
	}
	return fmt.Sprintf("%s analysis failed with status %d", e.Kind, e.Status)
}

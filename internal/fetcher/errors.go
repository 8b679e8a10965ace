package fetcher

import (
	"fmt"
	"time"
)

// RemoteError reports that the origin answered with a non-2xx status or the
// transport failed before a response arrived. StatusCode is 0 in the latter
// case.
type RemoteError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("fetch error (status %d): %v", e.StatusCode, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// TimeoutError reports that the fetch did not finish within Timeout.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch timed out after %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// UnexpectedError covers everything else: malformed input, unsupported
// schemes, cancellation by the caller.
type UnexpectedError struct {
	URL string
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected fetch error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

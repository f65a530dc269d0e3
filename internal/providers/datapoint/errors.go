package datapoint

import "fmt"

// TransportError reports a request that could not be completed or returned a
// non-200 status. Requests are never retried.
type TransportError struct {
	Resource   string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s returned status %d: %s", e.Resource, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body that does not match the expected shape
type ParseError struct {
	Resource string
	Reason   string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decode %s response: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("unexpected %s response: %s", e.Resource, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

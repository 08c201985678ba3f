package api

import (
	"fmt"
)

// TransportError is returned when a request could not be sent or the server
// answered with a non-2xx status. StatusCode is 0 for network errors.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP error. method: %s, url: %s, err: %s", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("HTTP error. status code: %d, method: %s, url: %s", e.StatusCode, e.Method, e.URL)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse reports a 2xx response whose body carried no
	// usable text. The call is not retried; a retry would burn quota on
	// a request the server already accepted.
	ErrMalformedResponse = errors.New("invalid response structure from API")

	// ErrRetriesExhausted reports that every allowed attempt failed with
	// a transient status.
	ErrRetriesExhausted = errors.New("max retries reached, could not get a response from the API")
)

// APIError reports a non-retryable HTTP failure, typically a 4xx other
// than 429. Message holds the server's own description when the error
// body could be parsed.
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

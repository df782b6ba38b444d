package shopapi

import (
	"errors"
	"fmt"
)

var (
	// ErrAPIUnavailable indicates the shop API could not be reached
	ErrAPIUnavailable = errors.New("shopapi: service unavailable")
	// ErrAPIRequestFailed indicates the shop API answered with an error status
	ErrAPIRequestFailed = errors.New("shopapi: request failed")
	// ErrAPIInvalidResponse indicates a body that could not be decoded
	ErrAPIInvalidResponse = errors.New("shopapi: invalid response")
	// ErrProductNotFound indicates the API has no product with the requested id
	ErrProductNotFound = errors.New("shopapi: product not found")
)

// APIError is an error status returned by the shop API. Message holds the
// API's own explanation when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: HTTP %d", ErrAPIRequestFailed, e.StatusCode)
	}
	return fmt.Sprintf("%v: HTTP %d: %s", ErrAPIRequestFailed, e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrAPIRequestFailed
func (e *APIError) Unwrap() error {
	return ErrAPIRequestFailed
}

// UserMessage implements order.MessageCarrier
func (e *APIError) UserMessage() string {
	return e.Message
}

package client

import (
	"errors"
	"fmt"
	apperrors "travelbook/pkg/errors"
)

// ErrTransport marks failures talking to the API: network errors, non-2xx
// statuses and bodies that are not a GraphQL response.
var ErrTransport = errors.New("booking API unreachable")

// APIError is a GraphQL error returned by the booking API.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func transportError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTransport, fmt.Sprintf(format, args...))
}

func hasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

func IsNotFound(err error) bool {
	return hasCode(err, apperrors.CodeNotFound)
}

func IsValidation(err error) bool {
	return hasCode(err, apperrors.CodeValidation)
}

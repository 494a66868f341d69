package coingecko_common

import (
	"errors"
	"fmt"
)

// ProviderError is returned when the provider cannot be reached, answers
// with a non-2xx status, or the request times out. StatusCode is 0 when no
// response was received.
type ProviderError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider returned status %d: %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: provider request failed: %v", e.Operation, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the provider rejected the call with 429
func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == 429
}

// MalformedResponseError is returned when a 2xx body does not have the
// expected shape or lacks a required field.
type MalformedResponseError struct {
	Operation string
	Detail    string
	Err       error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed response: %s: %v", e.Operation, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: malformed response: %s", e.Operation, e.Detail)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// NewMalformed builds a MalformedResponseError
func NewMalformed(operation, detail string, err error) *MalformedResponseError {
	return &MalformedResponseError{Operation: operation, Detail: detail, Err: err}
}

// IsProviderError reports whether err wraps a *ProviderError
func IsProviderError(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}

// IsMalformedResponse reports whether err wraps a *MalformedResponseError
func IsMalformedResponse(err error) bool {
	var target *MalformedResponseError
	return errors.As(err, &target)
}

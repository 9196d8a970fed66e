package ai

import (
	"fmt"
	"time"
)

// ConfigurationError reports settings the service cannot start without.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", e.Field)
}

// TimeoutError is returned when the completion endpoint does not answer
// within the configured deadline.
type TimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("completion timed out after %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// UpstreamError is a non-success reply from the endpoint, or a transport
// failure before any reply (StatusCode 0). Detail holds the decoded body when
// the endpoint answered with JSON.
type UpstreamError struct {
	StatusCode int
	Body       string
	Detail     any
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("completion endpoint unreachable: %v", e.Err)
	}
	return fmt.Sprintf("completion endpoint returned status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedResponseError is a success status whose body lacks the expected
// choices[0].message.content field.
type MalformedResponseError struct {
	Reason string
	Body   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed completion response: %s", e.Reason)
}

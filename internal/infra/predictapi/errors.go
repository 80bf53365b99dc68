package predictapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// RequestError is a non-2xx answer from the prediction service.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("prediction request failed: status=%d", e.Status)
	}
	return fmt.Sprintf("prediction request failed: status=%d detail=%s", e.Status, e.Detail)
}

// TransportError is a failure before any response arrived.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "prediction transport failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Reason is the operator-facing description of the failure.
func (e *TransportError) Reason() string {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return "prediction request timed out"
	}
	if errors.Is(e.Err, context.Canceled) {
		return "prediction request was cancelled"
	}
	var urlErr *url.Error
	if errors.As(e.Err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return e.Err.Error()
}

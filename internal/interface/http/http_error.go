package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
	"github.com/yanqian/shelter-console/internal/domain/submission"
	apperrors "github.com/yanqian/shelter-console/pkg/errors"
)

const (
	codeInvalidRequest       = "invalid_request"
	codeInternal             = "internal_error"
	codeHistory              = "history_error"
	codeRateLimited          = "rate_limit_exceeded"
	codeStreamUnsupported    = "stream_unsupported"
	codeSubmissionInProgress = "submission_in_progress"
	codeSubmissionSuperseded = "submission_superseded"

	supersededMessage = "the submission was cancelled"
)

// statusByCode maps domain error codes onto transport statuses. Codes not
// listed here surface as 500.
var statusByCode = map[string]int{
	codeInvalidRequest:          http.StatusBadRequest,
	forecast.CodeInvalidInput:   http.StatusUnprocessableEntity,
	forecast.CodeRequestError:   http.StatusBadGateway,
	forecast.CodeTransportError: http.StatusBadGateway,
	codeSubmissionInProgress:    http.StatusConflict,
	codeSubmissionSuperseded:    http.StatusConflict,
	codeRateLimited:             http.StatusTooManyRequests,
	codeHistory:                 http.StatusInternalServerError,
}

// HTTPError is an error already bound to a status, for failures that never
// reach the domain (bad bodies, bad query strings, rate limits).
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError binds code to its mapped status.
func NewHTTPError(code, message string, err error) *HTTPError {
	return &HTTPError{Status: statusForCode(code), Code: code, Message: message, Err: err}
}

func statusForCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// asHTTPError resolves any handler error into the response envelope. Domain
// errors keep their code and user-facing message; anything else is opaque.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return &HTTPError{
			Status:  statusForCode(appErr.Code),
			Code:    appErr.Code,
			Message: appErr.Message,
			Err:     err,
		}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    codeInternal,
		Message: "something went wrong",
		Err:     err,
	}
}

// outcomeError turns a failed submission into an AppError carrying the code
// API clients branch on. It returns nil for a success.
func outcomeError(outcome submission.Outcome) error {
	switch outcome.Status {
	case submission.StatusSucceeded:
		return nil
	case submission.StatusInvalid:
		return apperrors.Wrap(forecast.CodeInvalidInput, outcome.Message, outcome.Err)
	case submission.StatusRequestFailed:
		return apperrors.Wrap(forecast.CodeRequestError, outcome.Message, outcome.Err)
	case submission.StatusTransportFailed:
		return apperrors.Wrap(forecast.CodeTransportError, outcome.Message, outcome.Err)
	case submission.StatusRejected:
		return apperrors.Wrap(codeSubmissionInProgress, outcome.Message, nil)
	default:
		return apperrors.Wrap(codeSubmissionSuperseded, supersededMessage, outcome.Err)
	}
}

func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

package forecast

import apperrors "github.com/yanqian/shelter-console/pkg/errors"

// Error codes shared by the submission flow.
const (
	CodeInvalidInput   = "invalid_input"
	CodeRequestError   = "request_error"
	CodeTransportError = "transport_error"
)

// GenericFailureMessage is shown when the service gives no usable detail.
const GenericFailureMessage = "Prediction failed"

// ValidationKind identifies which validation rule failed.
type ValidationKind int

const (
	MissingDate ValidationKind = iota + 1
	MissingSector
	InvalidTemperature
	TemperatureOutOfRange
)

var validationMessages = map[ValidationKind]string{
	MissingDate:           "Please select a date",
	MissingSector:         "Please select a sector",
	InvalidTemperature:    "Please enter a valid temperature",
	TemperatureOutOfRange: "Temperature must be between -50 and 50 degrees Celsius",
}

func (k ValidationKind) String() string {
	switch k {
	case MissingDate:
		return "missing_date"
	case MissingSector:
		return "missing_sector"
	case InvalidTemperature:
		return "invalid_temperature"
	case TemperatureOutOfRange:
		return "temperature_out_of_range"
	default:
		return "unknown"
	}
}

// ValidationError reports the first failed rule.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	return validationMessages[e.Kind]
}

func newValidationError(kind ValidationKind) error {
	verr := &ValidationError{Kind: kind}
	return apperrors.Wrap(CodeInvalidInput, verr.Error(), verr)
}

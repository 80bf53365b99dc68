package forecast

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Temperature bounds accepted before a request may be issued.
const (
	MinTemperature = -50.0
	MaxTemperature = 50.0
)

// Validate checks the form fields in order and stops at the first failure.
func Validate(in FormInput) (PredictionRequest, error) {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return PredictionRequest{}, newValidationError(MissingDate)
	}
	sector := strings.TrimSpace(in.Sector)
	if sector == "" {
		return PredictionRequest{}, newValidationError(MissingSector)
	}
	temp, ok := parseTemperature(in.Temperature)
	if !ok {
		return PredictionRequest{}, newValidationError(InvalidTemperature)
	}
	if temp < MinTemperature || temp > MaxTemperature {
		return PredictionRequest{}, newValidationError(TemperatureOutOfRange)
	}
	return PredictionRequest{Date: date, Sector: sector, MinTempCelsius: temp}, nil
}

func parseTemperature(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || isHexLiteral(trimmed) {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// isHexLiteral reports whether raw uses Go's hex float syntax, which
// ParseFloat accepts but a decimal temperature field never produces.
func isHexLiteral(raw string) bool {
	unsigned := strings.TrimLeft(raw, "+-")
	return strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X")
}

// ValidationKindOf extracts the failed rule from an error returned by Validate.
func ValidationKindOf(err error) (ValidationKind, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind, true
	}
	return 0, false
}

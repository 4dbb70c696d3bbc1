package validation

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"ride-analytics/internal/shared/apperrors"
)

// ValidateCoordinates validates latitude and longitude values
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateStringNotEmpty validates that a string is not empty
func ValidateStringNotEmpty(value, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// RequiredFloat parses a required numeric query parameter, reporting a
// bad-request error naming the parameter when it is missing or non-numeric.
func RequiredFloat(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is a required numeric query parameter", apperrors.ErrBadRequest, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be numeric", apperrors.ErrBadRequest, name)
	}
	// ParseFloat accepts "NaN" and "Inf"; neither is a usable query value.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number", apperrors.ErrBadRequest, name)
	}
	return v, nil
}

// RequiredInt parses a required integer query parameter (zone IDs).
func RequiredInt(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is a required integer query parameter", apperrors.ErrBadRequest, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", apperrors.ErrBadRequest, name)
	}
	return v, nil
}

// RequiredString fetches a required query parameter.
func RequiredString(q url.Values, name string) (string, error) {
	raw := q.Get(name)
	if raw == "" {
		return "", fmt.Errorf("%w: %s is a required query parameter", apperrors.ErrBadRequest, name)
	}
	return raw, nil
}

package samplesize

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorCode categorizes parameter errors.
type ErrorCode string

const (
	// ErrCodeInvalidParameter indicates an input outside its valid domain.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
)

// ErrInvalidParameter is the sentinel matched by errors.Is for every
// *ParamError.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError reports an input that would make a formula undefined.
type ParamError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Param is the name of the offending parameter (e.g. "precision").
	Param string

	// Value is the rejected value.
	Value float64

	// Message describes the valid domain.
	Message string
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%s: %s", e.Code, e.Param, strconv.FormatFloat(e.Value, 'g', -1, 64), e.Message)
}

// Is reports whether target is ErrInvalidParameter.
func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParameter && e.Code == ErrCodeInvalidParameter
}

// IsInvalidParameter returns true if err is, or wraps, a *ParamError.
func IsInvalidParameter(err error) bool {
	var pe *ParamError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeInvalidParameter
	}
	return false
}

func invalidParam(param string, value float64, message string) *ParamError {
	return &ParamError{
		Code:    ErrCodeInvalidParameter,
		Param:   param,
		Value:   value,
		Message: message,
	}
}

package models

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("resource not found")
	ErrSessionNotFound = errors.New("assessment session not found")
	ErrStepNotFound    = errors.New("assessment step not found")
	ErrForbidden       = errors.New("otp verification required")
	ErrUnauthorized    = errors.New("unauthorized")
	// ErrExternalService: сбой рендера PDF, почты или SMS. Наружу из SubmitStep не уходит.
	ErrExternalService = errors.New("external service failure")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrStepNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsAuthError(err error) bool {
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrUnauthorized)
}

func IsExternalServiceError(err error) bool {
	return errors.Is(err, ErrExternalService)
}

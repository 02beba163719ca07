package models

import "errors"

// Application-wide standard errors
var (
	// Common resource errors
	ErrNotFound         = errors.New("resource not found")
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrStepNotFound     = errors.New("step not found")

	// Request errors
	ErrValidation = errors.New("validation error")

	// General server errors
	ErrInternalServer = errors.New("internal server error")
)

package domain

import "errors"

var (
	// ErrValidation indicates a document is missing required fields or was
	// given input outside the accepted range.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition indicates a status change was attempted from a
	// state that does not permit it.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrAlreadyConverted indicates a second conversion attempt from a
	// source document that already has a conversion target recorded.
	ErrAlreadyConverted = errors.New("document already converted")

	// ErrComputation indicates a totals computation produced NaN or an
	// infinity and was rejected rather than propagated.
	ErrComputation = errors.New("totals computation failed")
)

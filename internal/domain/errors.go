// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidStimulationMode is returned when a stimulation mode is not
	// one of the closed set of supported modes.
	ErrInvalidStimulationMode = errors.New("invalid stimulation mode")

	// ErrInvalidInclusionType is returned when an inclusion type is not
	// one of the closed set of supported types.
	ErrInvalidInclusionType = errors.New("invalid inclusion type")

	// ErrInclusionNotFound is returned when an inclusion ID does not exist
	// in a tissue configuration.
	ErrInclusionNotFound = errors.New("inclusion not found")

	// ErrImplantFieldsMissing is returned when a tissue configuration claims
	// a metal implant but does not carry the implant depth/span fields.
	ErrImplantFieldsMissing = errors.New(
		"metal implant depth and span are required when an implant is present",
	)

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

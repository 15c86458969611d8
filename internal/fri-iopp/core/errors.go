package core

import "errors"

// Sentinel errors for the arithmetic layer. All of them indicate caller
// misuse rather than a protocol outcome; a failed proof verification is
// reported as a boolean, never as one of these.
var (
	// ErrFieldMismatch is returned when elements of different moduli are combined.
	ErrFieldMismatch = errors.New("field mismatch: operands belong to different fields")

	// ErrDivisionByZero is returned when dividing by the zero element.
	ErrDivisionByZero = errors.New("division by zero element")

	// ErrNotInvertible is returned when an element has no multiplicative inverse.
	ErrNotInvertible = errors.New("element is not invertible")

	// ErrMalformedInput is returned for inputs inconsistent with the protocol
	// schedule: empty polynomials, odd-size domains, bad layer counts.
	ErrMalformedInput = errors.New("malformed input")
)

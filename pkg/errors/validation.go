package errors

import (
	"math"
)

// maxDimension bounds every length accepted from profiles, flags and requests.
const maxDimension = 1e6

// ValidateDimension validates a width or height supplied by a user.
//
// Rules:
//   - Must be a finite number (no NaN, no ±Inf)
//   - Must not be negative
//   - Must not exceed 1e6 units
//
// Zero is accepted; whether a zero target is usable depends on the sizing
// handler, see [ValidateRatioTarget].
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidDimension, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidDimension, "%s cannot be negative (got %g)", name, v)
	}
	if v > maxDimension {
		return New(ErrCodeInvalidDimension, "%s too large (max %g)", name, float64(maxDimension))
	}
	return nil
}

// ValidatePadding validates a padding value for one side of the container.
func ValidatePadding(side string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidPadding, "padding %s must be a finite number", side)
	}
	if v < 0 {
		return New(ErrCodeInvalidPadding, "padding %s cannot be negative (got %g)", side, v)
	}
	if v > maxDimension {
		return New(ErrCodeInvalidPadding, "padding %s too large (max %g)", side, float64(maxDimension))
	}
	return nil
}

// ValidateRatioTarget rejects target sizes that make ratio-based handlers
// (fixedWidth, fixedHeight, semifixed, contain) divide by zero.
//
// The sizing engine itself applies IEEE-754 semantics and happily returns
// ±Inf or NaN; front-ends call this before selecting such a handler.
func ValidateRatioTarget(width, height float64) error {
	if width == 0 || height == 0 {
		return New(ErrCodeInvalidDimension, "target size %gx%g has a zero side; ratio-based sizing needs a non-zero target", width, height)
	}
	return nil
}

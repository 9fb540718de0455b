package iban

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedCode is returned when a code does not match its country pattern
	ErrMalformedCode = errors.New("malformed account code")
	// ErrUnknownCountry is returned when no pattern is registered for a code's country prefix
	ErrUnknownCountry = errors.New("unknown account code country")
)

// MalformedCodeError describes why a code was rejected. Expected and Got
// are set for length mismatches, Reason for everything else.
type MalformedCodeError struct {
	Code     string
	Expected int
	Got      int
	Reason   string
}

func (e *MalformedCodeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("IBAN format wrong: %s: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("IBAN number length wrong: expected %d, got %d", e.Expected, e.Got)
}

func (e *MalformedCodeError) Unwrap() error { return ErrMalformedCode }

// UnknownCountryError carries the unrecognised country prefix
type UnknownCountryError struct {
	Country string
	Code    string
}

func (e *UnknownCountryError) Error() string {
	return fmt.Sprintf("IBAN country not found: %s", e.Country)
}

func (e *UnknownCountryError) Unwrap() error { return ErrUnknownCountry }

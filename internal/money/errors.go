package money

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCurrency is returned when a currency has no rate in the converter
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrInvalidAmount is returned for negative amounts or amounts with more than two fractional digits
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidRate is returned when a rate is zero or negative
	ErrInvalidRate = errors.New("invalid rate")
)

// UnknownCurrencyError carries the currency code that could not be resolved
type UnknownCurrencyError struct {
	Currency Currency
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("currency not supported: %s", e.Currency)
}

func (e *UnknownCurrencyError) Unwrap() error { return ErrUnknownCurrency }

// InvalidAmountError carries the rejected amount as it was supplied
type InvalidAmountError struct {
	Amount string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount out of range: %s", e.Amount)
}

func (e *InvalidAmountError) Unwrap() error { return ErrInvalidAmount }

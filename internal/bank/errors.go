package bank

import (
	"errors"
	"fmt"
)

// ErrBankNotFound is returned when a bank lookup misses and creation was not requested
var ErrBankNotFound = errors.New("bank not found")

// NotFoundError carries the key of the missing bank
type NotFoundError struct {
	Country string
	Code    int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bank (%s-%d) was not found", e.Country, e.Code)
}

func (e *NotFoundError) Unwrap() error { return ErrBankNotFound }

package account

import (
	"errors"
	"fmt"

	"github.com/lox/bank-accounts/internal/money"
	"github.com/shopspring/decimal"
)

var (
	// ErrWrongAccountType is returned when a code is requested with a different kind than it was opened with
	ErrWrongAccountType = errors.New("wrong account type")
	// ErrIllegalAction is returned when an account kind forbids the operation
	ErrIllegalAction = errors.New("illegal account action")
	// ErrInsufficientFunds is returned when a current account debit exceeds the balance
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// WrongTypeError reports the kind an existing account has
type WrongTypeError struct {
	Code      string
	Existing  Kind
	Requested Kind
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("account %s type was %s, requested %s", e.Code, e.Existing, e.Requested)
}

func (e *WrongTypeError) Unwrap() error { return ErrWrongAccountType }

// IllegalActionError reports an operation the account kind does not allow
type IllegalActionError struct {
	Kind   Kind
	Action string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("%s is not allowed on a %s account", e.Action, e.Kind)
}

func (e *IllegalActionError) Unwrap() error { return ErrIllegalAction }

// InsufficientFundsError reports the balance a debit could not be covered by
type InsufficientFundsError struct {
	Currency money.Currency
	Balance  decimal.Decimal
	Amount   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %s %s, requested %s",
		e.Balance.StringFixed(money.Scale), e.Currency, e.Amount.StringFixed(money.Scale))
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

package account

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/lox/bank-accounts/internal/bank"
	"github.com/lox/bank-accounts/internal/money"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Account holds one balance per currency the converter knew when the
// account was opened. Its kind decides which credits and debits succeed.
type Account struct {
	mu         sync.Mutex
	code       string
	bank       bank.Bank
	number     *big.Int
	kind       Kind
	balances   map[money.Currency]decimal.Decimal
	creditUsed bool
	conv       *money.Converter
	opts       options
}

// New opens an account with a zero balance in every known currency
func New(kind Kind, code string, b bank.Bank, number *big.Int, conv *money.Converter, opts ...Option) *Account {
	balances := make(map[money.Currency]decimal.Decimal)
	for _, ccy := range conv.Currencies() {
		balances[ccy] = decimal.New(0, -money.Scale)
	}
	return &Account{
		code:     code,
		bank:     b,
		number:   new(big.Int).Set(number),
		kind:     kind,
		balances: balances,
		conv:     conv,
		opts:     buildOptions(opts),
	}
}

// Code returns the normalized account code
func (a *Account) Code() string { return a.code }

// Bank returns the bank as it was known when the account was opened
func (a *Account) Bank() bank.Bank { return a.bank }

// Number returns a copy of the account number
func (a *Account) Number() *big.Int { return new(big.Int).Set(a.number) }

// Kind returns the account kind
func (a *Account) Kind() Kind { return a.kind }

func (a *Account) String() string { return a.code }

// CreditUsed reports whether a credit account has used its one credit
func (a *Account) CreditUsed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.creditUsed
}

// Balance returns the stored balance in code
func (a *Account) Balance(code money.Currency) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	bal, ok := a.balances[code]
	if !ok {
		return decimal.Zero, &money.UnknownCurrencyError{Currency: code}
	}
	return bal, nil
}

// Balances returns a copy of every balance
func (a *Account) Balances() map[money.Currency]decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[money.Currency]decimal.Decimal, len(a.balances))
	for ccy, bal := range a.balances {
		out[ccy] = bal
	}
	return out
}

// Currencies returns the currencies the account holds a balance in, sorted
func (a *Account) Currencies() []money.Currency {
	a.mu.Lock()
	codes := make([]money.Currency, 0, len(a.balances))
	for ccy := range a.balances {
		codes = append(codes, ccy)
	}
	a.mu.Unlock()

	slices.Sort(codes)
	return codes
}

// BalanceAll returns the sum of every balance converted to code. Each
// balance is converted and rounded on its own and the sum is not rounded
// again.
func (a *Account) BalanceAll(code money.Currency) (decimal.Decimal, error) {
	if !a.conv.Has(code) {
		return decimal.Zero, &money.UnknownCurrencyError{Currency: code}
	}

	balances := a.Balances()
	sum := decimal.Zero
	for ccy, bal := range balances {
		converted, err := a.conv.Exchange(bal, ccy, code)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to convert %s balance: %w", ccy, err)
		}
		sum = sum.Add(converted)
	}
	return sum, nil
}

// Credit adds amount in code to the account
func (a *Account) Credit(amount decimal.Decimal, code money.Currency) error {
	if err := money.CheckRange(amount); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkCurrency(code); err != nil {
		return err
	}
	if a.kind == KindCredit {
		if a.creditUsed {
			return &IllegalActionError{Kind: a.kind, Action: "credit"}
		}
		a.creditUsed = true
	}
	a.deposit(amount, code)
	return nil
}

// Debit removes amount in code from the account
func (a *Account) Debit(amount decimal.Decimal, code money.Currency) error {
	if err := money.CheckRange(amount); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkCurrency(code); err != nil {
		return err
	}
	if a.kind == KindSavings {
		return &IllegalActionError{Kind: a.kind, Action: "debit"}
	}
	if err := a.checkFunds(amount, code); err != nil {
		return err
	}
	a.withdraw(amount, code)
	return nil
}

// Transfer debits amount in code from this account and credits it to
// target. When the target refuses the credit the debit is reverted.
func (a *Account) Transfer(amount decimal.Decimal, code money.Currency, target *Account) error {
	if err := a.Debit(amount, code); err != nil {
		return err
	}
	if err := target.Credit(amount, code); err != nil {
		a.mu.Lock()
		a.deposit(amount, code)
		a.mu.Unlock()
		return fmt.Errorf("transfer to %s refused: %w", target.code, err)
	}
	return nil
}

// ConvertBalance moves amount from the from balance into the to balance
// at the converter's rate. The credit side never consumes a credit
// account's one credit. Savings accounts allow it unless strict savings
// is enabled.
func (a *Account) ConvertBalance(amount decimal.Decimal, from, to money.Currency) error {
	converted, err := a.conv.Convert(amount, from, to)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkCurrency(from); err != nil {
		return err
	}
	if err := a.checkCurrency(to); err != nil {
		return err
	}
	if a.kind == KindSavings && a.opts.strictSavings {
		return &IllegalActionError{Kind: a.kind, Action: "convert"}
	}
	if err := a.checkFunds(amount, from); err != nil {
		return err
	}

	a.withdraw(amount, from)
	a.deposit(converted, to)
	return nil
}

func (a *Account) checkCurrency(code money.Currency) error {
	if _, ok := a.balances[code]; !ok {
		return &money.UnknownCurrencyError{Currency: code}
	}
	return nil
}

// checkFunds only limits current accounts; credit and savings balances may go negative.
func (a *Account) checkFunds(amount decimal.Decimal, code money.Currency) error {
	if a.kind != KindCurrent {
		return nil
	}
	if bal := a.balances[code]; amount.GreaterThan(bal) {
		return &InsufficientFundsError{Currency: code, Balance: bal, Amount: amount}
	}
	return nil
}

func (a *Account) deposit(amount decimal.Decimal, code money.Currency) {
	a.balances[code] = a.balances[code].Add(amount)
}

func (a *Account) withdraw(amount decimal.Decimal, code money.Currency) {
	a.balances[code] = a.balances[code].Sub(amount)
}

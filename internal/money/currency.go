package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is a three letter uppercase currency code such as EUR
type Currency string

// ParseCurrency normalizes s and checks that it looks like a currency code.
// It does not check whether the converter knows the currency.
func ParseCurrency(s string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != 3 {
		return "", &UnknownCurrencyError{Currency: Currency(s)}
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return "", &UnknownCurrencyError{Currency: Currency(s)}
		}
	}
	return Currency(code), nil
}

func (c Currency) String() string { return string(c) }

// CheckRange rejects negative amounts and amounts with more than two
// significant fractional digits. Trailing zeros do not count, so 1.500 is
// accepted.
func CheckRange(amount decimal.Decimal) error {
	if amount.IsNegative() || !amount.Equal(amount.Truncate(2)) {
		return &InvalidAmountError{Amount: amount.String()}
	}
	return nil
}

// ParseAmount parses a decimal string and applies CheckRange
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &InvalidAmountError{Amount: s}
	}
	if err := CheckRange(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

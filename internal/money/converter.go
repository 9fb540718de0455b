package money

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// DefaultBase is the pivot currency used when none is configured
const DefaultBase Currency = "EUR"

// Scale is the number of fractional digits kept by conversions
const Scale = 2

// Rate holds the multipliers between a currency and the base currency.
// An amount in the currency times ToBase gives the amount in base, and an
// amount in base times FromBase gives the amount in the currency.
type Rate struct {
	ToBase   decimal.Decimal
	FromBase decimal.Decimal
}

// Converter converts amounts between currencies through a single base currency
type Converter struct {
	mu     sync.RWMutex
	base   Currency
	rates  map[Currency]Rate
	logger *log.Logger
}

// NewConverter creates an empty converter pivoting on base. The base
// currency is only known once a rate has been set for it.
func NewConverter(base Currency, logger *log.Logger) *Converter {
	if base == "" {
		base = DefaultBase
	}
	return &Converter{
		base:   base,
		rates:  make(map[Currency]Rate),
		logger: logger,
	}
}

// Base returns the pivot currency
func (c *Converter) Base() Currency {
	return c.base
}

// SetRate adds or replaces the rate for code. Both multipliers must be positive.
func (c *Converter) SetRate(code Currency, toBase, fromBase decimal.Decimal) error {
	if !toBase.IsPositive() || !fromBase.IsPositive() {
		return fmt.Errorf("%w: %s %s/%s", ErrInvalidRate, code, toBase, fromBase)
	}

	c.mu.Lock()
	c.rates[code] = Rate{ToBase: toBase, FromBase: fromBase}
	c.mu.Unlock()

	c.logger.Debug("Set rate", "currency", code, "to_base", toBase, "from_base", fromBase)
	return nil
}

// Has reports whether code has a rate
func (c *Converter) Has(code Currency) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rates[code]
	return ok
}

// Currencies returns every known currency in sorted order
func (c *Converter) Currencies() []Currency {
	c.mu.RLock()
	codes := make([]Currency, 0, len(c.rates))
	for code := range c.rates {
		codes = append(codes, code)
	}
	c.mu.RUnlock()

	slices.Sort(codes)
	return codes
}

// Rates returns a copy of the rate table
func (c *Converter) Rates() map[Currency]Rate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[Currency]Rate, len(c.rates))
	for code, rate := range c.rates {
		out[code] = rate
	}
	return out
}

func (c *Converter) rate(code Currency) (Rate, error) {
	r, ok := c.rates[code]
	if !ok {
		return Rate{}, &UnknownCurrencyError{Currency: code}
	}
	return r, nil
}

// RateToBase returns the multiplier from code to the base currency
func (c *Converter) RateToBase(code Currency) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, err := c.rate(code)
	if err != nil {
		return decimal.Zero, err
	}
	return r.ToBase, nil
}

// RateFromBase returns the multiplier from the base currency to code
func (c *Converter) RateFromBase(code Currency) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, err := c.rate(code)
	if err != nil {
		return decimal.Zero, err
	}
	return r.FromBase, nil
}

// ToBase converts amount in code to the base currency, rounded to two places
func (c *Converter) ToBase(amount decimal.Decimal, code Currency) (decimal.Decimal, error) {
	rate, err := c.RateToBase(code)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(Scale), nil
}

// FromBase converts amount in the base currency to code, rounded to two places
func (c *Converter) FromBase(amount decimal.Decimal, code Currency) (decimal.Decimal, error) {
	rate, err := c.RateFromBase(code)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(Scale), nil
}

// Convert converts an externally supplied amount from one currency to
// another. Both currencies must be known and the amount must pass
// CheckRange. Converting to the same currency returns amount unchanged.
// The intermediate base amount is not rounded.
func (c *Converter) Convert(amount decimal.Decimal, from, to Currency) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fromRate, err := c.rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := c.rate(to)
	if err != nil {
		return decimal.Zero, err
	}
	if err := CheckRange(amount); err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return amount, nil
	}
	return amount.Mul(fromRate.ToBase).Mul(toRate.FromBase).Round(Scale), nil
}

// Exchange converts a stored balance, which may be negative or carry any
// scale, from one currency to another and rounds to two places.
func (c *Converter) Exchange(amount decimal.Decimal, from, to Currency) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fromRate, err := c.rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := c.rate(to)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return amount, nil
	}
	return amount.Mul(fromRate.ToBase).Mul(toRate.FromBase).Round(Scale), nil
}

package refdata

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go

import (
	"context"

	"github.com/lox/bank-accounts/internal/money"
	"github.com/shopspring/decimal"
)

// BankRecord describes a bank as it is stored in reference data
type BankRecord struct {
	Country string
	Code    int
	BIC     string
	Name    string
	Address string
}

// RateRecord holds the base currency multipliers for one currency
type RateRecord struct {
	Currency money.Currency
	ToBase   decimal.Decimal
	FromBase decimal.Decimal
}

// PatternRecord is a labelled account code pattern
type PatternRecord struct {
	Label   string
	Pattern string
}

// Source provides the reference data needed to resolve accounts and convert money
type Source interface {
	// Banks returns every known bank
	Banks(ctx context.Context) ([]BankRecord, error)
	// Rates returns the rate of every supported currency
	Rates(ctx context.Context) ([]RateRecord, error)
	// Patterns returns the account code pattern of every supported country
	Patterns(ctx context.Context) ([]PatternRecord, error)
}

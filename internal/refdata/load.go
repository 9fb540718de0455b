package refdata

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/account"
	"github.com/lox/bank-accounts/internal/bank"
	"golang.org/x/sync/errgroup"
)

// Data is a snapshot of everything a Source provides
type Data struct {
	Banks    []BankRecord
	Rates    []RateRecord
	Patterns []PatternRecord
}

// Load fetches banks, rates and patterns from src concurrently
func Load(ctx context.Context, src Source, logger *log.Logger) (*Data, error) {
	var data Data

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		banks, err := src.Banks(ctx)
		if err != nil {
			return fmt.Errorf("failed to load banks: %w", err)
		}
		data.Banks = banks
		return nil
	})
	g.Go(func() error {
		rates, err := src.Rates(ctx)
		if err != nil {
			return fmt.Errorf("failed to load rates: %w", err)
		}
		data.Rates = rates
		return nil
	})
	g.Go(func() error {
		patterns, err := src.Patterns(ctx)
		if err != nil {
			return fmt.Errorf("failed to load patterns: %w", err)
		}
		data.Patterns = patterns
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("Loaded reference data", "banks", len(data.Banks), "rates", len(data.Rates), "patterns", len(data.Patterns))
	return &data, nil
}

// Install sets the rates, banks and patterns on reg. Rates go first so
// accounts opened afterwards hold a balance for every currency.
func (d *Data) Install(reg *account.Registry) error {
	conv := reg.Converter()
	for _, r := range d.Rates {
		if err := conv.SetRate(r.Currency, r.ToBase, r.FromBase); err != nil {
			return err
		}
	}

	banks := reg.Banks()
	for _, b := range d.Banks {
		banks.Put(bank.Bank{
			Country: b.Country,
			Code:    b.Code,
			BIC:     b.BIC,
			Name:    b.Name,
			Address: b.Address,
		})
	}

	for _, p := range d.Patterns {
		if err := reg.RegisterPattern(p.Label, p.Pattern); err != nil {
			return fmt.Errorf("failed to register pattern %s: %w", p.Label, err)
		}
	}
	return nil
}

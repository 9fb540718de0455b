package account

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/bank"
	"github.com/lox/bank-accounts/internal/iban"
	"github.com/lox/bank-accounts/internal/money"
	"golang.org/x/exp/slices"
)

// Registry resolves account codes to accounts, opening them on first use.
// A code always maps to the same account and that account keeps the kind
// it was opened with.
type Registry struct {
	mu       sync.RWMutex
	conv     *money.Converter
	banks    *bank.Registry
	parsers  map[string]*iban.Parser
	accounts map[string]*Account
	logger   *log.Logger
	opts     []Option
}

// NewRegistry creates an account registry. Options are applied to every
// account it opens.
func NewRegistry(conv *money.Converter, banks *bank.Registry, logger *log.Logger, opts ...Option) *Registry {
	return &Registry{
		conv:     conv,
		banks:    banks,
		parsers:  make(map[string]*iban.Parser),
		accounts: make(map[string]*Account),
		logger:   logger,
		opts:     opts,
	}
}

// Converter returns the converter accounts are valued with
func (r *Registry) Converter() *money.Converter { return r.conv }

// Banks returns the bank registry codes are resolved against
func (r *Registry) Banks() *bank.Registry { return r.banks }

// RegisterParser installs p for its country, replacing any earlier parser
func (r *Registry) RegisterParser(p *iban.Parser) {
	r.mu.Lock()
	r.parsers[p.Country()] = p
	r.mu.Unlock()

	r.logger.Debug("Registered code pattern", "country", p.Country(), "label", p.Label(), "length", p.Len())
}

// RegisterPattern builds a parser from pattern and installs it
func (r *Registry) RegisterPattern(label, pattern string) error {
	p, err := iban.NewParser(label, pattern)
	if err != nil {
		return err
	}
	r.RegisterParser(p)
	return nil
}

// Parser returns the parser registered for country
func (r *Registry) Parser(country string) (*iban.Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[country]
	return p, ok
}

// Countries returns the countries with a registered pattern, sorted
func (r *Registry) Countries() []string {
	r.mu.RLock()
	countries := make([]string, 0, len(r.parsers))
	for country := range r.parsers {
		countries = append(countries, country)
	}
	r.mu.RUnlock()

	slices.Sort(countries)
	return countries
}

// Account returns the account for code, opening it with kind when it does
// not exist yet. Requesting an existing account with another kind fails
// with a *WrongTypeError.
func (r *Registry) Account(code string, kind Kind) (*Account, error) {
	normalized := iban.Normalize(code)
	if len(normalized) < 2 {
		return nil, &iban.MalformedCodeError{Code: normalized, Reason: "missing country prefix"}
	}

	country := normalized[:2]
	p, ok := r.Parser(country)
	if !ok {
		return nil, &iban.UnknownCountryError{Country: country, Code: normalized}
	}

	number, err := p.ParseAccountNumber(normalized)
	if err != nil {
		return nil, err
	}
	b, err := p.ResolveBank(normalized, r.banks)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if acc, ok := r.accounts[normalized]; ok {
		if acc.Kind() != kind {
			return nil, &WrongTypeError{Code: normalized, Existing: acc.Kind(), Requested: kind}
		}
		return acc, nil
	}

	acc := New(kind, normalized, b, number, r.conv, r.opts...)
	r.accounts[normalized] = acc
	r.logger.Debug("Opened account", "code", normalized, "kind", kind, "bank", b.Key())
	return acc, nil
}

// CurrentAccount returns the current account for code
func (r *Registry) CurrentAccount(code string) (*Account, error) {
	return r.Account(code, KindCurrent)
}

// CreditAccount returns the credit account for code
func (r *Registry) CreditAccount(code string) (*Account, error) {
	return r.Account(code, KindCredit)
}

// SavingsAccount returns the savings account for code
func (r *Registry) SavingsAccount(code string) (*Account, error) {
	return r.Account(code, KindSavings)
}

// Lookup returns an already opened account without opening a new one
func (r *Registry) Lookup(code string) (*Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[iban.Normalize(code)]
	return acc, ok
}

// Accounts returns every opened account ordered by code
func (r *Registry) Accounts() []*Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.accounts))
	for code := range r.accounts {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	accounts := make([]*Account, 0, len(codes))
	for _, code := range codes {
		accounts = append(accounts, r.accounts[code])
	}
	return accounts
}

// Bank returns a known bank without creating it
func (r *Registry) Bank(country string, code int) (bank.Bank, error) {
	return r.banks.Get(country, code, false)
}

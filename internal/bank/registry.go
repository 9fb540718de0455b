package bank

import (
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

// Registry maintains the known banks, grouped by country
type Registry struct {
	mu     sync.RWMutex
	banks  map[string]map[int]Bank
	logger *log.Logger
}

// NewRegistry creates an empty bank registry
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		banks:  make(map[string]map[int]Bank),
		logger: logger,
	}
}

// Put adds a bank or replaces the descriptive fields of an existing one
func (r *Registry) Put(b Bank) {
	r.mu.Lock()
	defer r.mu.Unlock()

	country, ok := r.banks[b.Country]
	if !ok {
		country = make(map[int]Bank)
		r.banks[b.Country] = country
	}
	country[b.Code] = b
}

// Find returns a bank by country and code without creating it
func (r *Registry) Find(country string, code int) (Bank, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.banks[country][code]
	return b, ok
}

// Get returns a bank by country and code. When create is true a missing
// bank is added with only its key populated, otherwise a miss returns a
// *NotFoundError.
func (r *Registry) Get(country string, code int, create bool) (Bank, error) {
	if b, ok := r.Find(country, code); ok {
		return b, nil
	}
	if !create {
		return Bank{}, &NotFoundError{Country: country, Code: code}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	banks, ok := r.banks[country]
	if !ok {
		banks = make(map[int]Bank)
		r.banks[country] = banks
	}
	if b, ok := banks[code]; ok {
		return b, nil
	}

	b := Bank{Country: country, Code: code}
	banks[code] = b
	r.logger.Debug("Created bank on demand", "country", country, "code", code)
	return b, nil
}

// Banks returns the banks of a country ordered by code
func (r *Registry) Banks(country string) []Bank {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]int, 0, len(r.banks[country]))
	for code := range r.banks[country] {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	banks := make([]Bank, 0, len(codes))
	for _, code := range codes {
		banks = append(banks, r.banks[country][code])
	}
	return banks
}

// Countries returns the countries that have at least one bank, sorted
func (r *Registry) Countries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	countries := make([]string, 0, len(r.banks))
	for country, banks := range r.banks {
		if len(banks) > 0 {
			countries = append(countries, country)
		}
	}
	slices.Sort(countries)
	return countries
}

// Len returns the number of banks across all countries
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, banks := range r.banks {
		n += len(banks)
	}
	return n
}

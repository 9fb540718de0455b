package bank

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Bank is a bank identified by its country and numeric code. The other
// fields are descriptive and may be empty for banks created on demand.
type Bank struct {
	Country string
	Code    int
	BIC     string
	Name    string
	Address string
}

// Key identifies a bank within the registry
type Key struct {
	Country string
	Code    int
}

func (k Key) String() string {
	return fmt.Sprintf("%s-%d", k.Country, k.Code)
}

// Key returns the identity of the bank
func (b Bank) Key() Key {
	return Key{Country: b.Country, Code: b.Code}
}

// Equal reports whether two banks share an identity. Descriptive fields are ignored.
func (b Bank) Equal(o Bank) bool {
	return b.Key() == o.Key()
}

// CountryName returns the English display name of the bank's country, or
// the raw country code when it is not a known region.
func (b Bank) CountryName() string {
	region, err := language.ParseRegion(b.Country)
	if err != nil {
		return b.Country
	}
	if name := display.Regions(language.English).Name(region); name != "" {
		return name
	}
	return b.Country
}

func (b Bank) String() string {
	if b.Name != "" {
		return b.Name
	}
	bic := ""
	if b.BIC != "" {
		bic = fmt.Sprintf(" (%s)", b.BIC)
	}
	return fmt.Sprintf("Bank#%d%s, %s", b.Code, bic, b.CountryName())
}

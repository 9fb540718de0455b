package iban

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/lox/bank-accounts/internal/bank"
)

// Pattern markers
const (
	BankMarker    = 'b'
	AccountMarker = 'c'
)

// Normalize strips whitespace from a code and upper-cases it
func Normalize(code string) string {
	return strings.ToUpper(stripSpace(code))
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Parser extracts the bank code and account number from codes of one
// country. Each position of the pattern marks the matching position of a
// code as a bank digit, an account digit, or something to ignore.
type Parser struct {
	label   string
	country string
	pattern string
}

// NewParser builds a parser from a pattern such as
// "LTkk bbbb bccc cccc cccc". Whitespace is removed and the first two
// characters name the country.
func NewParser(label, pattern string) (*Parser, error) {
	p := stripSpace(pattern)
	if len(p) < 2 {
		return nil, fmt.Errorf("pattern %q is too short", pattern)
	}
	return &Parser{
		label:   label,
		country: strings.ToUpper(p[:2]),
		pattern: p,
	}, nil
}

// Label returns the descriptive label the pattern was registered with
func (p *Parser) Label() string { return p.label }

// Country returns the two letter country prefix
func (p *Parser) Country() string { return p.country }

// Pattern returns the pattern without whitespace
func (p *Parser) Pattern() string { return p.pattern }

// Len returns the length every code of this country must have
func (p *Parser) Len() int { return len(p.pattern) }

func (p *Parser) extract(code string, marker byte) (string, error) {
	code = Normalize(code)
	if len(code) != len(p.pattern) {
		return "", &MalformedCodeError{Code: code, Expected: len(p.pattern), Got: len(code)}
	}

	var sb strings.Builder
	for i := 0; i < len(p.pattern); i++ {
		if p.pattern[i] == marker {
			sb.WriteByte(code[i])
		}
	}
	return sb.String(), nil
}

// ParseBankCode returns the characters of code at bank positions
func (p *Parser) ParseBankCode(code string) (string, error) {
	return p.extract(code, BankMarker)
}

// ParseAccountNumber returns the account number encoded at account positions
func (p *Parser) ParseAccountNumber(code string) (*big.Int, error) {
	digits, err := p.extract(code, AccountMarker)
	if err != nil {
		return nil, err
	}
	if !isDigits(digits) {
		return nil, &MalformedCodeError{Code: Normalize(code), Reason: fmt.Sprintf("account number %q is not numeric", digits)}
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, &MalformedCodeError{Code: Normalize(code), Reason: fmt.Sprintf("account number %q is not numeric", digits)}
	}
	return n, nil
}

// ResolveBank parses the bank code and looks it up in banks, creating a
// bare entry when the bank is not known yet.
func (p *Parser) ResolveBank(code string, banks *bank.Registry) (bank.Bank, error) {
	digits, err := p.ParseBankCode(code)
	if err != nil {
		return bank.Bank{}, err
	}
	if !isDigits(digits) {
		return bank.Bank{}, &MalformedCodeError{Code: Normalize(code), Reason: fmt.Sprintf("bank code %q is not numeric", digits)}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return bank.Bank{}, &MalformedCodeError{Code: Normalize(code), Reason: fmt.Sprintf("bank code %q is out of range", digits)}
	}
	return banks.Get(p.country, n, true)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

package iban

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/bank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ltPattern = "LTkk bbbb bccc cccc cccc"

func newLTParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser("Lithuania", ltPattern)
	require.NoError(t, err)
	return p
}

func TestNewParser(t *testing.T) {
	p := newLTParser(t)
	assert.Equal(t, "LT", p.Country())
	assert.Equal(t, "Lithuania", p.Label())
	assert.Equal(t, "LTkkbbbbbccccccccccc", p.Pattern())
	assert.Equal(t, 20, p.Len())

	_, err := NewParser("broken", " L ")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "LT121000011101001000", Normalize(" lt12 1000 0111 0100 1000\t"))
}

func TestParseBankCodeAndNumber(t *testing.T) {
	p := newLTParser(t)

	tests := []struct {
		name   string
		code   string
		bank   string
		number string
	}{
		{"compact", "LT121000011101001000", "10000", "11101001000"},
		{"grouped", "LT12 1000 0111 0100 1000", "10000", "11101001000"},
		{"lower case", "lt60 7300 0101 0000 0001", "73000", "10100000001"},
		{"leading zeros", "LT00 4010 0000 0000 0042", "40100", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bankCode, err := p.ParseBankCode(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.bank, bankCode)

			number, err := p.ParseAccountNumber(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.number, number.String())
		})
	}
}

func TestMarkersIgnoreOtherPositions(t *testing.T) {
	p, err := NewParser("test", "XXbbxcc")
	require.NoError(t, err)

	bankCode, err := p.ParseBankCode("XX12Z34")
	require.NoError(t, err)
	assert.Equal(t, "12", bankCode)

	number, err := p.ParseAccountNumber("XX12Z34")
	require.NoError(t, err)
	assert.Equal(t, int64(34), number.Int64())
}

func TestWrongLength(t *testing.T) {
	p := newLTParser(t)

	for _, code := range []string{"LT12", "LT1210000111010010001", ""} {
		_, err := p.ParseBankCode(code)
		assert.ErrorIs(t, err, ErrMalformedCode)

		_, err = p.ParseAccountNumber(code)
		assert.ErrorIs(t, err, ErrMalformedCode)
	}

	_, err := p.ParseBankCode("LT12100001110100100")
	var malformed *MalformedCodeError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 20, malformed.Expected)
	assert.Equal(t, 19, malformed.Got)
	assert.Equal(t, "IBAN number length wrong: expected 20, got 19", err.Error())
}

func TestNonNumericAccountNumber(t *testing.T) {
	p := newLTParser(t)

	_, err := p.ParseAccountNumber("LT1210000111010010AB")
	assert.ErrorIs(t, err, ErrMalformedCode)

	noAccount, err := NewParser("bank only", "XXbb")
	require.NoError(t, err)
	_, err = noAccount.ParseAccountNumber("XX12")
	assert.ErrorIs(t, err, ErrMalformedCode)
}

func TestResolveBank(t *testing.T) {
	p := newLTParser(t)
	banks := bank.NewRegistry(log.New(io.Discard))
	banks.Put(bank.Bank{Country: "LT", Code: 73000, BIC: "HABALT22", Name: "Swedbank"})

	known, err := p.ResolveBank("LT60 7300 0101 0000 0001", banks)
	require.NoError(t, err)
	assert.Equal(t, "Swedbank", known.Name)

	created, err := p.ResolveBank("LT12 1000 0111 0100 1000", banks)
	require.NoError(t, err)
	assert.Equal(t, bank.Bank{Country: "LT", Code: 10000}, created)
	assert.Equal(t, 2, banks.Len())

	_, err = p.ResolveBank("LT12 1A00 0111 0100 1000", banks)
	assert.ErrorIs(t, err, ErrMalformedCode)
	assert.Equal(t, 2, banks.Len())
}

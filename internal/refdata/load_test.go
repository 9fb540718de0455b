package refdata_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/lox/bank-accounts/internal/account"
	"github.com/lox/bank-accounts/internal/bank"
	"github.com/lox/bank-accounts/internal/money"
	"github.com/lox/bank-accounts/internal/refdata"
	mock_refdata "github.com/lox/bank-accounts/internal/refdata/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newRegistry() *account.Registry {
	logger := testLogger()
	return account.NewRegistry(money.NewConverter("EUR", logger), bank.NewRegistry(logger), logger)
}

func TestLoadCollectsAllSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := mock_refdata.NewMockSource(ctrl)
	src.EXPECT().Banks(gomock.Any()).Return([]refdata.BankRecord{
		{Country: "LT", Code: 73000, BIC: "HABALT22", Name: "Swedbank"},
	}, nil)
	src.EXPECT().Rates(gomock.Any()).Return([]refdata.RateRecord{
		{Currency: "EUR", ToBase: dec("1"), FromBase: dec("1")},
		{Currency: "USD", ToBase: dec("0.85"), FromBase: dec("1.17647")},
	}, nil)
	src.EXPECT().Patterns(gomock.Any()).Return([]refdata.PatternRecord{
		{Label: "Lithuania", Pattern: "LTkk bbbb bccc cccc cccc"},
	}, nil)

	data, err := refdata.Load(context.Background(), src, testLogger())
	require.NoError(t, err)
	assert.Len(t, data.Banks, 1)
	assert.Len(t, data.Rates, 2)
	assert.Len(t, data.Patterns, 1)
}

func TestLoadReturnsFirstError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("boom")
	src := mock_refdata.NewMockSource(ctrl)
	src.EXPECT().Banks(gomock.Any()).Return(nil, nil).AnyTimes()
	src.EXPECT().Rates(gomock.Any()).Return(nil, boom).AnyTimes()
	src.EXPECT().Patterns(gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := refdata.Load(context.Background(), src, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to load rates")
}

func TestInstallFromFiles(t *testing.T) {
	ctx := context.Background()
	data, err := refdata.Load(ctx, refdata.NewFileSource("testdata", "LT", testLogger()), testLogger())
	require.NoError(t, err)

	reg := newRegistry()
	require.NoError(t, data.Install(reg))

	assert.Equal(t, []money.Currency{"EUR", "GBP", "LTL", "PLN", "USD"}, reg.Converter().Currencies())
	assert.Equal(t, []string{"EE", "LT"}, reg.Countries())
	assert.Equal(t, 5, reg.Banks().Len())

	acc, err := reg.CurrentAccount("LT60 7300 0101 0000 0001")
	require.NoError(t, err)
	assert.Equal(t, "Swedbank, AB", acc.Bank().Name)
	assert.Len(t, acc.Balances(), 5)

	est, err := reg.SavingsAccount("EE38 2200 2210 2014 5685")
	require.NoError(t, err)
	assert.Equal(t, bank.Bank{Country: "EE", Code: 22}, est.Bank())
}

func TestInstallRejectsNonPositiveRate(t *testing.T) {
	data := &refdata.Data{
		Rates: []refdata.RateRecord{{Currency: "EUR", ToBase: dec("0"), FromBase: dec("1")}},
	}
	err := data.Install(newRegistry())
	assert.ErrorIs(t, err, money.ErrInvalidRate)
}

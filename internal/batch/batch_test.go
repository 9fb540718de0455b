package batch

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/account"
	"github.com/lox/bank-accounts/internal/bank"
	"github.com/lox/bank-accounts/internal/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const script = `# opening balances
open,LT60 7300 0101 0000 0001,current
credit,LT60 7300 0101 0000 0001,current,100,EUR

transfer,LT60 7300 0101 0000 0001,current,40,EUR,LT12 7044 0000 0000 0777,savings
convert,LT60 7300 0101 0000 0001,current,10,EUR,USD
debit,LT12 7044 0000 0000 0777,savings,5,EUR
credit,LT60 7300 0101 0000 0001,credit,1,EUR
debit,LT60 7300 0101 0000 0001,current,1.005,EUR
`

func setupTestRegistry(t *testing.T) *account.Registry {
	t.Helper()

	logger := log.New(io.Discard)
	conv := money.NewConverter("EUR", logger)
	require.NoError(t, conv.SetRate("EUR", decimal.NewFromInt(1), decimal.NewFromInt(1)))
	require.NoError(t, conv.SetRate("USD", decimal.RequireFromString("0.85"), decimal.RequireFromString("1.17647")))

	reg := account.NewRegistry(conv, bank.NewRegistry(logger), logger)
	require.NoError(t, reg.RegisterPattern("Lithuania", "LTkk bbbb bccc cccc cccc"))
	return reg
}

func TestParse(t *testing.T) {
	ops, err := Parse(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, ops, 7)

	assert.Equal(t, Operation{Line: 2, Op: OpOpen, Code: "LT60 7300 0101 0000 0001", Kind: account.KindCurrent}, ops[0])

	transfer := ops[2]
	assert.Equal(t, 5, transfer.Line)
	assert.Equal(t, OpTransfer, transfer.Op)
	assert.True(t, transfer.Amount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, money.Currency("EUR"), transfer.Currency)
	assert.Equal(t, "LT12 7044 0000 0000 0777", transfer.TargetCode)
	assert.Equal(t, account.KindSavings, transfer.TargetKind)

	convert := ops[3]
	assert.Equal(t, money.Currency("EUR"), convert.Currency)
	assert.Equal(t, money.Currency("USD"), convert.To)

	// Out of range amounts parse and are rejected when applied.
	assert.True(t, ops[6].Amount.Equal(decimal.RequireFromString("1.005")))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown op", "withdraw,LT60,current\n", `line 1: unknown operation "withdraw"`},
		{"field count", "open,LT60\n", "line 1: open expects 3 fields, got 2"},
		{"bad kind", "\nopen,LT60,checking\n", `line 2: unknown account kind "checking"`},
		{"bad amount", "credit,LT60,current,ten,EUR\n", `line 1: invalid amount "ten"`},
		{"bad currency", "credit,LT60,current,10,EURO\n", "line 1: currency not supported: EURO"},
		{"bad target kind", "transfer,LT60,current,10,EUR,LT61,bogus\n", `line 1: unknown account kind "bogus"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.script))
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestRunCollectsFailures(t *testing.T) {
	reg := setupTestRegistry(t)
	ops, err := Parse(strings.NewReader(script))
	require.NoError(t, err)

	runner := NewRunner(reg, log.New(io.Discard), Config{})
	report, err := runner.Run(context.Background(), ops)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 7, report.Total)
	assert.Equal(t, 4, report.Applied)
	require.Len(t, report.Failures, 3)

	var lines []int
	for _, f := range report.Failures {
		lines = append(lines, f.Line)
	}
	assert.Equal(t, []int{7, 8, 9}, lines)
	assert.Contains(t, report.Failures[0].Error, "debit is not allowed on a savings account")
	assert.Contains(t, report.Failures[1].Error, "type was current")
	assert.Contains(t, report.Failures[2].Error, "amount out of range: 1.005")

	current, ok := reg.Lookup("LT607300010100000001")
	require.True(t, ok)
	eur, err := current.Balance("EUR")
	require.NoError(t, err)
	assert.True(t, eur.Equal(decimal.NewFromInt(50)), "got %s", eur)
	usd, err := current.Balance("USD")
	require.NoError(t, err)
	assert.True(t, usd.Equal(decimal.RequireFromString("11.76")), "got %s", usd)

	savings, ok := reg.Lookup("LT127044000000000777")
	require.True(t, ok)
	saved, err := savings.Balance("EUR")
	require.NoError(t, err)
	assert.True(t, saved.Equal(decimal.NewFromInt(40)))
}

func TestRunStopOnError(t *testing.T) {
	reg := setupTestRegistry(t)
	ops, err := Parse(strings.NewReader(script))
	require.NoError(t, err)

	runner := NewRunner(reg, log.New(io.Discard), Config{StopOnError: true})
	report, err := runner.Run(context.Background(), ops)
	require.Error(t, err)
	assert.ErrorIs(t, err, account.ErrIllegalAction)
	assert.Contains(t, err.Error(), "line 7")
	assert.Equal(t, 4, report.Applied)
	assert.Len(t, report.Failures, 1)
}

func TestRunCancelled(t *testing.T) {
	reg := setupTestRegistry(t)
	ops, err := Parse(strings.NewReader(script))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewRunner(reg, log.New(io.Discard), Config{}).Run(ctx, ops)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Applied)
	assert.Empty(t, reg.Accounts())
}

func TestRunWithProgressBar(t *testing.T) {
	reg := setupTestRegistry(t)
	ops, err := Parse(strings.NewReader(script))
	require.NoError(t, err)

	var out strings.Builder
	runner := NewRunner(reg, log.New(io.Discard), Config{Progress: true, ProgressWriter: &out})
	report, err := runner.Run(context.Background(), ops)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Applied)
	assert.Contains(t, out.String(), "Applying operations")
}

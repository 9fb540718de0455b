package refdata_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/money"
	"github.com/lox/bank-accounts/internal/refdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	logger := log.New(io.Discard)
	logger.SetLevel(log.DebugLevel)
	return logger
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestFileSourceBanks(t *testing.T) {
	src := refdata.NewFileSource("testdata", "LT", testLogger())

	banks, err := src.Banks(context.Background())
	require.NoError(t, err)
	require.Len(t, banks, 5)

	assert.Equal(t, refdata.BankRecord{
		Country: "LT",
		Code:    70440,
		BIC:     "CBVILT2X",
		Name:    "AB SEB bankas",
		Address: "Konstitucijos pr. 24, Vilnius",
	}, banks[2])
	assert.Equal(t, "Swedbank, AB", banks[4].Name)
}

func TestFileSourcePatterns(t *testing.T) {
	src := refdata.NewFileSource("testdata", "LT", testLogger())

	patterns, err := src.Patterns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []refdata.PatternRecord{
		{Label: "Lithuania", Pattern: "LTkk bbbb bccc cccc cccc"},
		{Label: "Estonia", Pattern: "EEkk bbcc cccc cccc cccc"},
	}, patterns)
}

func TestFileSourceRatesSkipsInvalidLines(t *testing.T) {
	src := refdata.NewFileSource("testdata", "LT", testLogger())

	rates, err := src.Rates(context.Background())
	require.NoError(t, err)

	var codes []money.Currency
	for _, r := range rates {
		codes = append(codes, r.Currency)
	}
	assert.Equal(t, []money.Currency{"EUR", "USD", "GBP", "PLN", "LTL"}, codes)
	assert.True(t, rates[1].FromBase.Equal(dec("1.17647")))
}

func TestFileSourceErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		load  func(*refdata.FileSource) error
		want  string
	}{
		{
			name:  "missing bank file",
			files: map[string]string{},
			load: func(s *refdata.FileSource) error {
				_, err := s.Banks(context.Background())
				return err
			},
			want: "failed to open banks.txt",
		},
		{
			name:  "bank code not numeric",
			files: map[string]string{refdata.BanksFile: "Bank:Street 1:BIC:7300X\n"},
			load: func(s *refdata.FileSource) error {
				_, err := s.Banks(context.Background())
				return err
			},
			want: "banks.txt:1: invalid bank code",
		},
		{
			name:  "bank missing fields",
			files: map[string]string{refdata.BanksFile: "\nBank:BIC:73000\n"},
			load: func(s *refdata.FileSource) error {
				_, err := s.Banks(context.Background())
				return err
			},
			want: "banks.txt:2: expected 4 fields, got 3",
		},
		{
			name:  "pattern missing",
			files: map[string]string{refdata.PatternsFile: "Lithuania\n"},
			load: func(s *refdata.FileSource) error {
				_, err := s.Patterns(context.Background())
				return err
			},
			want: "iban.txt:1: expected 2 fields, got 1",
		},
		{
			name:  "rate missing field",
			files: map[string]string{refdata.RatesFile: "EUR:1\n"},
			load: func(s *refdata.FileSource) error {
				_, err := s.Rates(context.Background())
				return err
			},
			want: "rates.txt:1: expected 3 fields, got 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := refdata.NewFileSource(writeFiles(t, tt.files), "LT", testLogger())
			err := tt.load(src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFileSourceHonoursCancelledContext(t *testing.T) {
	src := refdata.NewFileSource("testdata", "LT", testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Banks(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

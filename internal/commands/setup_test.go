package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/account"
	"github.com/lox/bank-accounts/internal/refdata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		refdata.BanksFile:    "Swedbank, AB:Konstitucijos pr. 20A, Vilnius:HABALT22:73000\n",
		refdata.PatternsFile: "Lithuania:LTkk bbbb bccc cccc cccc\n",
		refdata.RatesFile:    "EUR:1:1\nUSD:0.85:1.17647\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func testConfig(dir string) CommonConfig {
	return CommonConfig{
		DataDir:      dir,
		LogLevel:     "debug",
		Source:       "files",
		Database:     "refdata.db",
		Country:      "LT",
		BaseCurrency: "EUR",
	}
}

func TestSetupLogger(t *testing.T) {
	logger, err := SetupLogger(CommonConfig{LogLevel: "info"})
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	_, err = SetupLogger(CommonConfig{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestDatabasePath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "refdata.db"), DatabasePath(CommonConfig{DataDir: "data", Database: "refdata.db"}))
	assert.Equal(t, "/tmp/ref.db", DatabasePath(CommonConfig{DataDir: "data", Database: "/tmp/ref.db"}))
}

func TestSetupRegistryFromFiles(t *testing.T) {
	reg, err := SetupRegistry(context.Background(), testConfig(writeDataDir(t)), log.New(io.Discard))
	require.NoError(t, err)

	acc, err := reg.CurrentAccount("LT60 7300 0101 0000 0001")
	require.NoError(t, err)
	assert.Equal(t, "Swedbank, AB", acc.Bank().Name)
	assert.Len(t, acc.Balances(), 2)
}

func TestSetupRegistryFromSQLite(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard)
	config := testConfig(writeDataDir(t))

	data, err := refdata.Load(ctx, refdata.NewFileSource(config.DataDir, config.Country, logger), logger)
	require.NoError(t, err)
	db, err := refdata.OpenSQLite(ctx, DatabasePath(config), logger)
	require.NoError(t, err)
	require.NoError(t, db.Store(ctx, data))
	require.NoError(t, db.Close())

	config.Source = "sqlite"
	config.StrictSavings = true
	reg, err := SetupRegistry(ctx, config, logger)
	require.NoError(t, err)

	acc, err := reg.SavingsAccount("LT60 7300 0101 0000 0001")
	require.NoError(t, err)
	require.NoError(t, acc.Credit(decimal.NewFromInt(10), "EUR"))
	err = acc.ConvertBalance(decimal.NewFromInt(5), "EUR", "USD")
	assert.ErrorIs(t, err, account.ErrIllegalAction)
}

func TestSetupRegistryErrors(t *testing.T) {
	logger := log.New(io.Discard)

	config := testConfig(writeDataDir(t))
	config.BaseCurrency = "EURO"
	_, err := SetupRegistry(context.Background(), config, logger)
	assert.ErrorContains(t, err, "invalid base currency")

	config = testConfig(t.TempDir())
	_, err = SetupRegistry(context.Background(), config, logger)
	assert.ErrorContains(t, err, "failed to open")

	config.Source = "redis"
	_, err = SetupRegistry(context.Background(), config, logger)
	assert.ErrorContains(t, err, `unknown reference data source "redis"`)
}

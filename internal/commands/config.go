package commands

// CommonConfig contains configuration common to all commands
type CommonConfig struct {
	// DataDir is the path to the data directory
	DataDir string `help:"Path to data directory" default:"./data" env:"BANK_DATA_DIR"`
	// LogLevel is the logging level to use
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error" env:"BANK_LOG_LEVEL"`
	// Source selects where reference data is read from
	Source string `help:"Reference data source" default:"files" enum:"files,sqlite" env:"BANK_SOURCE"`
	// Database is the SQLite reference database, relative to DataDir unless absolute
	Database string `help:"SQLite reference database" default:"refdata.db" env:"BANK_DATABASE"`
	// Country is assigned to every bank read from banks.txt
	Country string `help:"Country of the banks in banks.txt" default:"LT" env:"BANK_COUNTRY"`
	// BaseCurrency is the pivot currency of the rate table
	BaseCurrency string `help:"Base currency rates are expressed against" default:"EUR" env:"BANK_BASE_CURRENCY"`
	// StrictSavings makes savings accounts refuse balance conversions too
	StrictSavings bool `help:"Refuse balance conversions on savings accounts" default:"false" env:"BANK_STRICT_SAVINGS"`
}

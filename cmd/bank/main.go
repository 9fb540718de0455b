package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/account"
	"github.com/lox/bank-accounts/internal/batch"
	"github.com/lox/bank-accounts/internal/commands"
	"github.com/lox/bank-accounts/internal/money"
	"github.com/lox/bank-accounts/internal/refdata"
)

type CLI struct {
	commands.CommonConfig

	Rates   RatesCmd   `cmd:"" help:"List supported currencies and their rates"`
	Convert ConvertCmd `cmd:"" help:"Convert an amount between currencies"`
	Bank    BankCmd    `cmd:"" help:"Show a bank by country and code"`
	Apply   ApplyCmd   `cmd:"" help:"Apply a script of account operations and print the resulting balances"`
	Import  ImportCmd  `cmd:"" help:"Copy the reference files in the data directory into the SQLite database"`
}

type RatesCmd struct{}

func (c *RatesCmd) Run(cli *CLI) error {
	_, reg, err := setup(cli)
	if err != nil {
		return err
	}

	conv := reg.Converter()
	rates := conv.Rates()
	fmt.Printf("Base currency: %s\n\n", conv.Base())
	for _, ccy := range conv.Currencies() {
		fmt.Printf("%s  to base: %-10s  from base: %s\n", ccy, rates[ccy].ToBase, rates[ccy].FromBase)
	}
	return nil
}

type ConvertCmd struct {
	Amount string `arg:"" help:"Amount with at most two decimal places"`
	From   string `arg:"" help:"Currency to convert from"`
	To     string `arg:"" help:"Currency to convert into"`
}

func (c *ConvertCmd) Run(cli *CLI) error {
	_, reg, err := setup(cli)
	if err != nil {
		return err
	}

	amount, err := money.ParseAmount(c.Amount)
	if err != nil {
		return err
	}
	from, err := money.ParseCurrency(c.From)
	if err != nil {
		return err
	}
	to, err := money.ParseCurrency(c.To)
	if err != nil {
		return err
	}

	converted, err := reg.Converter().Convert(amount, from, to)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s = %s %s\n", amount.StringFixed(money.Scale), from, converted.StringFixed(money.Scale), to)
	return nil
}

type BankCmd struct {
	Country string `arg:"" help:"Two letter country code"`
	Code    int    `arg:"" help:"Numeric bank code"`
}

func (c *BankCmd) Run(cli *CLI) error {
	_, reg, err := setup(cli)
	if err != nil {
		return err
	}

	b, err := reg.Bank(strings.ToUpper(c.Country), c.Code)
	if err != nil {
		return err
	}
	fmt.Println(b)
	fmt.Printf("  Country: %s (%s)\n", b.CountryName(), b.Country)
	fmt.Printf("  Code:    %d\n", b.Code)
	if b.BIC != "" {
		fmt.Printf("  BIC:     %s\n", b.BIC)
	}
	if b.Address != "" {
		fmt.Printf("  Address: %s\n", b.Address)
	}
	return nil
}

type ApplyCmd struct {
	Script      string `arg:"" help:"Path to the operations script" type:"existingfile"`
	StopOnError bool   `help:"Stop at the first rejected operation" default:"false"`
	NoProgress  bool   `help:"Disable progress bar" default:"false"`
}

type accountSummary struct {
	Code     string            `json:"code"`
	Kind     string            `json:"kind"`
	Bank     string            `json:"bank"`
	Balances map[string]string `json:"balances"`
	Total    string            `json:"total"`
}

type applyOutput struct {
	Report   *batch.Report    `json:"report"`
	Accounts []accountSummary `json:"accounts"`
}

func (c *ApplyCmd) Run(cli *CLI) error {
	logger, reg, err := setup(cli)
	if err != nil {
		return err
	}

	file, err := os.Open(c.Script)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	ops, err := batch.Parse(file)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(reg, logger, batch.Config{
		StopOnError: c.StopOnError,
		Progress:    !c.NoProgress,
	})
	report, runErr := runner.Run(context.Background(), ops)

	out := applyOutput{Report: report}
	base := reg.Converter().Base()
	for _, acc := range reg.Accounts() {
		summary, err := summarize(acc, base)
		if err != nil {
			return err
		}
		out.Accounts = append(out.Accounts, summary)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(b))
	return runErr
}

func summarize(acc *account.Account, base money.Currency) (accountSummary, error) {
	summary := accountSummary{
		Code:     acc.Code(),
		Kind:     acc.Kind().String(),
		Bank:     acc.Bank().String(),
		Balances: make(map[string]string),
	}
	for ccy, bal := range acc.Balances() {
		summary.Balances[string(ccy)] = bal.StringFixed(money.Scale)
	}

	total, err := acc.BalanceAll(base)
	if err != nil {
		return summary, fmt.Errorf("failed to total %s: %w", acc.Code(), err)
	}
	summary.Total = total.StringFixed(money.Scale) + " " + string(base)
	return summary, nil
}

type ImportCmd struct{}

func (c *ImportCmd) Run(cli *CLI) error {
	ctx := context.Background()
	logger, err := commands.SetupLogger(cli.CommonConfig)
	if err != nil {
		return err
	}

	data, err := refdata.Load(ctx, refdata.NewFileSource(cli.DataDir, cli.Country, logger), logger)
	if err != nil {
		return err
	}

	path := commands.DatabasePath(cli.CommonConfig)
	db, err := refdata.OpenSQLite(ctx, path, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Store(ctx, data); err != nil {
		return err
	}

	fmt.Printf("Imported %d banks, %d rates and %d patterns into %s\n",
		len(data.Banks), len(data.Rates), len(data.Patterns), path)
	return nil
}

func setup(cli *CLI) (*log.Logger, *account.Registry, error) {
	logger, err := commands.SetupLogger(cli.CommonConfig)
	if err != nil {
		return nil, nil, err
	}
	reg, err := commands.SetupRegistry(context.Background(), cli.CommonConfig, logger)
	if err != nil {
		return nil, nil, err
	}
	return logger, reg, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bank"),
		kong.Description("Multi-currency bank accounts: rates, conversions, banks and operation scripts"),
		kong.UsageOnError(),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

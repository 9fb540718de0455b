package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/bank-accounts/internal/account"
	"github.com/lox/bank-accounts/internal/money"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
)

func stringArg(request mcp.CallToolRequest, name string) (string, error) {
	v, ok := request.Params.Arguments[name].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%s must be a non-empty string", name)
	}
	return v, nil
}

func kindArg(request mcp.CallToolRequest, name string) (account.Kind, error) {
	v, ok := request.Params.Arguments[name].(string)
	if !ok || v == "" {
		return account.KindCurrent, nil
	}
	return account.ParseKind(v)
}

func currencyArg(request mcp.CallToolRequest, name string) (money.Currency, error) {
	v, err := stringArg(request, name)
	if err != nil {
		return "", err
	}
	return money.ParseCurrency(v)
}

// amountArg accepts decimal strings and JSON numbers. Range checks are
// left to the operation so they are reported as tool errors.
func amountArg(request mcp.CallToolRequest, name string) (decimal.Decimal, error) {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s must be a decimal number: %w", name, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	default:
		return decimal.Zero, fmt.Errorf("%s must be a number or string", name)
	}
}

func intArg(request mcp.CallToolRequest, name string) (int, error) {
	switch v := request.Params.Arguments[name].(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid integer: %w", name, err)
		}
		return n, nil
	default:
		return 0, errors.New(name + " must be a number or string")
	}
}

func formatBalances(acc *account.Account) string {
	balances := acc.Balances()

	var result string
	result += fmt.Sprintf("%s (%s) at %s\n", acc.Code(), acc.Kind(), acc.Bank())
	for _, ccy := range acc.Currencies() {
		result += fmt.Sprintf("  %s: %s\n", ccy, balances[ccy].StringFixed(money.Scale))
	}
	return result
}

// resolve opens or fetches the account named by the code and kind arguments
func (s *Server) resolve(request mcp.CallToolRequest) (*account.Account, *mcp.CallToolResult, error) {
	code, err := stringArg(request, "code")
	if err != nil {
		return nil, nil, err
	}
	kind, err := kindArg(request, "kind")
	if err != nil {
		return nil, nil, err
	}
	acc, err := s.reg.Account(code, kind)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error()), nil
	}
	return acc, nil, nil
}

func (s *Server) lookup(request mcp.CallToolRequest) (*account.Account, *mcp.CallToolResult, error) {
	code, err := stringArg(request, "code")
	if err != nil {
		return nil, nil, err
	}
	acc, ok := s.reg.Lookup(code)
	if !ok {
		return nil, mcp.NewToolResultError(fmt.Sprintf("account %s is not open", code)), nil
	}
	return acc, nil, nil
}

func (s *Server) openAccountHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	acc, failed, err := s.resolve(request)
	if acc == nil {
		return failed, err
	}
	return mcp.NewToolResultText(formatBalances(acc)), nil
}

func (s *Server) getBalanceHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	acc, failed, err := s.lookup(request)
	if acc == nil {
		return failed, err
	}

	if _, ok := request.Params.Arguments["currency"]; !ok {
		return mcp.NewToolResultText(formatBalances(acc)), nil
	}

	ccy, err := currencyArg(request, "currency")
	if err != nil {
		return nil, err
	}
	bal, err := acc.Balance(ccy)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s\n", ccy, bal.StringFixed(money.Scale))), nil
}

func (s *Server) balanceAllHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	acc, failed, err := s.lookup(request)
	if acc == nil {
		return failed, err
	}
	ccy, err := currencyArg(request, "currency")
	if err != nil {
		return nil, err
	}

	total, err := acc.BalanceAll(ccy)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Total: %s %s\n", total.StringFixed(money.Scale), ccy)), nil
}

func (s *Server) creditHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.movement(request, "Credited", (*account.Account).Credit)
}

func (s *Server) debitHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.movement(request, "Debited", (*account.Account).Debit)
}

func (s *Server) movement(request mcp.CallToolRequest, verb string, apply func(*account.Account, decimal.Decimal, money.Currency) error) (*mcp.CallToolResult, error) {
	amount, err := amountArg(request, "amount")
	if err != nil {
		return nil, err
	}
	ccy, err := currencyArg(request, "currency")
	if err != nil {
		return nil, err
	}
	acc, failed, err := s.resolve(request)
	if acc == nil {
		return failed, err
	}

	if err := apply(acc, amount, ccy); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug(verb+" account", "code", acc.Code(), "amount", amount, "currency", ccy)
	return mcp.NewToolResultText(fmt.Sprintf("%s %s %s\n\n%s", verb, amount.StringFixed(money.Scale), ccy, formatBalances(acc))), nil
}

func (s *Server) transferHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount, err := amountArg(request, "amount")
	if err != nil {
		return nil, err
	}
	ccy, err := currencyArg(request, "currency")
	if err != nil {
		return nil, err
	}
	targetCode, err := stringArg(request, "target")
	if err != nil {
		return nil, err
	}
	targetKind, err := kindArg(request, "target_kind")
	if err != nil {
		return nil, err
	}

	acc, failed, err := s.resolve(request)
	if acc == nil {
		return failed, err
	}
	target, err := s.reg.Account(targetCode, targetKind)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := acc.Transfer(amount, ccy, target); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("Transferred", "from", acc.Code(), "to", target.Code(), "amount", amount, "currency", ccy)

	result := fmt.Sprintf("Transferred %s %s\n\n", amount.StringFixed(money.Scale), ccy)
	result += formatBalances(acc)
	result += "\n"
	result += formatBalances(target)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) convertBalanceHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount, err := amountArg(request, "amount")
	if err != nil {
		return nil, err
	}
	from, err := currencyArg(request, "from")
	if err != nil {
		return nil, err
	}
	to, err := currencyArg(request, "to")
	if err != nil {
		return nil, err
	}
	acc, failed, err := s.resolve(request)
	if acc == nil {
		return failed, err
	}

	if err := acc.ConvertBalance(amount, from, to); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Exchanged %s %s to %s\n\n%s",
		amount.StringFixed(money.Scale), from, to, formatBalances(acc))), nil
}

func (s *Server) convertAmountHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount, err := amountArg(request, "amount")
	if err != nil {
		return nil, err
	}
	from, err := currencyArg(request, "from")
	if err != nil {
		return nil, err
	}
	to, err := currencyArg(request, "to")
	if err != nil {
		return nil, err
	}

	converted, err := s.reg.Converter().Convert(amount, from, to)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s %s = %s %s\n",
		amount.StringFixed(money.Scale), from, converted.StringFixed(money.Scale), to)), nil
}

func (s *Server) getBankHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	country, err := stringArg(request, "country")
	if err != nil {
		return nil, err
	}
	code, err := intArg(request, "code")
	if err != nil {
		return nil, err
	}

	b, err := s.reg.Bank(strings.ToUpper(country), code)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result string
	result += fmt.Sprintf("%s\n", b)
	result += fmt.Sprintf("  Country: %s (%s)\n", b.CountryName(), b.Country)
	result += fmt.Sprintf("  Code: %d\n", b.Code)
	if b.BIC != "" {
		result += fmt.Sprintf("  BIC: %s\n", b.BIC)
	}
	if b.Address != "" {
		result += fmt.Sprintf("  Address: %s\n", b.Address)
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) listRatesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conv := s.reg.Converter()
	rates := conv.Rates()

	var result string
	result += fmt.Sprintf("Rates against %s\n\n", conv.Base())
	for _, ccy := range conv.Currencies() {
		rate := rates[ccy]
		result += fmt.Sprintf("%s  to base: %s  from base: %s\n", ccy, rate.ToBase, rate.FromBase)
	}
	return mcp.NewToolResultText(result), nil
}

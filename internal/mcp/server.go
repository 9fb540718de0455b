package mcp

import (
	"github.com/charmbracelet/log"
	"github.com/lox/bank-accounts/internal/account"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type Server struct {
	reg    *account.Registry
	logger *log.Logger
}

func New(reg *account.Registry, logger *log.Logger) *Server {
	return &Server{
		reg:    reg,
		logger: logger,
	}
}

func accountArgs(kindRequired bool) []mcp.ToolOption {
	kind := []mcp.PropertyOption{
		mcp.Description("Account kind: current, credit or savings (default: current)"),
		mcp.Enum("current", "credit", "savings"),
	}
	if kindRequired {
		kind = append(kind, mcp.Required())
	}
	return []mcp.ToolOption{
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Account code, for example LT60 7300 0101 0000 0001"),
		),
		mcp.WithString("kind", kind...),
	}
}

func withAmount() mcp.ToolOption {
	return mcp.WithString("amount",
		mcp.Required(),
		mcp.Description("Amount with at most two decimal places, for example 12.50"),
	)
}

func withCurrency(name, description string) mcp.ToolOption {
	return mcp.WithString(name,
		mcp.Required(),
		mcp.Description(description),
	)
}

func newTool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	return mcp.NewTool(name, append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)...)
}

// MCPServer builds the tool server without starting it
func (s *Server) MCPServer() *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"Bank Accounts",
		"1.0.0",
	)

	mcpServer.AddTool(newTool("open_account", "Open an account, or return it if it is already open with the same kind",
		accountArgs(true)...,
	), s.openAccountHandler)

	mcpServer.AddTool(newTool("get_balance", "Show the balances of an open account",
		mcp.WithString("code", mcp.Required(), mcp.Description("Account code")),
		mcp.WithString("currency", mcp.Description("Only show the balance in this currency")),
	), s.getBalanceHandler)

	mcpServer.AddTool(newTool("balance_all", "Total every balance of an open account in one currency",
		mcp.WithString("code", mcp.Required(), mcp.Description("Account code")),
		withCurrency("currency", "Currency to total in"),
	), s.balanceAllHandler)

	mcpServer.AddTool(newTool("credit", "Pay money into an account",
		append(accountArgs(false), withAmount(), withCurrency("currency", "Currency of the amount"))...,
	), s.creditHandler)

	mcpServer.AddTool(newTool("debit", "Take money out of an account",
		append(accountArgs(false), withAmount(), withCurrency("currency", "Currency of the amount"))...,
	), s.debitHandler)

	mcpServer.AddTool(newTool("transfer", "Move money from one account to another in the same currency",
		append(accountArgs(false),
			withAmount(),
			withCurrency("currency", "Currency of the amount"),
			mcp.WithString("target", mcp.Required(), mcp.Description("Code of the receiving account")),
			mcp.WithString("target_kind",
				mcp.Description("Kind of the receiving account (default: current)"),
				mcp.Enum("current", "credit", "savings"),
			),
		)...,
	), s.transferHandler)

	mcpServer.AddTool(newTool("convert_balance", "Exchange part of an account's balance into another currency",
		append(accountArgs(false),
			withAmount(),
			withCurrency("from", "Currency to exchange from"),
			withCurrency("to", "Currency to exchange into"),
		)...,
	), s.convertBalanceHandler)

	mcpServer.AddTool(newTool("convert_amount", "Convert an amount between currencies without touching any account",
		withAmount(),
		withCurrency("from", "Currency to convert from"),
		withCurrency("to", "Currency to convert into"),
	), s.convertAmountHandler)

	mcpServer.AddTool(newTool("get_bank", "Look up a bank by country and code",
		mcp.WithString("country", mcp.Required(), mcp.Description("Two letter country code")),
		mcp.WithString("code", mcp.Required(), mcp.Description("Numeric bank code")),
	), s.getBankHandler)

	mcpServer.AddTool(newTool("list_rates", "List the supported currencies and their rates against the base currency"),
		s.listRatesHandler)

	return mcpServer
}

// Run serves the tools over stdio until stdin is closed
func (s *Server) Run() error {
	s.logger.Info("Starting MCP server", "currencies", len(s.reg.Converter().Currencies()), "countries", s.reg.Countries())
	if err := server.ServeStdio(s.MCPServer()); err != nil {
		return err
	}
	return nil
}

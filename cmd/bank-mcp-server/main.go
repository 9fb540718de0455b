package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lox/bank-accounts/internal/commands"
	"github.com/lox/bank-accounts/internal/mcp"
)

type CLI struct {
	commands.CommonConfig
}

func (c *CLI) Run() error {
	logger, err := commands.SetupLogger(c.CommonConfig)
	if err != nil {
		return err
	}

	reg, err := commands.SetupRegistry(context.Background(), c.CommonConfig, logger)
	if err != nil {
		return err
	}

	return mcp.New(reg, logger).Run()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bank-mcp-server"),
		kong.Description("Serve bank account tools over the Model Context Protocol on stdio"),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

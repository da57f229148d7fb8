package main

import (
	"context"
	"fmt"
	"os"

	"fjacquet/sheet-ledger/cmd/check"
	"fjacquet/sheet-ledger/cmd/export"
	"fjacquet/sheet-ledger/cmd/keywords"
	"fjacquet/sheet-ledger/cmd/root"
	"fjacquet/sheet-ledger/cmd/serve"
	"fjacquet/sheet-ledger/cmd/show"
	"fjacquet/sheet-ledger/internal/config"
	"fjacquet/sheet-ledger/internal/logging"

	"github.com/joho/godotenv"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	if envFile := config.FindEnvFile(); envFile != "" {
		_ = godotenv.Load(envFile)
	}

	// 2. Configure the command logger before any subcommand uses it
	logging.Configure(root.Log, config.GetEnv("LOG_LEVEL", "info"), os.Getenv("LOG_FORMAT"))

	// 3. Initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(show.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(check.Cmd)
	root.Cmd.AddCommand(keywords.Cmd)
}

func main() {
	if err := root.Cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

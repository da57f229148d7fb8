// Package serve runs the ledger HTTP API
package serve

import (
	"context"
	"os/signal"
	"syscall"

	"fjacquet/sheet-ledger/cmd/root"
	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/server"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger over HTTP",
	Long: `Load the sheet once and serve the ledger as JSON:

  GET  /health
  GET  /api/ledger?view=all|income|expense&month=1..12
  POST /api/refresh
  GET  /api/connection`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	c, err := root.NewContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing: %v", err)
	}
	if addr == "" {
		addr = c.GetConfig().Server.Addr
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := c.GetLogger()
	reg := c.GetRegister()
	if _, err := reg.Load(ctx); err != nil {
		logger.WithError(err).Warn("Initial load failed")
	}

	router := server.NewRouter(reg, c.GetCSVClient(), logger, c.GetConfig().Server.AllowedOrigins...)
	if err := server.ListenAndServe(ctx, addr, router, logger); err != nil {
		root.Log.Fatalf("Error serving: %v", err)
	}
	logger.Info("Server stopped", logging.F(logging.FieldAddr, addr))
}

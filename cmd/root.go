package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NonmaskableInt/alpaca-mcp/internal/broker"
	"github.com/NonmaskableInt/alpaca-mcp/internal/config"
	"github.com/NonmaskableInt/alpaca-mcp/internal/server"
	"github.com/NonmaskableInt/alpaca-mcp/internal/tools"
)

// Version is stamped by the release build.
var Version = "dev"

var (
	flagTransport  string
	flagSSE        bool
	flagStreamable bool
	flagHost       string
	flagPort       int
)

var rootCmd = &cobra.Command{
	Use:   "alpaca-mcp",
	Short: "Alpaca trading MCP server",
	Long: `An MCP server exposing Alpaca trading and market data operations as tools.

Credentials and defaults come from the environment:
  ALPACA_API_KEY     API key id (required)
  ALPACA_SECRET_KEY  API secret (required)
  ALPACA_PAPER       use the paper trading endpoint (default true)
  MCP_TRANSPORT      stdio, sse or streamable-http (default stdio)
  MCP_HOST           bind host for the network transports (default 0.0.0.0)
  MCP_PORT           bind port for the network transports (default 8001)`,
	Version:      Version,
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagTransport, "transport", "t", "", "transport to serve on (stdio, sse, streamable-http)")
	rootCmd.Flags().BoolVar(&flagSSE, "sse", false, "serve over SSE (shorthand for --transport sse)")
	rootCmd.Flags().BoolVar(&flagStreamable, "streamable-http", false, "serve over streamable HTTP (shorthand for --transport streamable-http)")
	rootCmd.Flags().StringVar(&flagHost, "host", "", "bind host for the network transports")
	rootCmd.Flags().IntVar(&flagPort, "port", 0, "bind port for the network transports")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Transport = server.ResolveTransport(cfg.Transport, flagTransport, flagSSE, flagStreamable)
	if cmd.Flags().Changed("host") {
		cfg.Host = flagHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = flagPort
	}

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	clients := broker.NewClients(cfg.APIKey, cfg.SecretKey, cfg.Paper)
	adapter := tools.NewAdapter(clients.Trading, clients.MarketData, log)

	srv, err := server.New(adapter, server.Options{
		Transport: cfg.Transport,
		Addr:      cfg.Addr(),
		Version:   Version,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting server",
		zap.String("transport", cfg.Transport),
		zap.Bool("paper", cfg.Paper))
	return srv.Run(ctx)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

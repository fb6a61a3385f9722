// Package server hosts the MCP tool catalog over the stdio, SSE, or
// streamable HTTP transport.
package server

import (
	"context"
	"fmt"
	"os"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/NonmaskableInt/alpaca-mcp/internal/tools"
)

// Supported transports.
const (
	TransportStdio          = "stdio"
	TransportSSE            = "sse"
	TransportStreamableHTTP = "streamable-http"
)

const shutdownTimeout = 5 * time.Second

// Options configures how the tool catalog is served.
type Options struct {
	Transport string
	Addr      string
	Version   string
	Logger    *zap.Logger
}

// Server runs the MCP tool catalog over one transport.
type Server struct {
	mcp  *mcpserver.MCPServer
	opts Options
	log  *zap.Logger
}

// New assembles the MCP server and registers the tool catalog on it.
func New(adapter *tools.Adapter, opts Options) (*Server, error) {
	if err := ValidateTransport(opts.Transport); err != nil {
		return nil, err
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := mcpserver.NewMCPServer("alpaca-trading", opts.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	adapter.Register(s)

	return &Server{mcp: s, opts: opts, log: log}, nil
}

// Run serves until ctx is cancelled or the transport fails. The stdio
// transport owns the process's stdin and stdout, so all logging goes to
// stderr.
func (s *Server) Run(ctx context.Context) error {
	switch s.opts.Transport {
	case TransportSSE:
		sse := mcpserver.NewSSEServer(s.mcp)
		s.log.Info("serving MCP over sse", zap.String("addr", s.opts.Addr))
		return s.serveHTTP(ctx, func() error { return sse.Start(s.opts.Addr) }, sse.Shutdown)
	case TransportStreamableHTTP:
		httpSrv := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.log.Info("serving MCP over streamable http", zap.String("addr", s.opts.Addr))
		return s.serveHTTP(ctx, func() error { return httpSrv.Start(s.opts.Addr) }, httpSrv.Shutdown)
	default:
		stdio := mcpserver.NewStdioServer(s.mcp)
		stdio.SetErrorLogger(zap.NewStdLog(s.log))
		s.log.Info("serving MCP over stdio")
		return stdio.Listen(ctx, os.Stdin, os.Stdout)
	}
}

// serveHTTP runs a network transport and drains it once ctx is cancelled.
func (s *Server) serveHTTP(ctx context.Context, start func() error, shutdown func(context.Context) error) error {
	errCh := make(chan error, 1)
	go func() { errCh <- start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return shutdown(shutdownCtx)
}

// ValidateTransport reports whether the transport name is one the server
// can run.
func ValidateTransport(transport string) error {
	switch transport {
	case TransportStdio, TransportSSE, TransportStreamableHTTP:
		return nil
	}
	return fmt.Errorf("unsupported transport %q (expected stdio, sse or streamable-http)", transport)
}

// ResolveTransport applies the CLI overrides on top of the configured
// transport. An explicit --transport wins over the shorthand flags.
func ResolveTransport(base, explicit string, sse, streamable bool) string {
	switch {
	case explicit != "":
		return explicit
	case sse:
		return TransportSSE
	case streamable:
		return TransportStreamableHTTP
	}
	return base
}

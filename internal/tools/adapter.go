// Package tools exposes Alpaca trading and market data operations as MCP
// tools. Handlers validate their arguments before any network call and always
// answer with a success/data/error envelope; transport-level errors are
// reserved for serialization failures.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/NonmaskableInt/alpaca-mcp/internal/broker"
)

// Adapter holds the client surfaces and logger the tool handlers share.
type Adapter struct {
	trading broker.TradingClient
	data    broker.MarketDataClient
	log     *zap.Logger
}

// NewAdapter wires the tool handlers to the given clients.
func NewAdapter(trading broker.TradingClient, data broker.MarketDataClient, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{trading: trading, data: data, log: log}
}

// jsonResult serializes an envelope into the tool's text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return mcp.NewToolResultText(string(body)), nil
}

// optFloat returns a numeric argument as a pointer, or nil when the client
// did not send it.
func optFloat(req mcp.CallToolRequest, key string) *float64 {
	if v, ok := req.GetArguments()[key].(float64); ok {
		return &v
	}
	return nil
}

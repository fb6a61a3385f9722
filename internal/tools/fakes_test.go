package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NonmaskableInt/alpaca-mcp/internal/broker"
)

// fakeTradingClient plays back canned SDK results and records what the
// handlers asked for. A non-nil err is returned by every method, so tests
// that mix a healthy lookup with a failing mutation use the dedicated
// exerciseErr field.
type fakeTradingClient struct {
	calls int
	err   error

	account        *alpaca.Account
	positions      []alpaca.Position
	orders         []alpaca.Order
	order          *alpaca.Order
	closeAllOrders []alpaca.Order
	history        *alpaca.PortfolioHistory
	contracts      []alpaca.OptionContract
	contract       *alpaca.OptionContract
	exerciseErr    error

	gotOrdersReq    alpaca.GetOrdersRequest
	gotOrderID      string
	gotPlaceReq     alpaca.PlaceOrderRequest
	gotCloseSymbol  string
	gotCloseReq     alpaca.ClosePositionRequest
	gotCloseAllReq  alpaca.CloseAllPositionsRequest
	gotCancelledID  string
	gotHistoryReq   alpaca.GetPortfolioHistoryRequest
	gotContractsReq alpaca.GetOptionContractsRequest
	gotContractID   string
	gotExercised    string
}

var _ broker.TradingClient = (*fakeTradingClient)(nil)

func (f *fakeTradingClient) GetAccount() (*alpaca.Account, error) {
	f.calls++
	return f.account, f.err
}

func (f *fakeTradingClient) GetPositions() ([]alpaca.Position, error) {
	f.calls++
	return f.positions, f.err
}

func (f *fakeTradingClient) ClosePosition(symbol string, req alpaca.ClosePositionRequest) (*alpaca.Order, error) {
	f.calls++
	f.gotCloseSymbol = symbol
	f.gotCloseReq = req
	return f.order, f.err
}

func (f *fakeTradingClient) CloseAllPositions(req alpaca.CloseAllPositionsRequest) ([]alpaca.Order, error) {
	f.calls++
	f.gotCloseAllReq = req
	return f.closeAllOrders, f.err
}

func (f *fakeTradingClient) GetOrders(req alpaca.GetOrdersRequest) ([]alpaca.Order, error) {
	f.calls++
	f.gotOrdersReq = req
	return f.orders, f.err
}

func (f *fakeTradingClient) GetOrder(orderID string) (*alpaca.Order, error) {
	f.calls++
	f.gotOrderID = orderID
	return f.order, f.err
}

func (f *fakeTradingClient) PlaceOrder(req alpaca.PlaceOrderRequest) (*alpaca.Order, error) {
	f.calls++
	f.gotPlaceReq = req
	return f.order, f.err
}

func (f *fakeTradingClient) CancelOrder(orderID string) error {
	f.calls++
	f.gotCancelledID = orderID
	return f.err
}

func (f *fakeTradingClient) GetPortfolioHistory(req alpaca.GetPortfolioHistoryRequest) (*alpaca.PortfolioHistory, error) {
	f.calls++
	f.gotHistoryReq = req
	return f.history, f.err
}

func (f *fakeTradingClient) GetOptionContracts(req alpaca.GetOptionContractsRequest) ([]alpaca.OptionContract, error) {
	f.calls++
	f.gotContractsReq = req
	return f.contracts, f.err
}

func (f *fakeTradingClient) GetOptionContract(symbolOrID string) (*alpaca.OptionContract, error) {
	f.calls++
	f.gotContractID = symbolOrID
	return f.contract, f.err
}

func (f *fakeTradingClient) ExerciseOptionsPosition(symbol string) error {
	f.calls++
	f.gotExercised = symbol
	if f.exerciseErr != nil {
		return f.exerciseErr
	}
	return f.err
}

// fakeDataClient mirrors fakeTradingClient for the market data surface.
type fakeDataClient struct {
	calls int
	err   error

	quotes map[string]marketdata.Quote
	bars   map[string][]marketdata.Bar

	gotQuoteSymbols []string
	gotBarSymbols   []string
	gotBarsReq      marketdata.GetBarsRequest
}

var _ broker.MarketDataClient = (*fakeDataClient)(nil)

func (f *fakeDataClient) GetLatestQuotes(symbols []string, req marketdata.GetLatestQuoteRequest) (map[string]marketdata.Quote, error) {
	f.calls++
	f.gotQuoteSymbols = symbols
	return f.quotes, f.err
}

func (f *fakeDataClient) GetMultiBars(symbols []string, req marketdata.GetBarsRequest) (map[string][]marketdata.Bar, error) {
	f.calls++
	f.gotBarSymbols = symbols
	f.gotBarsReq = req
	return f.bars, f.err
}

func newTestAdapter(trading *fakeTradingClient, data *fakeDataClient) *Adapter {
	return NewAdapter(trading, data, zap.NewNop())
}

// callTool drives a handler the way the MCP server would and returns the
// serialized envelope.
func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) string {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

// decode unpacks an envelope for shape assertions. Numbers come back as
// float64, decimal payload fields as strings.
func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	return env
}

// payload returns the envelope's data member as an object.
func payload(t *testing.T, raw string) map[string]any {
	t.Helper()
	env := decode(t, raw)
	require.Equal(t, true, env["success"], "expected success envelope, got %s", raw)
	data, ok := env["data"].(map[string]any)
	require.True(t, ok, "expected object payload, got %s", raw)
	return data
}

// payloadList returns the envelope's data member as a list.
func payloadList(t *testing.T, raw string) []any {
	t.Helper()
	env := decode(t, raw)
	require.Equal(t, true, env["success"], "expected success envelope, got %s", raw)
	data, ok := env["data"].([]any)
	require.True(t, ok, "expected list payload, got %s", raw)
	return data
}

// wantFailure asserts a failure envelope carrying exactly msg.
func wantFailure(t *testing.T, raw, msg string) {
	t.Helper()
	env := decode(t, raw)
	require.Equal(t, false, env["success"], "expected failure envelope, got %s", raw)
	require.Equal(t, msg, env["error"])
}

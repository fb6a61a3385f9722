package tools

import (
	"errors"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLatestQuotes(t *testing.T) {
	ts := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	data := &fakeDataClient{quotes: map[string]marketdata.Quote{
		"MSFT": {Timestamp: ts, BidPrice: 0, BidSize: 0, AskPrice: 415.2, AskSize: 2},
		"AAPL": {Timestamp: ts, BidPrice: 174.5, BidSize: 100, AskPrice: 175.5, AskSize: 150},
	}}
	a := newTestAdapter(nil, data)

	quotes := payloadList(t, callTool(t, a.handleGetLatestQuotes, map[string]any{"symbols": "aapl, msft"}))
	require.Len(t, quotes, 2)
	assert.Equal(t, []string{"AAPL", "MSFT"}, data.gotQuoteSymbols)

	first := quotes[0].(map[string]any)
	assert.Equal(t, "AAPL", first["symbol"])
	assert.Equal(t, 174.5, first["bid_price"])
	assert.Equal(t, float64(100), first["bid_size"])

	second := quotes[1].(map[string]any)
	assert.Equal(t, "MSFT", second["symbol"])
	assert.Nil(t, second["bid_price"])
	assert.Nil(t, second["bid_size"])
	assert.Equal(t, 415.2, second["ask_price"])
}

func TestGetLatestQuotesError(t *testing.T) {
	data := &fakeDataClient{err: errors.New("subscription required")}
	a := newTestAdapter(nil, data)

	raw := callTool(t, a.handleGetLatestQuotes, map[string]any{"symbols": "AAPL"})
	wantFailure(t, raw, "subscription required")
}

func TestGetStockBarsDefaults(t *testing.T) {
	data := &fakeDataClient{bars: map[string][]marketdata.Bar{}}
	a := newTestAdapter(nil, data)

	bars := payloadList(t, callTool(t, a.handleGetStockBars, map[string]any{"symbols": "AAPL"}))
	assert.Empty(t, bars)

	assert.Equal(t, []string{"AAPL"}, data.gotBarSymbols)
	assert.Equal(t, marketdata.NewTimeFrame(1, marketdata.Day), data.gotBarsReq.TimeFrame)
	assert.Equal(t, 100, data.gotBarsReq.TotalLimit)
	assert.True(t, data.gotBarsReq.Start.IsZero())
	assert.True(t, data.gotBarsReq.End.IsZero())
}

func TestGetStockBarsTimeRange(t *testing.T) {
	data := &fakeDataClient{}
	a := newTestAdapter(nil, data)

	args := map[string]any{
		"symbols":   "AAPL",
		"timeframe": "5Min",
		"start":     "2024-01-02",
		"end":       "2024-03-01T15:04:05Z",
		"limit":     50.0,
	}
	payloadList(t, callTool(t, a.handleGetStockBars, args))

	req := data.gotBarsReq
	assert.Equal(t, marketdata.NewTimeFrame(5, marketdata.Min), req.TimeFrame)
	assert.Equal(t, 50, req.TotalLimit)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), req.Start)
	assert.Equal(t, time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC), req.End)
}

func TestGetStockBarsBadStart(t *testing.T) {
	data := &fakeDataClient{}
	a := newTestAdapter(nil, data)

	env := decode(t, callTool(t, a.handleGetStockBars, map[string]any{"symbols": "AAPL", "start": "not-a-date"}))
	assert.Equal(t, false, env["success"])
	assert.Zero(t, data.calls)
}

func TestGetStockBarsFlattensSorted(t *testing.T) {
	ts := time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC)
	data := &fakeDataClient{bars: map[string][]marketdata.Bar{
		"MSFT": {{Timestamp: ts, Open: 370, High: 375, Low: 369, Close: 374, Volume: 1200}},
		"AAPL": {
			{Timestamp: ts, Open: 185, High: 186, Low: 184, Close: 185.5, Volume: 900, TradeCount: 42, VWAP: 185.2},
			{Timestamp: ts.Add(24 * time.Hour), Open: 185.5, High: 187, Low: 185, Close: 186.4, Volume: 1100},
		},
	}}
	a := newTestAdapter(nil, data)

	bars := payloadList(t, callTool(t, a.handleGetStockBars, map[string]any{"symbols": "aapl,msft"}))
	require.Len(t, bars, 3)

	first := bars[0].(map[string]any)
	assert.Equal(t, "AAPL", first["symbol"])
	assert.Equal(t, 185.0, first["open"])
	assert.Equal(t, float64(42), first["trade_count"])
	assert.Equal(t, 185.2, first["vwap"])

	// Zero trade counts and vwap stay out of the payload.
	second := bars[1].(map[string]any)
	assert.NotContains(t, second, "trade_count")
	assert.NotContains(t, second, "vwap")

	last := bars[2].(map[string]any)
	assert.Equal(t, "MSFT", last["symbol"])
}

func TestGetPortfolioHistory(t *testing.T) {
	trading := &fakeTradingClient{history: &alpaca.PortfolioHistory{
		Timestamp:     []int64{1700000000, 1700086400, 1700172800},
		Equity:        []decimal.Decimal{d(t, "100000"), d(t, "100500"), d(t, "101000")},
		ProfitLoss:    []decimal.Decimal{d(t, "0"), d(t, "500")},
		ProfitLossPct: []decimal.Decimal{d(t, "0"), d(t, "0.005")},
	}}
	a := newTestAdapter(trading, nil)

	args := map[string]any{"period": "3M", "timeframe": "1D", "extended_hours": true}
	points := payloadList(t, callTool(t, a.handleGetPortfolioHistory, args))
	require.Len(t, points, 3)

	first := points[0].(map[string]any)
	assert.Equal(t, float64(1700000000), first["timestamp"])
	assert.Equal(t, "100000", first["equity"])
	assert.Equal(t, "0", first["profit_loss"])

	// The shorter series leave their trailing points null.
	last := points[2].(map[string]any)
	assert.Equal(t, "101000", last["equity"])
	assert.Nil(t, last["profit_loss"])
	assert.Nil(t, last["profit_loss_pct"])

	req := trading.gotHistoryReq
	assert.Equal(t, "3M", req.Period)
	assert.Equal(t, alpaca.TimeFrame("1D"), req.TimeFrame)
	assert.True(t, req.ExtendedHours)
}

func TestGetPortfolioHistoryError(t *testing.T) {
	trading := &fakeTradingClient{err: errors.New("history unavailable")}
	a := newTestAdapter(trading, nil)

	wantFailure(t, callTool(t, a.handleGetPortfolioHistory, nil), "history unavailable")
}

package tools

import (
	"errors"
	"testing"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func dp(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	v := d(t, s)
	return &v
}

func TestGetAccountInfo(t *testing.T) {
	trading := &fakeTradingClient{account: &alpaca.Account{
		ID:            "904837e3-3b76-47ec-b432-046db621571b",
		AccountNumber: "PA3ABC123",
		Status:        "ACTIVE",
		Currency:      "USD",
		Cash:          d(t, "100000.00"),
		BuyingPower:   d(t, "200000"),
		Equity:        d(t, "105250.75"),
		DaytradeCount: 2,
	}}
	a := newTestAdapter(trading, nil)

	data := payload(t, callTool(t, a.handleGetAccountInfo, nil))
	assert.Equal(t, "904837e3-3b76-47ec-b432-046db621571b", data["account_id"])
	assert.Equal(t, "PA3ABC123", data["account_number"])
	assert.Equal(t, "100000", data["cash"])
	assert.Equal(t, "105250.75", data["equity"])
	assert.Equal(t, float64(2), data["daytrade_count"])
}

func TestGetAccountInfoError(t *testing.T) {
	trading := &fakeTradingClient{err: errors.New("account fetch failed")}
	a := newTestAdapter(trading, nil)

	wantFailure(t, callTool(t, a.handleGetAccountInfo, nil), "account fetch failed")
}

func TestGetPositionsEmpty(t *testing.T) {
	a := newTestAdapter(&fakeTradingClient{}, nil)

	data := payloadList(t, callTool(t, a.handleGetPositions, nil))
	assert.Empty(t, data)
}

func TestGetPositions(t *testing.T) {
	trading := &fakeTradingClient{positions: []alpaca.Position{{
		Symbol:        "AAPL",
		Qty:           d(t, "10"),
		Side:          "long",
		AvgEntryPrice: d(t, "150.25"),
		CostBasis:     d(t, "1502.50"),
		MarketValue:   dp(t, "1755"),
		UnrealizedPL:  dp(t, "252.5"),
		CurrentPrice:  dp(t, "175.50"),
	}}}
	a := newTestAdapter(trading, nil)

	data := payloadList(t, callTool(t, a.handleGetPositions, nil))
	require.Len(t, data, 1)
	pos := data[0].(map[string]any)
	assert.Equal(t, "AAPL", pos["symbol"])
	assert.Equal(t, "10", pos["quantity"])
	assert.Equal(t, "long", pos["side"])
	assert.Equal(t, "150.25", pos["avg_entry_price"])
	assert.Equal(t, "175.5", pos["current_price"])
	assert.Nil(t, pos["qty_available"])
}

func TestClosePositionValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{
			name:    "both qty and percentage",
			args:    map[string]any{"symbol": "AAPL", "qty": 10.0, "percentage": 50.0},
			wantErr: "Only one of qty or percentage can be provided, not both",
		},
		{
			name:    "non-positive qty",
			args:    map[string]any{"symbol": "AAPL", "qty": -1.0},
			wantErr: "Quantity must be greater than 0",
		},
		{
			name:    "zero percentage",
			args:    map[string]any{"symbol": "AAPL", "percentage": 0.0},
			wantErr: "Percentage must be between 0 and 100",
		},
		{
			name:    "percentage above 100",
			args:    map[string]any{"symbol": "AAPL", "percentage": 150.0},
			wantErr: "Percentage must be between 0 and 100",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trading := &fakeTradingClient{}
			a := newTestAdapter(trading, nil)

			wantFailure(t, callTool(t, a.handleClosePosition, tt.args), tt.wantErr)
			assert.Zero(t, trading.calls)
		})
	}
}

func TestClosePositionQty(t *testing.T) {
	orderID := uuid.NewString()
	trading := &fakeTradingClient{order: &alpaca.Order{
		ID:     orderID,
		Symbol: "AAPL",
		Qty:    dp(t, "10"),
		Side:   alpaca.Sell,
		Status: "accepted",
	}}
	a := newTestAdapter(trading, nil)

	data := payload(t, callTool(t, a.handleClosePosition, map[string]any{"symbol": "AAPL", "qty": 10.0}))
	assert.Equal(t, orderID, data["order_id"])
	assert.Equal(t, "Position close order submitted for AAPL", data["message"])

	assert.Equal(t, "AAPL", trading.gotCloseSymbol)
	assert.True(t, trading.gotCloseReq.Qty.Equal(decimal.NewFromInt(10)))
	assert.True(t, trading.gotCloseReq.Percentage.IsZero())
}

func TestClosePositionPercentage(t *testing.T) {
	trading := &fakeTradingClient{order: &alpaca.Order{ID: uuid.NewString(), Symbol: "TSLA", Status: "accepted"}}
	a := newTestAdapter(trading, nil)

	payload(t, callTool(t, a.handleClosePosition, map[string]any{"symbol": "TSLA", "percentage": 50.0}))
	assert.True(t, trading.gotCloseReq.Percentage.Equal(decimal.NewFromInt(50)))
	assert.True(t, trading.gotCloseReq.Qty.IsZero())
}

func TestClosePositionRemoteError(t *testing.T) {
	trading := &fakeTradingClient{err: errors.New("position does not exist")}
	a := newTestAdapter(trading, nil)

	raw := callTool(t, a.handleClosePosition, map[string]any{"symbol": "AAPL"})
	wantFailure(t, raw, "Failed to close position: position does not exist")
}

func TestCloseAllPositions(t *testing.T) {
	trading := &fakeTradingClient{closeAllOrders: []alpaca.Order{
		{ID: uuid.NewString(), Symbol: "AAPL"},
		{ID: uuid.NewString(), Symbol: "TSLA"},
	}}
	a := newTestAdapter(trading, nil)

	data := payload(t, callTool(t, a.handleCloseAllPositions, map[string]any{"cancel_orders": true}))
	assert.Equal(t, float64(2), data["closed_count"])
	assert.Equal(t, float64(0), data["failed_count"])
	assert.Equal(t, "Closed 2 positions", data["message"])
	assert.Equal(t, []any{}, data["failed_positions"])

	assert.True(t, trading.gotCloseAllReq.CancelOrders)
}

func TestCloseAllPositionsPartialFailure(t *testing.T) {
	trading := &fakeTradingClient{
		closeAllOrders: []alpaca.Order{{ID: uuid.NewString(), Symbol: "AAPL"}},
		err:            errors.New("TSLA is not closable"),
	}
	a := newTestAdapter(trading, nil)

	data := payload(t, callTool(t, a.handleCloseAllPositions, nil))
	assert.Equal(t, float64(1), data["closed_count"])
	assert.Equal(t, float64(1), data["failed_count"])
	assert.Equal(t, "Closed 1 positions, 1 failed", data["message"])
	assert.Equal(t, []any{"TSLA is not closable"}, data["failed_positions"])
}

func TestCloseAllPositionsFailure(t *testing.T) {
	trading := &fakeTradingClient{err: errors.New("api unavailable")}
	a := newTestAdapter(trading, nil)

	wantFailure(t, callTool(t, a.handleCloseAllPositions, nil), "Failed to close all positions: api unavailable")
}

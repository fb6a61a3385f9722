package tools

import (
	"context"
	"fmt"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/NonmaskableInt/alpaca-mcp/internal/types"
)

func (a *Adapter) handleGetAccountInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a.log.Info("getting account info")

	account, err := a.trading.GetAccount()
	if err != nil {
		a.log.Error("failed to get account info", zap.Error(err))
		return jsonResult(types.AccountResponse{Success: false, Error: err.Error()})
	}

	info := toAccountInfo(account)
	return jsonResult(types.AccountResponse{Success: true, Data: &info})
}

func (a *Adapter) handleGetPositions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a.log.Info("getting positions")

	positions, err := a.trading.GetPositions()
	if err != nil {
		a.log.Error("failed to get positions", zap.Error(err))
		return jsonResult(types.PositionsResponse{Success: false, Error: err.Error()})
	}

	out := make([]types.Position, 0, len(positions))
	for _, p := range positions {
		out = append(out, toPosition(p))
	}
	return jsonResult(types.PositionsResponse{Success: true, Data: out})
}

func (a *Adapter) handleClosePosition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := req.RequireString("symbol")
	if err != nil {
		return jsonResult(types.ClosePositionResponse{Success: false, Error: err.Error()})
	}
	qty := optFloat(req, "qty")
	percentage := optFloat(req, "percentage")

	if qty != nil && percentage != nil {
		return jsonResult(types.ClosePositionResponse{Success: false, Error: "Only one of qty or percentage can be provided, not both"})
	}
	if qty != nil && *qty <= 0 {
		return jsonResult(types.ClosePositionResponse{Success: false, Error: "Quantity must be greater than 0"})
	}
	if percentage != nil && (*percentage <= 0 || *percentage > 100) {
		return jsonResult(types.ClosePositionResponse{Success: false, Error: "Percentage must be between 0 and 100"})
	}

	a.log.Info("closing position",
		zap.String("symbol", symbol),
		zap.Float64p("qty", qty),
		zap.Float64p("percentage", percentage))

	var closeReq alpaca.ClosePositionRequest
	if qty != nil {
		closeReq.Qty = decimal.NewFromFloat(*qty)
	} else if percentage != nil {
		closeReq.Percentage = decimal.NewFromFloat(*percentage)
	}

	order, err := a.trading.ClosePosition(symbol, closeReq)
	if err != nil {
		a.log.Error("failed to close position", zap.String("symbol", symbol), zap.Error(err))
		return jsonResult(types.ClosePositionResponse{Success: false, Error: fmt.Sprintf("Failed to close position: %s", err)})
	}

	result := types.ClosePositionResult{
		OrderID: order.ID,
		Symbol:  order.Symbol,
		Qty:     derefDecimal(order.Qty),
		Side:    string(order.Side),
		Status:  order.Status,
		Message: fmt.Sprintf("Position close order submitted for %s", symbol),
	}
	return jsonResult(types.ClosePositionResponse{Success: true, Data: &result})
}

func (a *Adapter) handleCloseAllPositions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cancelOrders := req.GetBool("cancel_orders", false)
	a.log.Info("closing all positions", zap.Bool("cancel_orders", cancelOrders))

	orders, err := a.trading.CloseAllPositions(alpaca.CloseAllPositionsRequest{CancelOrders: cancelOrders})
	if err != nil && len(orders) == 0 {
		a.log.Error("failed to close all positions", zap.Error(err))
		return jsonResult(types.CloseAllPositionsResponse{Success: false, Error: fmt.Sprintf("Failed to close all positions: %s", err)})
	}

	closed := make([]types.ClosedPosition, 0, len(orders))
	for _, o := range orders {
		closed = append(closed, types.ClosedPosition{Symbol: o.Symbol, OrderID: o.ID})
	}
	failed := []string{}
	if err != nil {
		// The sweep finished but some positions did not close.
		failed = append(failed, err.Error())
	}

	message := fmt.Sprintf("Closed %d positions", len(closed))
	if len(failed) > 0 {
		message += fmt.Sprintf(", %d failed", len(failed))
	}

	result := types.CloseAllResult{
		ClosedCount:     len(closed),
		FailedCount:     len(failed),
		ClosedPositions: closed,
		FailedPositions: failed,
		Message:         message,
	}
	return jsonResult(types.CloseAllPositionsResponse{Success: true, Data: &result})
}

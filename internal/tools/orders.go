package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/NonmaskableInt/alpaca-mcp/internal/types"
)

func (a *Adapter) handleGetOrders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := req.GetString("status", "")
	limit := req.GetInt("limit", 100)
	symbols := req.GetString("symbols", "")

	a.log.Info("getting orders", zap.String("status", status), zap.Int("limit", limit))

	orders, err := a.trading.GetOrders(alpaca.GetOrdersRequest{
		Status:  status,
		Limit:   limit,
		Symbols: parseSymbols(symbols),
	})
	if err != nil {
		a.log.Error("failed to get orders", zap.Error(err))
		return jsonResult(types.OrdersResponse{Success: false, Error: err.Error()})
	}

	out := make([]types.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	return jsonResult(types.OrdersResponse{Success: true, Data: out})
}

func (a *Adapter) handleGetOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orderID, err := req.RequireString("order_id")
	if err != nil {
		return jsonResult(types.OrderResponse{Success: false, Error: err.Error()})
	}

	a.log.Info("getting order", zap.String("order_id", orderID))

	order, err := a.trading.GetOrder(orderID)
	if err != nil {
		a.log.Error("failed to get order", zap.String("order_id", orderID), zap.Error(err))
		return jsonResult(types.OrderResponse{Success: false, Error: fmt.Sprintf("Order not found or error: %s", err)})
	}

	out := toOrder(*order)
	return jsonResult(types.OrderResponse{Success: true, Data: &out})
}

// orderArgs pulls the arguments shared by the simple placement tools.
func orderArgs(req mcp.CallToolRequest) (symbol string, qty float64, side string, tif string, err error) {
	if symbol, err = req.RequireString("symbol"); err != nil {
		return
	}
	if qty, err = req.RequireFloat("qty"); err != nil {
		return
	}
	if side, err = req.RequireString("side"); err != nil {
		return
	}
	tif = req.GetString("time_in_force", "gtc")
	return
}

func (a *Adapter) handlePlaceMarketOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, qty, side, tif, err := orderArgs(req)
	if err != nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}
	if msg := validateOrderParams(orderParams{qty: &qty}); msg != "" {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: msg})
	}
	if msg := validateSide(side); msg != "" {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: msg})
	}

	a.log.Info("placing market order",
		zap.String("side", side), zap.Float64("qty", qty), zap.String("symbol", symbol))

	order, err := a.trading.PlaceOrder(equityOrder(symbol, qty, toSide(side), alpaca.Market, toTimeInForce(tif)))
	if err != nil {
		a.log.Error("failed to place market order", zap.Error(err))
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}

	placed := toPlacedOrder(order)
	return jsonResult(types.OrderPlacementResponse{Success: true, Data: &placed})
}

func (a *Adapter) handlePlaceLimitOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, qty, side, tif, err := orderArgs(req)
	if err != nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}
	limitPrice, err := req.RequireFloat("limit_price")
	if err != nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}
	if msg := validateOrderParams(orderParams{qty: &qty, limitPrice: &limitPrice}); msg != "" {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: msg})
	}
	if msg := validateSide(side); msg != "" {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: msg})
	}

	a.log.Info("placing limit order",
		zap.String("side", side), zap.Float64("qty", qty), zap.String("symbol", symbol),
		zap.Float64("limit_price", limitPrice))

	orderReq := equityOrder(symbol, qty, toSide(side), alpaca.Limit, toTimeInForce(tif))
	orderReq.LimitPrice = decimalPtr(limitPrice)

	order, err := a.trading.PlaceOrder(orderReq)
	if err != nil {
		a.log.Error("failed to place limit order", zap.Error(err))
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}

	placed := toPlacedOrder(order)
	placed.LimitPrice = order.LimitPrice
	return jsonResult(types.OrderPlacementResponse{Success: true, Data: &placed})
}

func (a *Adapter) handlePlaceStopOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, qty, side, tif, err := orderArgs(req)
	if err != nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}
	stopPrice, err := req.RequireFloat("stop_price")
	if err != nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}
	if msg := validateOrderParams(orderParams{qty: &qty, stopPrice: &stopPrice}); msg != "" {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: msg})
	}
	if msg := validateSide(side); msg != "" {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: msg})
	}

	a.log.Info("placing stop order",
		zap.String("side", side), zap.Float64("qty", qty), zap.String("symbol", symbol),
		zap.Float64("stop_price", stopPrice))

	orderReq := equityOrder(symbol, qty, toSide(side), alpaca.Stop, toTimeInForce(tif))
	orderReq.StopPrice = decimalPtr(stopPrice)

	order, err := a.trading.PlaceOrder(orderReq)
	if err != nil {
		a.log.Error("failed to place stop order", zap.Error(err))
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}

	placed := toPlacedOrder(order)
	placed.StopPrice = order.StopPrice
	return jsonResult(types.OrderPlacementResponse{Success: true, Data: &placed})
}

func (a *Adapter) handlePlaceStopLimitOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, qty, side, tif, err := orderArgs(req)
	if err != nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}
	stopPrice, err := req.RequireFloat("stop_price")
	if err != nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}
	limitPrice, err := req.RequireFloat("limit_price")
	if err != nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}
	if msg := validateOrderParams(orderParams{qty: &qty, limitPrice: &limitPrice, stopPrice: &stopPrice}); msg != "" {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: msg})
	}
	if msg := validateSide(side); msg != "" {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: msg})
	}

	a.log.Info("placing stop limit order",
		zap.String("side", side), zap.Float64("qty", qty), zap.String("symbol", symbol),
		zap.Float64("stop_price", stopPrice), zap.Float64("limit_price", limitPrice))

	orderReq := equityOrder(symbol, qty, toSide(side), alpaca.StopLimit, toTimeInForce(tif))
	orderReq.StopPrice = decimalPtr(stopPrice)
	orderReq.LimitPrice = decimalPtr(limitPrice)

	order, err := a.trading.PlaceOrder(orderReq)
	if err != nil {
		a.log.Error("failed to place stop limit order", zap.Error(err))
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}

	placed := toPlacedOrder(order)
	placed.StopPrice = order.StopPrice
	placed.LimitPrice = order.LimitPrice
	return jsonResult(types.OrderPlacementResponse{Success: true, Data: &placed})
}

func (a *Adapter) handlePlaceTrailingStopOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, qty, side, tif, err := orderArgs(req)
	if err != nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}
	trailPercent := optFloat(req, "trail_percent")
	trailPrice := optFloat(req, "trail_price")

	if msg := validateOrderParams(orderParams{qty: &qty, trailPrice: trailPrice}); msg != "" {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: msg})
	}
	if trailPercent != nil && *trailPercent <= 0 {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: "Trail percent must be greater than 0"})
	}
	if trailPercent == nil && trailPrice == nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: "Either trail_percent or trail_price must be provided"})
	}
	if trailPercent != nil && trailPrice != nil {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: "Only one of trail_percent or trail_price can be provided, not both"})
	}
	if msg := validateSide(side); msg != "" {
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: msg})
	}

	a.log.Info("placing trailing stop order",
		zap.String("side", side), zap.Float64("qty", qty), zap.String("symbol", symbol),
		zap.Float64p("trail_percent", trailPercent), zap.Float64p("trail_price", trailPrice))

	orderReq := equityOrder(symbol, qty, toSide(side), alpaca.TrailingStop, toTimeInForce(tif))
	orderReq.TrailPercent = optDecimal(trailPercent)
	orderReq.TrailPrice = optDecimal(trailPrice)

	order, err := a.trading.PlaceOrder(orderReq)
	if err != nil {
		a.log.Error("failed to place trailing stop order", zap.Error(err))
		return jsonResult(types.OrderPlacementResponse{Success: false, Error: err.Error()})
	}

	placed := toPlacedOrder(order)
	placed.TrailPercent = order.TrailPercent
	placed.TrailPrice = order.TrailPrice
	return jsonResult(types.OrderPlacementResponse{Success: true, Data: &placed})
}

func (a *Adapter) handlePlaceBracketOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, qty, side, tif, err := orderArgs(req)
	if err != nil {
		return jsonResult(types.BracketOrderResponse{Success: false, Error: err.Error()})
	}
	takeProfit, err := req.RequireFloat("take_profit_limit_price")
	if err != nil {
		return jsonResult(types.BracketOrderResponse{Success: false, Error: err.Error()})
	}
	stopLossStop, err := req.RequireFloat("stop_loss_stop_price")
	if err != nil {
		return jsonResult(types.BracketOrderResponse{Success: false, Error: err.Error()})
	}
	stopLossLimit := optFloat(req, "stop_loss_limit_price")
	entryType := req.GetString("entry_type", "market")
	entryLimitPrice := optFloat(req, "entry_limit_price")

	if msg := validateOrderParams(orderParams{qty: &qty, limitPrice: entryLimitPrice, stopPrice: &stopLossStop}); msg != "" {
		return jsonResult(types.BracketOrderResponse{Success: false, Error: msg})
	}
	if takeProfit <= 0 {
		return jsonResult(types.BracketOrderResponse{Success: false, Error: "Take profit limit price must be greater than 0"})
	}
	if stopLossLimit != nil && *stopLossLimit <= 0 {
		return jsonResult(types.BracketOrderResponse{Success: false, Error: "Stop loss limit price must be greater than 0"})
	}
	if strings.ToLower(entryType) == "limit" && entryLimitPrice == nil {
		return jsonResult(types.BracketOrderResponse{Success: false, Error: "entry_limit_price is required when entry_type is 'limit'"})
	}
	if msg := validateSide(side); msg != "" {
		return jsonResult(types.BracketOrderResponse{Success: false, Error: msg})
	}

	a.log.Info("placing bracket order",
		zap.String("side", side), zap.Float64("qty", qty), zap.String("symbol", symbol),
		zap.Float64("take_profit", takeProfit), zap.Float64("stop_loss", stopLossStop))

	orderReq := equityOrder(symbol, qty, toSide(side), alpaca.Market, toTimeInForce(tif))
	if strings.ToLower(entryType) != "market" {
		orderReq.Type = alpaca.Limit
		orderReq.LimitPrice = optDecimal(entryLimitPrice)
	}
	orderReq.OrderClass = alpaca.Bracket
	orderReq.TakeProfit = &alpaca.TakeProfit{LimitPrice: decimalPtr(takeProfit)}
	orderReq.StopLoss = stopLossSpec(stopLossStop, stopLossLimit)

	order, err := a.trading.PlaceOrder(orderReq)
	if err != nil {
		a.log.Error("failed to place bracket order", zap.Error(err))
		return jsonResult(types.BracketOrderResponse{Success: false, Error: err.Error()})
	}

	result := types.BracketOrderResult{
		OrderID:              order.ID,
		Symbol:               order.Symbol,
		Qty:                  derefDecimal(order.Qty),
		Side:                 string(order.Side),
		EntryType:            entryType,
		EntryLimitPrice:      optDecimal(entryLimitPrice),
		TakeProfitLimitPrice: decimal.NewFromFloat(takeProfit),
		StopLossStopPrice:    decimal.NewFromFloat(stopLossStop),
		StopLossLimitPrice:   optDecimal(stopLossLimit),
		Status:               order.Status,
		OrderClass:           "bracket",
	}
	return jsonResult(types.BracketOrderResponse{Success: true, Data: &result})
}

func (a *Adapter) handlePlaceOCOOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, qty, side, tif, err := orderArgs(req)
	if err != nil {
		return jsonResult(types.OCOOrderResponse{Success: false, Error: err.Error()})
	}
	takeProfit, err := req.RequireFloat("take_profit_limit_price")
	if err != nil {
		return jsonResult(types.OCOOrderResponse{Success: false, Error: err.Error()})
	}
	stopLossStop, err := req.RequireFloat("stop_loss_stop_price")
	if err != nil {
		return jsonResult(types.OCOOrderResponse{Success: false, Error: err.Error()})
	}
	stopLossLimit := optFloat(req, "stop_loss_limit_price")

	if msg := validateOrderParams(orderParams{qty: &qty, stopPrice: &stopLossStop}); msg != "" {
		return jsonResult(types.OCOOrderResponse{Success: false, Error: msg})
	}
	if takeProfit <= 0 {
		return jsonResult(types.OCOOrderResponse{Success: false, Error: "Take profit limit price must be greater than 0"})
	}
	if stopLossLimit != nil && *stopLossLimit <= 0 {
		return jsonResult(types.OCOOrderResponse{Success: false, Error: "Stop loss limit price must be greater than 0"})
	}
	if msg := validateSide(side); msg != "" {
		return jsonResult(types.OCOOrderResponse{Success: false, Error: msg})
	}

	a.log.Info("placing OCO order",
		zap.String("side", side), zap.Float64("qty", qty), zap.String("symbol", symbol),
		zap.Float64("take_profit", takeProfit), zap.Float64("stop_loss", stopLossStop))

	// The take profit limit doubles as the order's own limit price, which the
	// API expects for the OCO class.
	orderReq := equityOrder(symbol, qty, toSide(side), alpaca.Limit, toTimeInForce(tif))
	orderReq.LimitPrice = decimalPtr(takeProfit)
	orderReq.OrderClass = alpaca.OCO
	orderReq.TakeProfit = &alpaca.TakeProfit{LimitPrice: decimalPtr(takeProfit)}
	orderReq.StopLoss = stopLossSpec(stopLossStop, stopLossLimit)

	order, err := a.trading.PlaceOrder(orderReq)
	if err != nil {
		a.log.Error("failed to place OCO order", zap.Error(err))
		return jsonResult(types.OCOOrderResponse{Success: false, Error: err.Error()})
	}

	result := types.OCOOrderResult{
		OrderID:              order.ID,
		Symbol:               order.Symbol,
		Qty:                  derefDecimal(order.Qty),
		Side:                 string(order.Side),
		TakeProfitLimitPrice: decimal.NewFromFloat(takeProfit),
		StopLossStopPrice:    decimal.NewFromFloat(stopLossStop),
		StopLossLimitPrice:   optDecimal(stopLossLimit),
		Status:               order.Status,
		OrderClass:           "oco",
	}
	return jsonResult(types.OCOOrderResponse{Success: true, Data: &result})
}

func (a *Adapter) handleCancelOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orderID, err := req.RequireString("order_id")
	if err != nil {
		return jsonResult(types.CancelOrderResponse{Success: false, Error: err.Error()})
	}

	a.log.Info("cancelling order", zap.String("order_id", orderID))

	if err := a.trading.CancelOrder(orderID); err != nil {
		a.log.Error("failed to cancel order", zap.String("order_id", orderID), zap.Error(err))
		return jsonResult(types.CancelOrderResponse{Success: false, Error: err.Error()})
	}

	result := types.CancelResult{Message: fmt.Sprintf("Order %s cancelled successfully", orderID)}
	return jsonResult(types.CancelOrderResponse{Success: true, Data: &result})
}

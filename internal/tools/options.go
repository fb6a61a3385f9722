package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/NonmaskableInt/alpaca-mcp/internal/types"
)

const positionIntentValues = "buy_to_open, buy_to_close, sell_to_open, sell_to_close"

func (a *Adapter) handleGetOptionContracts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contractsReq := alpaca.GetOptionContractsRequest{
		TotalLimit: min(req.GetInt("limit", 100), 1000),
	}
	if underlying := req.GetString("underlying_symbols", ""); underlying != "" {
		contractsReq.UnderlyingSymbols = strings.Join(parseSymbols(underlying), ",")
	}
	for arg, field := range map[string]*civil.Date{
		"expiration_date":     &contractsReq.ExpirationDate,
		"expiration_date_gte": &contractsReq.ExpirationDateGTE,
		"expiration_date_lte": &contractsReq.ExpirationDateLTE,
	} {
		if v := req.GetString(arg, ""); v != "" {
			date, err := civil.ParseDate(v)
			if err != nil {
				return jsonResult(types.OptionContractsResponse{Success: false, Error: err.Error()})
			}
			*field = date
		}
	}
	contractsReq.RootSymbol = req.GetString("root_symbol", "")
	switch strings.ToLower(req.GetString("contract_type", "")) {
	case "call":
		contractsReq.Type = alpaca.OptionTypeCall
	case "put":
		contractsReq.Type = alpaca.OptionTypePut
	}
	switch strings.ToLower(req.GetString("style", "")) {
	case "american":
		contractsReq.Style = alpaca.OptionStyleAmerican
	case "european":
		contractsReq.Style = alpaca.OptionStyleEuropean
	}
	for arg, field := range map[string]*decimal.Decimal{
		"strike_price_gte": &contractsReq.StrikePriceGTE,
		"strike_price_lte": &contractsReq.StrikePriceLTE,
	} {
		if v := req.GetString(arg, ""); v != "" {
			strike, err := decimal.NewFromString(v)
			if err != nil {
				return jsonResult(types.OptionContractsResponse{Success: false, Error: err.Error()})
			}
			*field = strike
		}
	}

	a.log.Info("getting option contracts",
		zap.String("underlying_symbols", contractsReq.UnderlyingSymbols),
		zap.Int("limit", contractsReq.TotalLimit))

	contracts, err := a.trading.GetOptionContracts(contractsReq)
	if err != nil {
		a.log.Error("failed to get option contracts", zap.Error(err))
		return jsonResult(types.OptionContractsResponse{Success: false, Error: err.Error()})
	}

	out := make([]types.OptionContract, 0, len(contracts))
	for i := range contracts {
		out = append(out, toOptionContract(&contracts[i]))
	}
	return jsonResult(types.OptionContractsResponse{Success: true, Data: out})
}

func (a *Adapter) handleGetOptionContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := req.RequireString("symbol")
	if err != nil {
		return jsonResult(types.OptionContractsResponse{Success: false, Error: err.Error()})
	}

	a.log.Info("getting option contract", zap.String("symbol", symbol))

	contract, err := a.trading.GetOptionContract(symbol)
	if err != nil {
		a.log.Error("failed to get option contract", zap.String("symbol", symbol), zap.Error(err))
		return jsonResult(types.OptionContractsResponse{Success: false, Error: err.Error()})
	}
	if contract == nil {
		return jsonResult(types.OptionContractsResponse{Success: false, Error: fmt.Sprintf("No contract found for %s", symbol)})
	}

	return jsonResult(types.OptionContractsResponse{Success: true, Data: []types.OptionContract{toOptionContract(contract)}})
}

func (a *Adapter) handleGetOptionPositions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a.log.Info("getting option positions")

	positions, err := a.trading.GetPositions()
	if err != nil {
		a.log.Error("failed to get option positions", zap.Error(err))
		return jsonResult(types.OptionPositionsResponse{Success: false, Error: err.Error()})
	}

	out := make([]types.OptionPosition, 0)
	for _, p := range positions {
		if isOptionPosition(p) {
			out = append(out, toOptionPosition(p))
		}
	}
	return jsonResult(types.OptionPositionsResponse{Success: true, Data: out})
}

func (a *Adapter) handlePlaceOptionOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, qty, side, tif, err := orderArgs(req)
	if err != nil {
		return jsonResult(types.OptionOrderResponse{Success: false, Error: err.Error()})
	}
	positionIntent, err := req.RequireString("position_intent")
	if err != nil {
		return jsonResult(types.OptionOrderResponse{Success: false, Error: err.Error()})
	}
	orderType := req.GetString("order_type", "market")
	limitPrice := optFloat(req, "limit_price")

	if msg := validateOrderParams(orderParams{qty: &qty, limitPrice: limitPrice}); msg != "" {
		return jsonResult(types.OptionOrderResponse{Success: false, Error: msg})
	}
	if msg := validateSide(side); msg != "" {
		return jsonResult(types.OptionOrderResponse{Success: false, Error: msg})
	}
	intent, ok := toPositionIntent(positionIntent)
	if !ok {
		return jsonResult(types.OptionOrderResponse{Success: false, Error: fmt.Sprintf("Invalid position_intent: %s. Must be one of: %s", positionIntent, positionIntentValues)})
	}

	orderReq := alpaca.PlaceOrderRequest{
		Symbol:         symbol,
		Qty:            decimalPtr(qty),
		Side:           toSide(side),
		TimeInForce:    toTimeInForce(tif),
		OrderClass:     alpaca.Simple,
		PositionIntent: intent,
	}
	switch strings.ToLower(orderType) {
	case "market":
		orderReq.Type = alpaca.Market
	case "limit":
		if limitPrice == nil {
			return jsonResult(types.OptionOrderResponse{Success: false, Error: "Limit price required for limit orders"})
		}
		orderReq.Type = alpaca.Limit
		orderReq.LimitPrice = optDecimal(limitPrice)
	default:
		return jsonResult(types.OptionOrderResponse{Success: false, Error: fmt.Sprintf("Unsupported order type: %s", orderType)})
	}

	a.log.Info("placing option order",
		zap.String("side", side), zap.Float64("qty", qty), zap.String("symbol", symbol),
		zap.String("position_intent", positionIntent))

	order, err := a.trading.PlaceOrder(orderReq)
	if err != nil {
		a.log.Error("failed to place option order", zap.Error(err))
		return jsonResult(types.OptionOrderResponse{Success: false, Error: err.Error()})
	}

	result := types.OptionOrderResult{
		OrderID:    order.ID,
		Symbol:     order.Symbol,
		Qty:        derefDecimal(order.Qty),
		Side:       string(order.Side),
		OrderType:  string(order.Type),
		Status:     order.Status,
		LimitPrice: order.LimitPrice,
	}
	return jsonResult(types.OptionOrderResponse{Success: true, Data: &result})
}

// legArg is one leg of a multi-leg option strategy as sent by the client.
type legArg struct {
	Symbol         string  `json:"symbol"`
	RatioQty       float64 `json:"ratio_qty"`
	Side           string  `json:"side"`
	PositionIntent string  `json:"position_intent"`
}

func parseLegs(req mcp.CallToolRequest) ([]legArg, error) {
	raw, err := json.Marshal(req.GetArguments()["legs"])
	if err != nil {
		return nil, err
	}
	var legs []legArg
	if err := json.Unmarshal(raw, &legs); err != nil {
		return nil, err
	}
	return legs, nil
}

func (a *Adapter) handlePlaceMultiLegOptionOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	legs, err := parseLegs(req)
	if err != nil {
		return jsonResult(types.OptionOrderResponse{Success: false, Error: err.Error()})
	}
	if len(legs) == 0 {
		return jsonResult(types.OptionOrderResponse{Success: false, Error: "At least one leg is required"})
	}
	orderType := req.GetString("order_type", "market")
	limitPrice := optFloat(req, "limit_price")
	tif := req.GetString("time_in_force", "gtc")

	if msg := validateOrderParams(orderParams{limitPrice: limitPrice}); msg != "" {
		return jsonResult(types.OptionOrderResponse{Success: false, Error: msg})
	}

	sdkLegs := make([]alpaca.Leg, 0, len(legs))
	for i, leg := range legs {
		if validateSide(leg.Side) != "" {
			return jsonResult(types.OptionOrderResponse{Success: false, Error: fmt.Sprintf("Invalid side in leg %d: %q. Must be 'buy' or 'sell'", i, leg.Side)})
		}
		intent, ok := toPositionIntent(leg.PositionIntent)
		if !ok {
			return jsonResult(types.OptionOrderResponse{Success: false, Error: fmt.Sprintf("Invalid position_intent in leg %d: %s. Must be one of: %s", i, leg.PositionIntent, positionIntentValues)})
		}
		sdkLegs = append(sdkLegs, alpaca.Leg{
			Symbol:         leg.Symbol,
			RatioQty:       decimal.NewFromFloat(leg.RatioQty),
			Side:           toSide(leg.Side),
			PositionIntent: intent,
		})
	}

	// The first leg anchors the order's symbol and quantity.
	totalQty := math.Abs(legs[0].RatioQty)
	orderReq := alpaca.PlaceOrderRequest{
		Symbol:      legs[0].Symbol,
		Qty:         decimalPtr(totalQty),
		Side:        alpaca.Buy,
		TimeInForce: toTimeInForce(tif),
		OrderClass:  alpaca.MLeg,
		Legs:        sdkLegs,
	}
	switch strings.ToLower(orderType) {
	case "market":
		orderReq.Type = alpaca.Market
	case "limit":
		if limitPrice == nil {
			return jsonResult(types.OptionOrderResponse{Success: false, Error: "Limit price required for limit orders"})
		}
		orderReq.Type = alpaca.Limit
		orderReq.LimitPrice = optDecimal(limitPrice)
	default:
		return jsonResult(types.OptionOrderResponse{Success: false, Error: fmt.Sprintf("Unsupported order type: %s", orderType)})
	}

	a.log.Info("placing multi-leg option order",
		zap.Int("legs", len(sdkLegs)), zap.String("symbol", legs[0].Symbol))

	order, err := a.trading.PlaceOrder(orderReq)
	if err != nil {
		a.log.Error("failed to place multi-leg option order", zap.Error(err))
		return jsonResult(types.OptionOrderResponse{Success: false, Error: err.Error()})
	}

	result := types.OptionOrderResult{
		OrderID:    order.ID,
		Symbol:     order.Symbol,
		Qty:        derefDecimal(order.Qty),
		Side:       string(order.Side),
		OrderType:  string(order.Type),
		OrderClass: "multi_leg",
		Status:     order.Status,
		LimitPrice: order.LimitPrice,
		Legs:       len(sdkLegs),
	}
	return jsonResult(types.OptionOrderResponse{Success: true, Data: &result})
}

func (a *Adapter) handleExerciseOptionPosition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := req.RequireString("symbol")
	if err != nil {
		return jsonResult(types.ExerciseResponse{Success: false, Error: err.Error()})
	}
	qty := optFloat(req, "qty")

	positions, err := a.trading.GetPositions()
	if err != nil {
		a.log.Error("failed to look up position for exercise", zap.String("symbol", symbol), zap.Error(err))
		return jsonResult(types.ExerciseResponse{Success: false, Error: err.Error()})
	}

	var position *alpaca.Position
	for i := range positions {
		if positions[i].Symbol == symbol {
			position = &positions[i]
			break
		}
	}
	if position == nil {
		return jsonResult(types.ExerciseResponse{Success: false, Error: fmt.Sprintf("No position found for %s", symbol)})
	}

	exercisedQty := position.Qty
	if qty != nil {
		exercisedQty = decimal.NewFromFloat(*qty)
	}

	a.log.Info("exercising option position",
		zap.String("symbol", symbol), zap.String("qty", exercisedQty.String()))

	if err := a.trading.ExerciseOptionsPosition(symbol); err != nil {
		a.log.Error("failed to exercise option position", zap.String("symbol", symbol), zap.Error(err))
		return jsonResult(types.ExerciseResponse{Success: false, Error: err.Error()})
	}

	result := types.ExerciseResult{
		Symbol:       symbol,
		ExercisedQty: exercisedQty,
		Message:      fmt.Sprintf("Successfully exercised %s contracts of %s", exercisedQty, symbol),
	}
	return jsonResult(types.ExerciseResponse{Success: true, Data: &result})
}

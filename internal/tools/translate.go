package tools

import (
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

var timeInForceMap = map[string]alpaca.TimeInForce{
	"gtc": alpaca.GTC,
	"day": alpaca.Day,
	"ioc": alpaca.IOC,
	"fok": alpaca.FOK,
	"cls": alpaca.CLS,
	"opg": alpaca.OPG,
}

var positionIntentMap = map[string]alpaca.PositionIntent{
	"buy_to_open":   alpaca.BuyToOpen,
	"buy_to_close":  alpaca.BuyToClose,
	"sell_to_open":  alpaca.SellToOpen,
	"sell_to_close": alpaca.SellToClose,
}

var barTimeFrameMap = map[string]marketdata.TimeFrame{
	"1Min":   marketdata.NewTimeFrame(1, marketdata.Min),
	"5Min":   marketdata.NewTimeFrame(5, marketdata.Min),
	"15Min":  marketdata.NewTimeFrame(15, marketdata.Min),
	"30Min":  marketdata.NewTimeFrame(30, marketdata.Min),
	"1Hour":  marketdata.NewTimeFrame(1, marketdata.Hour),
	"1Day":   marketdata.NewTimeFrame(1, marketdata.Day),
	"1Week":  marketdata.NewTimeFrame(1, marketdata.Week),
	"1Month": marketdata.NewTimeFrame(1, marketdata.Month),
}

// toTimeInForce maps a client string onto the API enum, defaulting to GTC.
func toTimeInForce(s string) alpaca.TimeInForce {
	if tif, ok := timeInForceMap[strings.ToLower(s)]; ok {
		return tif
	}
	return alpaca.GTC
}

// toSide maps buy/sell onto the API enum. Callers validate the string first.
func toSide(s string) alpaca.Side {
	if strings.ToLower(s) == "buy" {
		return alpaca.Buy
	}
	return alpaca.Sell
}

// toPositionIntent maps an option position intent, reporting false for
// unknown values.
func toPositionIntent(s string) (alpaca.PositionIntent, bool) {
	intent, ok := positionIntentMap[strings.ToLower(s)]
	return intent, ok
}

// toBarTimeFrame maps a timeframe label onto a bar aggregation, defaulting
// to daily bars.
func toBarTimeFrame(s string) marketdata.TimeFrame {
	if tf, ok := barTimeFrameMap[s]; ok {
		return tf
	}
	return marketdata.NewTimeFrame(1, marketdata.Day)
}

// parseSymbols splits a comma-separated symbol list, trimming whitespace and
// uppercasing. Empty entries are dropped.
func parseSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if symbol := strings.ToUpper(strings.TrimSpace(p)); symbol != "" {
			out = append(out, symbol)
		}
	}
	return out
}

// parseTimeArg accepts RFC 3339 timestamps or bare dates.
func parseTimeArg(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse(time.DateOnly, s)
}

func decimalPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func optDecimal(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	return decimalPtr(*v)
}

// equityOrder assembles the shared fields of a simple equity order. Callers
// attach the price fields their order type carries.
func equityOrder(symbol string, qty float64, side alpaca.Side, orderType alpaca.OrderType, tif alpaca.TimeInForce) alpaca.PlaceOrderRequest {
	return alpaca.PlaceOrderRequest{
		Symbol:      symbol,
		Qty:         decimalPtr(qty),
		Side:        side,
		Type:        orderType,
		TimeInForce: tif,
	}
}

// stopLossSpec builds the protective stop for bracket and OCO orders. The
// limit price turns the stop into a stop-limit when present.
func stopLossSpec(stopPrice float64, limitPrice *float64) *alpaca.StopLoss {
	return &alpaca.StopLoss{
		StopPrice:  decimalPtr(stopPrice),
		LimitPrice: optDecimal(limitPrice),
	}
}

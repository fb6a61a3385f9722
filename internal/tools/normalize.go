package tools

import (
	"cloud.google.com/go/civil"
	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"

	"github.com/NonmaskableInt/alpaca-mcp/internal/types"
)

// The mappers in this file flatten SDK entities into the wire payloads.
// Optional fields the API reports as zero become null, matching what quote
// feeds and position snapshots mean by "no value".

func toAccountInfo(a *alpaca.Account) types.AccountInfo {
	return types.AccountInfo{
		AccountID:         a.ID,
		AccountNumber:     a.AccountNumber,
		Status:            a.Status,
		Currency:          a.Currency,
		Cash:              a.Cash,
		BuyingPower:       a.BuyingPower,
		PortfolioValue:    a.PortfolioValue,
		Equity:            a.Equity,
		LongMarketValue:   a.LongMarketValue,
		ShortMarketValue:  a.ShortMarketValue,
		InitialMargin:     a.InitialMargin,
		MaintenanceMargin: a.MaintenanceMargin,
		LastEquity:        a.LastEquity,
		DaytradeCount:     a.DaytradeCount,
		PatternDayTrader:  a.PatternDayTrader,
	}
}

func toPosition(p alpaca.Position) types.Position {
	return types.Position{
		Symbol:         p.Symbol,
		Quantity:       p.Qty,
		Side:           string(p.Side),
		AvgEntryPrice:  p.AvgEntryPrice,
		MarketValue:    p.MarketValue,
		CostBasis:      p.CostBasis,
		UnrealizedPL:   p.UnrealizedPL,
		UnrealizedPLPC: p.UnrealizedPLPC,
		CurrentPrice:   p.CurrentPrice,
		QtyAvailable:   nonZeroDecimal(p.QtyAvailable),
	}
}

func toOrder(o alpaca.Order) types.Order {
	return types.Order{
		ID:             o.ID,
		ClientOrderID:  o.ClientOrderID,
		Symbol:         o.Symbol,
		Qty:            o.Qty,
		FilledQty:      nonZeroDecimal(o.FilledQty),
		Side:           string(o.Side),
		OrderType:      string(o.Type),
		TimeInForce:    string(o.TimeInForce),
		OrderClass:     string(o.OrderClass),
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
		SubmittedAt:    o.SubmittedAt,
		FilledAt:       o.FilledAt,
		FilledAvgPrice: o.FilledAvgPrice,
		LimitPrice:     o.LimitPrice,
		StopPrice:      o.StopPrice,
		TrailPrice:     o.TrailPrice,
		TrailPercent:   o.TrailPercent,
		ExtendedHours:  o.ExtendedHours,
	}
}

// toPlacedOrder builds the base acknowledgement for an accepted order.
// Callers attach the price fields their order type echoes.
func toPlacedOrder(o *alpaca.Order) types.PlacedOrder {
	return types.PlacedOrder{
		OrderID: o.ID,
		Symbol:  o.Symbol,
		Qty:     derefDecimal(o.Qty),
		Side:    string(o.Side),
		Status:  o.Status,
	}
}

func toQuoteData(symbol string, q marketdata.Quote) types.QuoteData {
	return types.QuoteData{
		Symbol:    symbol,
		BidPrice:  nonZeroFloat(q.BidPrice),
		BidSize:   nonZeroSize(q.BidSize),
		AskPrice:  nonZeroFloat(q.AskPrice),
		AskSize:   nonZeroSize(q.AskSize),
		Timestamp: q.Timestamp,
	}
}

func toBarData(symbol string, b marketdata.Bar) types.BarData {
	return types.BarData{
		Symbol:     symbol,
		Timestamp:  b.Timestamp,
		Open:       b.Open,
		High:       b.High,
		Low:        b.Low,
		Close:      b.Close,
		Volume:     b.Volume,
		TradeCount: nonZeroCount(b.TradeCount),
		VWAP:       nonZeroFloat(b.VWAP),
	}
}

// toPortfolioSnapshots zips the parallel history series by timestamp index.
// Short series leave the corresponding fields null.
func toPortfolioSnapshots(h *alpaca.PortfolioHistory) []types.PortfolioSnapshot {
	out := make([]types.PortfolioSnapshot, 0, len(h.Timestamp))
	for i, ts := range h.Timestamp {
		snap := types.PortfolioSnapshot{Timestamp: ts}
		if i < len(h.Equity) {
			v := h.Equity[i]
			snap.Equity = &v
		}
		if i < len(h.ProfitLoss) {
			v := h.ProfitLoss[i]
			snap.ProfitLoss = &v
		}
		if i < len(h.ProfitLossPct) {
			v := h.ProfitLossPct[i]
			snap.ProfitLossPct = &v
		}
		out = append(out, snap)
	}
	return out
}

func toOptionContract(c *alpaca.OptionContract) types.OptionContract {
	return types.OptionContract{
		Symbol:            c.Symbol,
		UnderlyingSymbol:  c.UnderlyingSymbol,
		Name:              c.Name,
		Status:            string(c.Status),
		Tradable:          c.Tradable,
		ExpirationDate:    c.ExpirationDate.String(),
		RootSymbol:        c.RootSymbol,
		UnderlyingAssetID: c.UnderlyingAssetID,
		Type:              string(c.Type),
		Style:             string(c.Style),
		StrikePrice:       c.StrikePrice,
		Multiplier:        c.Multiplier.String(),
		Size:              c.Size.String(),
		OpenInterest:      decimalString(c.OpenInterest),
		OpenInterestDate:  dateString(c.OpenInterestDate),
		ClosePrice:        c.ClosePrice,
		ClosePriceDate:    dateString(c.ClosePriceDate),
	}
}

// toOptionPosition flattens an option position, recovering the contract
// attributes from the OCC symbol when it parses.
func toOptionPosition(p alpaca.Position) types.OptionPosition {
	pos := types.OptionPosition{
		Symbol:         p.Symbol,
		Quantity:       p.Qty,
		Side:           string(p.Side),
		MarketValue:    p.MarketValue,
		CostBasis:      p.CostBasis,
		UnrealizedPL:   p.UnrealizedPL,
		UnrealizedPLPC: p.UnrealizedPLPC,
		CurrentPrice:   p.CurrentPrice,
	}

	if details, ok := types.ParseOCCSymbol(p.Symbol); ok {
		contractType := details.ContractType
		expiration := details.ExpirationDate.Format("2006-01-02")
		pos.ContractType = &contractType
		pos.StrikePrice = &details.StrikePrice
		pos.ExpirationDate = &expiration
	} else if contractType := types.ContractTypeFromSymbol(p.Symbol); contractType != "" {
		pos.ContractType = &contractType
	}

	return pos
}

func isOptionPosition(p alpaca.Position) bool {
	return p.AssetClass == "us_option"
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Decimal{}
	}
	return *d
}

func nonZeroDecimal(d decimal.Decimal) *decimal.Decimal {
	if d.IsZero() {
		return nil
	}
	return &d
}

func nonZeroFloat(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func nonZeroSize(v uint32) *uint32 {
	if v == 0 {
		return nil
	}
	return &v
}

func nonZeroCount(v uint64) *uint64 {
	if v == 0 {
		return nil
	}
	return &v
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func dateString(d *civil.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

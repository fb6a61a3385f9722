// Package types defines the payload entities and response envelopes the MCP
// tools serialize for clients. Monetary fields stay decimal end to end;
// market-data fields keep the feed's float representation.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// Account & Position Types
// =============================================================================

// AccountInfo represents the trading account snapshot.
type AccountInfo struct {
	AccountID         string          `json:"account_id"`
	AccountNumber     string          `json:"account_number,omitempty"`
	Status            string          `json:"status,omitempty"`
	Currency          string          `json:"currency,omitempty"`
	Cash              decimal.Decimal `json:"cash"`
	BuyingPower       decimal.Decimal `json:"buying_power"`
	PortfolioValue    decimal.Decimal `json:"portfolio_value"`
	Equity            decimal.Decimal `json:"equity"`
	LongMarketValue   decimal.Decimal `json:"long_market_value"`
	ShortMarketValue  decimal.Decimal `json:"short_market_value"`
	InitialMargin     decimal.Decimal `json:"initial_margin"`
	MaintenanceMargin decimal.Decimal `json:"maintenance_margin"`
	LastEquity        decimal.Decimal `json:"last_equity"`
	DaytradeCount     int64           `json:"daytrade_count"`
	PatternDayTrader  bool            `json:"pattern_day_trader,omitempty"`
}

// Position represents an open equity position.
type Position struct {
	Symbol         string           `json:"symbol"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Side           string           `json:"side"`
	AvgEntryPrice  decimal.Decimal  `json:"avg_entry_price"`
	MarketValue    *decimal.Decimal `json:"market_value"`
	CostBasis      decimal.Decimal  `json:"cost_basis"`
	UnrealizedPL   *decimal.Decimal `json:"unrealized_pl"`
	UnrealizedPLPC *decimal.Decimal `json:"unrealized_plpc"`
	CurrentPrice   *decimal.Decimal `json:"current_price"`
	QtyAvailable   *decimal.Decimal `json:"qty_available"`
}

// =============================================================================
// Order Types
// =============================================================================

// Order represents an order as returned by the order query tools.
type Order struct {
	ID             string           `json:"id"`
	ClientOrderID  string           `json:"client_order_id,omitempty"`
	Symbol         string           `json:"symbol"`
	Qty            *decimal.Decimal `json:"qty"`
	FilledQty      *decimal.Decimal `json:"filled_qty"`
	Side           string           `json:"side"`
	OrderType      string           `json:"order_type"`
	TimeInForce    string           `json:"time_in_force,omitempty"`
	OrderClass     string           `json:"order_class,omitempty"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	SubmittedAt    time.Time        `json:"submitted_at"`
	FilledAt       *time.Time       `json:"filled_at"`
	FilledAvgPrice *decimal.Decimal `json:"filled_avg_price"`
	LimitPrice     *decimal.Decimal `json:"limit_price"`
	StopPrice      *decimal.Decimal `json:"stop_price"`
	TrailPrice     *decimal.Decimal `json:"trail_price,omitempty"`
	TrailPercent   *decimal.Decimal `json:"trail_percent,omitempty"`
	ExtendedHours  bool             `json:"extended_hours,omitempty"`
}

// PlacedOrder represents the acknowledgement payload for the simple order
// placement tools. Price fields appear only when the order type carries them.
type PlacedOrder struct {
	OrderID      string           `json:"order_id"`
	Symbol       string           `json:"symbol"`
	Qty          decimal.Decimal  `json:"qty"`
	Side         string           `json:"side"`
	Status       string           `json:"status"`
	LimitPrice   *decimal.Decimal `json:"limit_price,omitempty"`
	StopPrice    *decimal.Decimal `json:"stop_price,omitempty"`
	TrailPercent *decimal.Decimal `json:"trail_percent,omitempty"`
	TrailPrice   *decimal.Decimal `json:"trail_price,omitempty"`
}

// BracketOrderResult represents the acknowledgement for a bracket order.
type BracketOrderResult struct {
	OrderID              string           `json:"order_id"`
	Symbol               string           `json:"symbol"`
	Qty                  decimal.Decimal  `json:"qty"`
	Side                 string           `json:"side"`
	EntryType            string           `json:"entry_type"`
	EntryLimitPrice      *decimal.Decimal `json:"entry_limit_price,omitempty"`
	TakeProfitLimitPrice decimal.Decimal  `json:"take_profit_limit_price"`
	StopLossStopPrice    decimal.Decimal  `json:"stop_loss_stop_price"`
	StopLossLimitPrice   *decimal.Decimal `json:"stop_loss_limit_price,omitempty"`
	Status               string           `json:"status"`
	OrderClass           string           `json:"order_class"`
}

// OCOOrderResult represents the acknowledgement for a one-cancels-other
// exit pair.
type OCOOrderResult struct {
	OrderID              string           `json:"order_id"`
	Symbol               string           `json:"symbol"`
	Qty                  decimal.Decimal  `json:"qty"`
	Side                 string           `json:"side"`
	TakeProfitLimitPrice decimal.Decimal  `json:"take_profit_limit_price"`
	StopLossStopPrice    decimal.Decimal  `json:"stop_loss_stop_price"`
	StopLossLimitPrice   *decimal.Decimal `json:"stop_loss_limit_price,omitempty"`
	Status               string           `json:"status"`
	OrderClass           string           `json:"order_class"`
}

// CancelResult carries the confirmation message for a cancelled order.
type CancelResult struct {
	Message string `json:"message"`
}

// ClosePositionResult represents the acknowledgement for closing one position.
type ClosePositionResult struct {
	OrderID string          `json:"order_id"`
	Symbol  string          `json:"symbol"`
	Qty     decimal.Decimal `json:"qty"`
	Side    string          `json:"side"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
}

// ClosedPosition identifies one position liquidated by close_all_positions.
type ClosedPosition struct {
	Symbol  string `json:"symbol"`
	OrderID string `json:"order_id"`
}

// CloseAllResult summarizes a close-all sweep, including partial failures.
type CloseAllResult struct {
	ClosedCount     int              `json:"closed_count"`
	FailedCount     int              `json:"failed_count"`
	ClosedPositions []ClosedPosition `json:"closed_positions"`
	FailedPositions []string         `json:"failed_positions"`
	Message         string           `json:"message"`
}

// =============================================================================
// Market Data Types
// =============================================================================

// QuoteData represents the latest NBBO quote for one symbol. Zero-valued
// fields from the feed are reported as null.
type QuoteData struct {
	Symbol    string    `json:"symbol"`
	BidPrice  *float64  `json:"bid_price"`
	BidSize   *uint32   `json:"bid_size"`
	AskPrice  *float64  `json:"ask_price"`
	AskSize   *uint32   `json:"ask_size"`
	Timestamp time.Time `json:"timestamp"`
}

// BarData represents one OHLCV aggregate for a symbol.
type BarData struct {
	Symbol     string    `json:"symbol"`
	Timestamp  time.Time `json:"timestamp"`
	Open       float64   `json:"open"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	Close      float64   `json:"close"`
	Volume     uint64    `json:"volume"`
	TradeCount *uint64   `json:"trade_count,omitempty"`
	VWAP       *float64  `json:"vwap,omitempty"`
}

// PortfolioSnapshot represents account equity and running profit/loss at one
// point of the portfolio history series.
type PortfolioSnapshot struct {
	Timestamp     int64            `json:"timestamp"`
	Equity        *decimal.Decimal `json:"equity"`
	ProfitLoss    *decimal.Decimal `json:"profit_loss"`
	ProfitLossPct *decimal.Decimal `json:"profit_loss_pct"`
}

// =============================================================================
// Option Types
// =============================================================================

// OptionContract represents one listed option contract.
type OptionContract struct {
	Symbol            string           `json:"symbol"`
	UnderlyingSymbol  string           `json:"underlying_symbol"`
	Name              string           `json:"name"`
	Status            string           `json:"status"`
	Tradable          bool             `json:"tradable"`
	ExpirationDate    string           `json:"expiration_date"`
	RootSymbol        *string          `json:"root_symbol"`
	UnderlyingAssetID string           `json:"underlying_asset_id"`
	Type              string           `json:"type"`
	Style             string           `json:"style"`
	StrikePrice       decimal.Decimal  `json:"strike_price"`
	Multiplier        string           `json:"multiplier"`
	Size              string           `json:"size"`
	OpenInterest      *string          `json:"open_interest"`
	OpenInterestDate  *string          `json:"open_interest_date"`
	ClosePrice        *decimal.Decimal `json:"close_price"`
	ClosePriceDate    *string          `json:"close_price_date"`
}

// OptionPosition represents an open option position. The contract type,
// strike and expiration are recovered from the OCC symbol when it parses.
type OptionPosition struct {
	Symbol         string           `json:"symbol"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Side           string           `json:"side"`
	MarketValue    *decimal.Decimal `json:"market_value"`
	CostBasis      decimal.Decimal  `json:"cost_basis"`
	UnrealizedPL   *decimal.Decimal `json:"unrealized_pl"`
	UnrealizedPLPC *decimal.Decimal `json:"unrealized_plpc"`
	CurrentPrice   *decimal.Decimal `json:"current_price"`
	ContractType   *string          `json:"contract_type"`
	StrikePrice    *decimal.Decimal `json:"strike_price"`
	ExpirationDate *string          `json:"expiration_date"`
}

// OptionOrderResult represents the acknowledgement for a single or multi leg
// option order.
type OptionOrderResult struct {
	OrderID    string           `json:"order_id"`
	Symbol     string           `json:"symbol"`
	Qty        decimal.Decimal  `json:"qty"`
	Side       string           `json:"side"`
	OrderType  string           `json:"order_type"`
	OrderClass string           `json:"order_class,omitempty"`
	Status     string           `json:"status"`
	LimitPrice *decimal.Decimal `json:"limit_price,omitempty"`
	Legs       int              `json:"legs,omitempty"`
}

// ExerciseResult represents the acknowledgement for exercising a contract.
type ExerciseResult struct {
	Symbol       string          `json:"symbol"`
	ExercisedQty decimal.Decimal `json:"exercised_qty"`
	Message      string          `json:"message"`
}

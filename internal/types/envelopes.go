package types

// Every tool answers with a success/data/error envelope. Failures carry a
// non-empty Error and no payload; list payloads are non-nil on success so an
// empty result still serializes as [].

// AccountResponse wraps an AccountInfo payload.
type AccountResponse struct {
	Success bool         `json:"success"`
	Data    *AccountInfo `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// PositionsResponse wraps a list of open positions.
type PositionsResponse struct {
	Success bool       `json:"success"`
	Data    []Position `json:"data"`
	Error   string     `json:"error,omitempty"`
}

// OrdersResponse wraps a list of orders.
type OrdersResponse struct {
	Success bool    `json:"success"`
	Data    []Order `json:"data"`
	Error   string  `json:"error,omitempty"`
}

// OrderResponse wraps a single order lookup.
type OrderResponse struct {
	Success bool   `json:"success"`
	Data    *Order `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OrderPlacementResponse wraps the acknowledgement of a simple order.
type OrderPlacementResponse struct {
	Success bool         `json:"success"`
	Data    *PlacedOrder `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// BracketOrderResponse wraps the acknowledgement of a bracket order.
type BracketOrderResponse struct {
	Success bool                `json:"success"`
	Data    *BracketOrderResult `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// OCOOrderResponse wraps the acknowledgement of an OCO order.
type OCOOrderResponse struct {
	Success bool            `json:"success"`
	Data    *OCOOrderResult `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// CancelOrderResponse wraps an order cancellation confirmation.
type CancelOrderResponse struct {
	Success bool          `json:"success"`
	Data    *CancelResult `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// ClosePositionResponse wraps the acknowledgement of a position close.
type ClosePositionResponse struct {
	Success bool                 `json:"success"`
	Data    *ClosePositionResult `json:"data,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// CloseAllPositionsResponse wraps the summary of a close-all sweep.
type CloseAllPositionsResponse struct {
	Success bool            `json:"success"`
	Data    *CloseAllResult `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// QuotesResponse wraps the latest quotes for the requested symbols.
type QuotesResponse struct {
	Success bool        `json:"success"`
	Data    []QuoteData `json:"data"`
	Error   string      `json:"error,omitempty"`
}

// BarsResponse wraps historical bars across the requested symbols.
type BarsResponse struct {
	Success bool      `json:"success"`
	Data    []BarData `json:"data"`
	Error   string    `json:"error,omitempty"`
}

// PortfolioHistoryResponse wraps the equity history series.
type PortfolioHistoryResponse struct {
	Success bool                `json:"success"`
	Data    []PortfolioSnapshot `json:"data"`
	Error   string              `json:"error,omitempty"`
}

// OptionContractsResponse wraps option contract search results. Single
// contract lookups answer with a one-element list.
type OptionContractsResponse struct {
	Success bool             `json:"success"`
	Data    []OptionContract `json:"data"`
	Error   string           `json:"error,omitempty"`
}

// OptionPositionsResponse wraps the open option positions.
type OptionPositionsResponse struct {
	Success bool             `json:"success"`
	Data    []OptionPosition `json:"data"`
	Error   string           `json:"error,omitempty"`
}

// OptionOrderResponse wraps the acknowledgement of an option order.
type OptionOrderResponse struct {
	Success bool               `json:"success"`
	Data    *OptionOrderResult `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// ExerciseResponse wraps the acknowledgement of an option exercise.
type ExerciseResponse struct {
	Success bool            `json:"success"`
	Data    *ExerciseResult `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

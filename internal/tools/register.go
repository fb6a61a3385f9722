package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Register declares the full tool catalog on the MCP server, binding each
// tool schema to its handler.
func (a *Adapter) Register(s *server.MCPServer) {
	// Account & positions

	s.AddTool(mcp.NewTool("get_account_info",
		mcp.WithDescription("Get account information and buying power."),
	), a.handleGetAccountInfo)

	s.AddTool(mcp.NewTool("get_positions",
		mcp.WithDescription("Get current stock positions."),
	), a.handleGetPositions)

	s.AddTool(mcp.NewTool("close_position",
		mcp.WithDescription("Close all or part of a position."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol to close")),
		mcp.WithNumber("qty", mcp.Description("Quantity to close. If not provided, closes entire position.")),
		mcp.WithNumber("percentage", mcp.Description("Percentage of position to close (0-100). Mutually exclusive with qty.")),
	), a.handleClosePosition)

	s.AddTool(mcp.NewTool("close_all_positions",
		mcp.WithDescription("Close all open positions."),
		mcp.WithBoolean("cancel_orders", mcp.DefaultBool(false), mcp.Description("Also cancel all open orders")),
	), a.handleCloseAllPositions)

	// Orders

	s.AddTool(mcp.NewTool("get_orders",
		mcp.WithDescription("Get order history with optional filtering."),
		mcp.WithString("status", mcp.Description("Filter by order status (open, closed, all)")),
		mcp.WithNumber("limit", mcp.DefaultNumber(100), mcp.Description("Maximum number of orders to return")),
		mcp.WithString("symbols", mcp.Description("Comma-separated list of symbols to filter by")),
	), a.handleGetOrders)

	s.AddTool(mcp.NewTool("get_order",
		mcp.WithDescription("Get a specific order by ID."),
		mcp.WithString("order_id", mcp.Required(), mcp.Description("Order ID to look up")),
	), a.handleGetOrder)

	s.AddTool(mcp.NewTool("place_market_order",
		mcp.WithDescription("Place a market order."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol to trade")),
		mcp.WithNumber("qty", mcp.Required(), mcp.Description("Quantity of shares (must be > 0)")),
		mcp.WithString("side", mcp.Required(), mcp.Description("'buy' or 'sell'")),
		mcp.WithString("time_in_force", mcp.DefaultString("gtc"), mcp.Description("Time in force (gtc, day, ioc, fok)")),
	), a.handlePlaceMarketOrder)

	s.AddTool(mcp.NewTool("place_limit_order",
		mcp.WithDescription("Place a limit order."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol to trade")),
		mcp.WithNumber("qty", mcp.Required(), mcp.Description("Quantity of shares (must be > 0)")),
		mcp.WithString("side", mcp.Required(), mcp.Description("'buy' or 'sell'")),
		mcp.WithNumber("limit_price", mcp.Required(), mcp.Description("Limit price (must be > 0)")),
		mcp.WithString("time_in_force", mcp.DefaultString("gtc"), mcp.Description("Time in force (gtc, day, ioc, fok)")),
	), a.handlePlaceLimitOrder)

	s.AddTool(mcp.NewTool("place_stop_order",
		mcp.WithDescription("Place a stop order. Triggers a market order when stop price is reached."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol to trade")),
		mcp.WithNumber("qty", mcp.Required(), mcp.Description("Quantity of shares (must be > 0)")),
		mcp.WithString("side", mcp.Required(), mcp.Description("'buy' or 'sell'")),
		mcp.WithNumber("stop_price", mcp.Required(), mcp.Description("Stop trigger price (must be > 0)")),
		mcp.WithString("time_in_force", mcp.DefaultString("gtc"), mcp.Description("Time in force (gtc, day, ioc, fok)")),
	), a.handlePlaceStopOrder)

	s.AddTool(mcp.NewTool("place_stop_limit_order",
		mcp.WithDescription("Place a stop-limit order (single order with two price components)."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol to trade")),
		mcp.WithNumber("qty", mcp.Required(), mcp.Description("Quantity of shares (must be > 0)")),
		mcp.WithString("side", mcp.Required(), mcp.Description("'buy' or 'sell'")),
		mcp.WithNumber("stop_price", mcp.Required(), mcp.Description("Stop trigger price (must be > 0)")),
		mcp.WithNumber("limit_price", mcp.Required(), mcp.Description("Limit price once triggered (must be > 0)")),
		mcp.WithString("time_in_force", mcp.DefaultString("gtc"), mcp.Description("Time in force (gtc, day, ioc, fok)")),
	), a.handlePlaceStopLimitOrder)

	s.AddTool(mcp.NewTool("place_trailing_stop_order",
		mcp.WithDescription("Place a trailing stop order. Stop price adjusts with market movement."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol to trade")),
		mcp.WithNumber("qty", mcp.Required(), mcp.Description("Quantity of shares (must be > 0)")),
		mcp.WithString("side", mcp.Required(), mcp.Description("'buy' or 'sell'")),
		mcp.WithNumber("trail_percent", mcp.Description("Trail by percentage (e.g., 1.0 for 1%). Mutually exclusive with trail_price.")),
		mcp.WithNumber("trail_price", mcp.Description("Trail by dollar amount. Mutually exclusive with trail_percent.")),
		mcp.WithString("time_in_force", mcp.DefaultString("gtc"), mcp.Description("Time in force (gtc, day, ioc, fok)")),
	), a.handlePlaceTrailingStopOrder)

	s.AddTool(mcp.NewTool("place_bracket_order",
		mcp.WithDescription("Place a bracket order with entry, take profit, and stop loss (THREE orders)."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol to trade")),
		mcp.WithNumber("qty", mcp.Required(), mcp.Description("Quantity of shares (must be > 0)")),
		mcp.WithString("side", mcp.Required(), mcp.Description("'buy' or 'sell'")),
		mcp.WithNumber("take_profit_limit_price", mcp.Required(), mcp.Description("Limit price for take profit exit (must be > 0)")),
		mcp.WithNumber("stop_loss_stop_price", mcp.Required(), mcp.Description("Stop price that triggers stop loss exit (must be > 0)")),
		mcp.WithNumber("stop_loss_limit_price", mcp.Description("Optional limit price for stop loss. If provided, creates a stop-limit order; if omitted, a stop market order.")),
		mcp.WithString("entry_type", mcp.DefaultString("market"), mcp.Description("'market' (immediate entry) or 'limit' (entry at specific price)")),
		mcp.WithNumber("entry_limit_price", mcp.Description("Required if entry_type is 'limit' (must be > 0)")),
		mcp.WithString("time_in_force", mcp.DefaultString("gtc"), mcp.Description("Time in force (gtc, day)")),
	), a.handlePlaceBracketOrder)

	s.AddTool(mcp.NewTool("place_oco_order",
		mcp.WithDescription("Place an OCO (One-Cancels-Other) order to protect an existing position (TWO orders)."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol of the position")),
		mcp.WithNumber("qty", mcp.Required(), mcp.Description("Quantity of shares (must be > 0)")),
		mcp.WithString("side", mcp.Required(), mcp.Description("'buy' or 'sell' (opposite of the position side)")),
		mcp.WithNumber("take_profit_limit_price", mcp.Required(), mcp.Description("Limit price for take profit exit (must be > 0)")),
		mcp.WithNumber("stop_loss_stop_price", mcp.Required(), mcp.Description("Stop price that triggers stop loss exit (must be > 0)")),
		mcp.WithNumber("stop_loss_limit_price", mcp.Description("Optional limit price for stop loss. If provided, creates a stop-limit order; if omitted, a stop market order.")),
		mcp.WithString("time_in_force", mcp.DefaultString("gtc"), mcp.Description("Time in force (gtc, day)")),
	), a.handlePlaceOCOOrder)

	s.AddTool(mcp.NewTool("cancel_order",
		mcp.WithDescription("Cancel a pending order."),
		mcp.WithString("order_id", mcp.Required(), mcp.Description("Order ID to cancel")),
	), a.handleCancelOrder)

	// Market data

	s.AddTool(mcp.NewTool("get_latest_quotes",
		mcp.WithDescription("Get real-time stock quotes."),
		mcp.WithString("symbols", mcp.Required(), mcp.Description("Comma-separated list of stock symbols")),
	), a.handleGetLatestQuotes)

	s.AddTool(mcp.NewTool("get_stock_bars",
		mcp.WithDescription("Get historical price data (OHLCV)."),
		mcp.WithString("symbols", mcp.Required(), mcp.Description("Comma-separated list of stock symbols")),
		mcp.WithString("timeframe", mcp.DefaultString("1Day"), mcp.Description("Time frame (1Min, 5Min, 15Min, 30Min, 1Hour, 1Day, 1Week, 1Month)")),
		mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD or RFC 3339)")),
		mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD or RFC 3339)")),
		mcp.WithNumber("limit", mcp.DefaultNumber(100), mcp.Description("Maximum number of bars to return")),
	), a.handleGetStockBars)

	s.AddTool(mcp.NewTool("get_portfolio_history",
		mcp.WithDescription("Get portfolio performance over time."),
		mcp.WithString("period", mcp.DefaultString("1M"), mcp.Description("Time period (1D, 7D, 1M, 3M, 1Y, 2Y, 5Y, max)")),
		mcp.WithString("timeframe", mcp.DefaultString("1D"), mcp.Description("Data frequency (1Min, 5Min, 15Min, 1H, 1D)")),
		mcp.WithBoolean("extended_hours", mcp.DefaultBool(false), mcp.Description("Include extended hours data")),
	), a.handleGetPortfolioHistory)

	// Options

	s.AddTool(mcp.NewTool("get_option_contracts",
		mcp.WithDescription("Get option contracts with filtering criteria."),
		mcp.WithString("underlying_symbols", mcp.Description("Comma-separated list of underlying symbols (e.g., \"AAPL,SPY\")")),
		mcp.WithString("expiration_date", mcp.Description("Specific expiration date (YYYY-MM-DD)")),
		mcp.WithString("expiration_date_gte", mcp.Description("Expiration date greater than or equal to (YYYY-MM-DD)")),
		mcp.WithString("expiration_date_lte", mcp.Description("Expiration date less than or equal to (YYYY-MM-DD)")),
		mcp.WithString("root_symbol", mcp.Description("Option root symbol")),
		mcp.WithString("contract_type", mcp.Description("Contract type ('call' or 'put')")),
		mcp.WithString("style", mcp.Description("Option style ('american' or 'european')")),
		mcp.WithString("strike_price_gte", mcp.Description("Strike price greater than or equal to")),
		mcp.WithString("strike_price_lte", mcp.Description("Strike price less than or equal to")),
		mcp.WithNumber("limit", mcp.DefaultNumber(100), mcp.Description("Maximum number of contracts to return (capped at 1000)")),
	), a.handleGetOptionContracts)

	s.AddTool(mcp.NewTool("get_option_contract",
		mcp.WithDescription("Get a specific option contract by symbol."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Option contract symbol (e.g., \"AAPL241220C00150000\")")),
	), a.handleGetOptionContract)

	s.AddTool(mcp.NewTool("get_option_positions",
		mcp.WithDescription("Get current option positions."),
	), a.handleGetOptionPositions)

	s.AddTool(mcp.NewTool("place_option_order",
		mcp.WithDescription("Place a single-leg option order."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Option contract symbol (e.g., \"AAPL241220C00150000\")")),
		mcp.WithNumber("qty", mcp.Required(), mcp.Description("Quantity of contracts")),
		mcp.WithString("side", mcp.Required(), mcp.Description("'buy' or 'sell'")),
		mcp.WithString("position_intent", mcp.Required(), mcp.Description("'buy_to_open', 'buy_to_close', 'sell_to_open', 'sell_to_close'")),
		mcp.WithString("order_type", mcp.DefaultString("market"), mcp.Description("'market' or 'limit'")),
		mcp.WithNumber("limit_price", mcp.Description("Limit price (required for limit orders)")),
		mcp.WithString("time_in_force", mcp.DefaultString("gtc"), mcp.Description("Time in force (gtc, day, ioc, fok)")),
	), a.handlePlaceOptionOrder)

	s.AddTool(mcp.NewTool("place_multi_leg_option_order",
		mcp.WithDescription("Place a multi-leg option order (spreads, straddles, etc.)."),
		mcp.WithArray("legs", mcp.Required(),
			mcp.Description("Option legs, each with symbol, ratio_qty, side and position_intent"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"symbol":          map[string]any{"type": "string", "description": "Option contract symbol"},
					"ratio_qty":       map[string]any{"type": "number", "description": "Ratio quantity for this leg"},
					"side":            map[string]any{"type": "string", "description": "'buy' or 'sell'"},
					"position_intent": map[string]any{"type": "string", "description": "'buy_to_open', 'buy_to_close', 'sell_to_open', 'sell_to_close'"},
				},
				"required": []string{"symbol", "ratio_qty", "side", "position_intent"},
			})),
		mcp.WithString("order_type", mcp.DefaultString("market"), mcp.Description("'market' or 'limit'")),
		mcp.WithNumber("limit_price", mcp.Description("Net limit price for the strategy (required for limit orders)")),
		mcp.WithString("time_in_force", mcp.DefaultString("gtc"), mcp.Description("Time in force (gtc, day, ioc, fok)")),
	), a.handlePlaceMultiLegOptionOrder)

	s.AddTool(mcp.NewTool("exercise_option_position",
		mcp.WithDescription("Exercise an option position."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Option contract symbol to exercise")),
		mcp.WithNumber("qty", mcp.Description("Quantity to exercise (if omitted, exercises all available)")),
	), a.handleExerciseOptionPosition)
}

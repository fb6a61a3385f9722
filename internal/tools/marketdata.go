package tools

import (
	"context"
	"sort"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/NonmaskableInt/alpaca-mcp/internal/types"
)

func (a *Adapter) handleGetLatestQuotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbolsArg, err := req.RequireString("symbols")
	if err != nil {
		return jsonResult(types.QuotesResponse{Success: false, Error: err.Error()})
	}
	symbols := parseSymbols(symbolsArg)

	a.log.Info("getting latest quotes", zap.Strings("symbols", symbols))

	quotes, err := a.data.GetLatestQuotes(symbols, marketdata.GetLatestQuoteRequest{})
	if err != nil {
		a.log.Error("failed to get latest quotes", zap.Error(err))
		return jsonResult(types.QuotesResponse{Success: false, Error: err.Error()})
	}

	out := make([]types.QuoteData, 0, len(quotes))
	for symbol, quote := range quotes {
		out = append(out, toQuoteData(symbol, quote))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })

	return jsonResult(types.QuotesResponse{Success: true, Data: out})
}

func (a *Adapter) handleGetStockBars(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbolsArg, err := req.RequireString("symbols")
	if err != nil {
		return jsonResult(types.BarsResponse{Success: false, Error: err.Error()})
	}
	symbols := parseSymbols(symbolsArg)
	timeframe := req.GetString("timeframe", "1Day")
	limit := req.GetInt("limit", 100)

	barsReq := marketdata.GetBarsRequest{
		TimeFrame:  toBarTimeFrame(timeframe),
		TotalLimit: limit,
	}
	if start := req.GetString("start", ""); start != "" {
		ts, err := parseTimeArg(start)
		if err != nil {
			return jsonResult(types.BarsResponse{Success: false, Error: err.Error()})
		}
		barsReq.Start = ts
	}
	if end := req.GetString("end", ""); end != "" {
		ts, err := parseTimeArg(end)
		if err != nil {
			return jsonResult(types.BarsResponse{Success: false, Error: err.Error()})
		}
		barsReq.End = ts
	}

	a.log.Info("getting stock bars",
		zap.Strings("symbols", symbols), zap.String("timeframe", timeframe), zap.Int("limit", limit))

	bars, err := a.data.GetMultiBars(symbols, barsReq)
	if err != nil {
		a.log.Error("failed to get stock bars", zap.Error(err))
		return jsonResult(types.BarsResponse{Success: false, Error: err.Error()})
	}

	returned := make([]string, 0, len(bars))
	for symbol := range bars {
		returned = append(returned, symbol)
	}
	sort.Strings(returned)

	out := make([]types.BarData, 0)
	for _, symbol := range returned {
		for _, bar := range bars[symbol] {
			out = append(out, toBarData(symbol, bar))
		}
	}
	return jsonResult(types.BarsResponse{Success: true, Data: out})
}

func (a *Adapter) handleGetPortfolioHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period := req.GetString("period", "1M")
	timeframe := req.GetString("timeframe", "1D")
	extendedHours := req.GetBool("extended_hours", false)

	a.log.Info("getting portfolio history",
		zap.String("period", period), zap.String("timeframe", timeframe))

	history, err := a.trading.GetPortfolioHistory(alpaca.GetPortfolioHistoryRequest{
		Period:        period,
		TimeFrame:     alpaca.TimeFrame(timeframe),
		ExtendedHours: extendedHours,
	})
	if err != nil {
		a.log.Error("failed to get portfolio history", zap.Error(err))
		return jsonResult(types.PortfolioHistoryResponse{Success: false, Error: err.Error()})
	}

	return jsonResult(types.PortfolioHistoryResponse{Success: true, Data: toPortfolioSnapshots(history)})
}

// Package broker narrows the Alpaca SDK clients to the operations the MCP
// tools call, so tests can substitute fakes for the paper or live API.
package broker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

const (
	liveBaseURL  = "https://api.alpaca.markets"
	paperBaseURL = "https://paper-api.alpaca.markets"

	requestTimeout = 30 * time.Second
)

// TradingClient defines the trading API operations the tools depend on.
type TradingClient interface {
	// Account
	GetAccount() (*alpaca.Account, error)

	// Positions
	GetPositions() ([]alpaca.Position, error)
	ClosePosition(symbol string, req alpaca.ClosePositionRequest) (*alpaca.Order, error)
	CloseAllPositions(req alpaca.CloseAllPositionsRequest) ([]alpaca.Order, error)

	// Orders
	GetOrders(req alpaca.GetOrdersRequest) ([]alpaca.Order, error)
	GetOrder(orderID string) (*alpaca.Order, error)
	PlaceOrder(req alpaca.PlaceOrderRequest) (*alpaca.Order, error)
	CancelOrder(orderID string) error

	// Portfolio
	GetPortfolioHistory(req alpaca.GetPortfolioHistoryRequest) (*alpaca.PortfolioHistory, error)

	// Options
	GetOptionContracts(req alpaca.GetOptionContractsRequest) ([]alpaca.OptionContract, error)
	GetOptionContract(symbolOrID string) (*alpaca.OptionContract, error)
	ExerciseOptionsPosition(symbolOrContractID string) error
}

// MarketDataClient defines the market data API operations the tools depend on.
type MarketDataClient interface {
	GetLatestQuotes(symbols []string, req marketdata.GetLatestQuoteRequest) (map[string]marketdata.Quote, error)
	GetMultiBars(symbols []string, req marketdata.GetBarsRequest) (map[string][]marketdata.Bar, error)
}

// Client is the trading client handed to the tools. It embeds the SDK
// client and fills in the exercise endpoint, which the SDK does not cover.
type Client struct {
	*alpaca.Client

	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

func newClient(apiKey, apiSecret, baseURL string) *Client {
	return &Client{
		Client: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// ExerciseOptionsPosition exercises the whole held position for the given
// contract symbol or contract id. The trading API answers 204 No Content on
// success; error bodies carry a code and message.
func (c *Client) ExerciseOptionsPosition(symbolOrContractID string) error {
	url := fmt.Sprintf("%s/v2/positions/%s/exercise", c.baseURL, symbolOrContractID)
	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("APCA-API-KEY-ID", c.apiKey)
	req.Header.Set("APCA-API-SECRET-KEY", c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
		return fmt.Errorf("API error: %d - %s", resp.StatusCode, string(respBody))
	}
	return nil
}

var (
	_ TradingClient    = (*Client)(nil)
	_ MarketDataClient = (*marketdata.Client)(nil)
)

// Clients bundles the two API surfaces a running server talks to.
type Clients struct {
	Trading    TradingClient
	MarketData MarketDataClient
}

// NewClients builds SDK clients for the live or paper trading environment.
// Market data is served from the same data endpoint either way.
func NewClients(apiKey, apiSecret string, paper bool) Clients {
	baseURL := liveBaseURL
	if paper {
		baseURL = paperBaseURL
	}

	return Clients{
		Trading: newClient(apiKey, apiSecret, baseURL),
		MarketData: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
	}
}

// BaseURL reports the trading endpoint used for the given environment.
func BaseURL(paper bool) string {
	if paper {
		return paperBaseURL
	}
	return liveBaseURL
}

// Package binance is a minimal REST client for the Binance USD-M futures
// market-data API. Only the unauthenticated endpoints needed by the scanner
// are implemented: the instrument listing and candlestick history.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"atr-scanner/internal/model"
)

const DefaultBaseURL = "https://fapi.binance.com"

var routes = map[string]string{
	"exchange.info": "/fapi/v1/exchangeInfo",
	"klines":        "/fapi/v1/klines",
}

// Config holds client options. Zero values fall back to defaults.
type Config struct {
	BaseURL     string        // default: https://fapi.binance.com
	Timeout     time.Duration // per-request timeout, default: 10s
	QuoteSuffix string        // settlement currency suffix, default: "USDT"
}

// Client talks to the futures market-data API over HTTP.
type Client struct {
	baseURL     string
	quoteSuffix string
	httpClient  *http.Client
}

// NewClient creates a market-data client from the given config.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.QuoteSuffix == "" {
		cfg.QuoteSuffix = "USDT"
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		quoteSuffix: cfg.QuoteSuffix,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

type exchangeInfoResponse struct {
	Symbols []symbolInfo `json:"symbols"`
}

type symbolInfo struct {
	Symbol       string `json:"symbol"`
	QuoteAsset   string `json:"quoteAsset"`
	ContractType string `json:"contractType"`
	Status       string `json:"status"`
}

// ActiveSymbols returns the symbols of all perpetual contracts quoted
// against the configured settlement currency that are currently trading.
func (c *Client) ActiveSymbols(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, routes["exchange.info"], nil)
	if err != nil {
		return nil, err
	}

	var info exchangeInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode exchange info: %w", err)
	}

	symbols := make([]string, 0, len(info.Symbols))
	for _, s := range info.Symbols {
		inst := model.Instrument{
			Symbol:       s.Symbol,
			QuoteAsset:   s.QuoteAsset,
			ContractType: s.ContractType,
			Status:       s.Status,
		}
		if strings.HasSuffix(inst.Symbol, c.quoteSuffix) && inst.Tradable() {
			symbols = append(symbols, inst.Symbol)
		}
	}
	return symbols, nil
}

// Klines fetches up to limit candles for a symbol at the given interval,
// oldest first. The API returns each candle as a positional array:
// [openTime, open, high, low, close, volume, closeTime, ...].
func (c *Client) Klines(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, routes["klines"], params)
	if err != nil {
		return nil, err
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode klines for %s: %w", symbol, err)
	}

	candles := make([]model.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 7 {
			return nil, fmt.Errorf("malformed kline row for %s: %d fields", symbol, len(row))
		}
		candle, err := parseKlineRow(row)
		if err != nil {
			return nil, fmt.Errorf("malformed kline row for %s: %w", symbol, err)
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

func parseKlineRow(row []json.RawMessage) (model.Candle, error) {
	var openMs, closeMs int64
	if err := json.Unmarshal(row[0], &openMs); err != nil {
		return model.Candle{}, err
	}
	if err := json.Unmarshal(row[6], &closeMs); err != nil {
		return model.Candle{}, err
	}

	prices := [5]float64{} // open, high, low, close, volume
	for i := 0; i < 5; i++ {
		var s string
		if err := json.Unmarshal(row[i+1], &s); err != nil {
			return model.Candle{}, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Candle{}, err
		}
		prices[i] = v
	}

	return model.Candle{
		OpenTime:  time.UnixMilli(openMs).UTC(),
		CloseTime: time.UnixMilli(closeMs).UTC(),
		Open:      prices[0],
		High:      prices[1],
		Low:       prices[2],
		Close:     prices[3],
		Volume:    prices[4],
	}, nil
}

func (c *Client) get(ctx context.Context, route string, params url.Values) ([]byte, error) {
	u := c.baseURL + route
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", route, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", route, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: status %d: %s", route, resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"MarketLens/internal/model"
)

// DefaultBaseURL is the public Yahoo Finance API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// YahooClient implements Source and QuoteSource against the Yahoo Finance
// public API. Download and History both drive the chart endpoint but with
// the two request shapes the provider treats as distinct strategies.
type YahooClient struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooClient creates a client with optional proxy support and a bounded
// request timeout.
func NewYahooClient(baseURL, proxyURL string, timeout time.Duration) *YahooClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *YahooClient) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol string `json:"symbol"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []interface{} `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// toFloat converts a possibly-null JSON number to float64, NaN when absent.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return math.NaN()
	}
}

func at(xs []interface{}, i int) float64 {
	if i >= len(xs) {
		return math.NaN()
	}
	return toFloat(xs[i])
}

// Download is the primary bulk retrieval: one chart call per requested
// symbol, assembled into a composite result. A failure on any symbol fails
// the whole download; the provider falls back to History.
func (c *YahooClient) Download(ctx context.Context, symbols []string, start, end time.Time) ([]SymbolData, error) {
	groups := make([]SymbolData, 0, len(symbols))
	for _, sym := range symbols {
		data, err := c.fetchChart(ctx, sym, start, end, "history")
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", sym, err)
		}
		groups = append(groups, data)
	}
	return groups, nil
}

// History is the single-ticker fallback retrieval over the same range.
func (c *YahooClient) History(ctx context.Context, symbol string, start, end time.Time) (SymbolData, error) {
	return c.fetchChart(ctx, symbol, start, end, "div|split")
}

func (c *YahooClient) fetchChart(ctx context.Context, symbol string, start, end time.Time, events string) (SymbolData, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d&events=%s&includeAdjustedClose=true",
		c.BaseURL, url.PathEscape(symbol), start.Unix(), end.Unix(), url.QueryEscape(events))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return SymbolData{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return SymbolData{}, fmt.Errorf("chart fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return SymbolData{}, fmt.Errorf("chart read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return SymbolData{}, fmt.Errorf("chart: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return SymbolData{}, fmt.Errorf("chart decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return SymbolData{}, fmt.Errorf("chart api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return SymbolData{Symbol: symbol}, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return SymbolData{Symbol: symbol}, nil
	}
	quote := result.Indicators.Quote[0]

	var adj []interface{}
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]model.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bars = append(bars, model.Bar{
			Date:     time.Unix(ts, 0).UTC(),
			Open:     at(quote.Open, i),
			High:     at(quote.High, i),
			Low:      at(quote.Low, i),
			Close:    at(quote.Close, i),
			AdjClose: at(adj, i),
			Volume:   at(quote.Volume, i),
		})
	}

	sym := result.Meta.Symbol
	if sym == "" {
		sym = symbol
	}
	return SymbolData{Symbol: sym, Bars: bars}, nil
}

// yahooQuote is the response structure from the quote endpoint.
type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			Symbol    string  `json:"symbol"`
			MarketCap float64 `json:"marketCap"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// MarketCap fetches the ticker's market capitalization from the quote
// endpoint. A zero value means the field was absent.
func (c *YahooClient) MarketCap(ctx context.Context, symbol string) (float64, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.BaseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote: status %d", resp.StatusCode)
	}

	var q yahooQuote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return 0, fmt.Errorf("quote decode: %w", err)
	}
	if len(q.QuoteResponse.Result) == 0 {
		return 0, fmt.Errorf("quote: no result for %s", symbol)
	}
	return q.QuoteResponse.Result[0].MarketCap, nil
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"chartview/internal/model"

	"go.uber.org/zap"
)

// DefaultYahooBaseURL is the public Yahoo Finance chart API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches daily bars from the Yahoo Finance v8 chart API.
type YahooClient struct {
	baseURL      string
	symbolSuffix string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewYahooClient creates a new Yahoo Finance client. symbolSuffix is
// appended to every ticker (".NS" for NSE-listed symbols).
func NewYahooClient(baseURL, symbolSuffix string, timeout time.Duration, logger *zap.Logger) *YahooClient {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &YahooClient{
		baseURL:      baseURL,
		symbolSuffix: symbolSuffix,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// yahooChart is the response structure from the Yahoo Finance chart API.
// Price fields decode as interface{} because absent bars come back null.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchDailySeries retrieves the symbol's daily bars over the window.
// A structurally valid but empty answer (unknown symbol, delisted, no
// history in the window) maps to ErrNoData; transport and decode
// failures surface as ordinary errors.
func (c *YahooClient) FetchDailySeries(ctx context.Context, symbol string, window WindowPolicy) ([]model.Bar, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		c.baseURL, url.PathEscape(symbol+c.symbolSuffix), url.QueryEscape(string(window)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to fetch daily series",
			zap.Error(err),
			zap.String("symbol", symbol))
		return nil, fmt.Errorf("fetch daily series: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: symbol %s", ErrNoData, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Yahoo API error response",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("symbol", symbol))
		return nil, fmt.Errorf("yahoo: status %d: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoData, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("%w: symbol %s", ErrNoData, symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: symbol %s", ErrNoData, symbol)
	}
	quote := result.Indicators.Quote[0]

	bars := make([]model.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		cl := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: int64(toFloat(quote.Volume[i])),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: symbol %s", ErrNoData, symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

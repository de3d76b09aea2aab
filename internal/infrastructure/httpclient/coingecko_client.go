package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const apiKeyHeader = "x-cg-demo-api-key"

// CoinGeckoClient is the batch pricing source: one request for N asset ids,
// ids the API does not recognize are absent from the response.
type CoinGeckoClient interface {
	GetUSDPrices(ctx context.Context, assetIDs []string) (map[string]decimal.Decimal, error)
}

type coinGeckoClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewCoinGeckoClient creates a client for the CoinGecko simple-price
// endpoint. requestsPerSecond throttles outgoing calls; the public API
// rate-limits aggressively.
func NewCoinGeckoClient(baseURL, apiKey string, timeout time.Duration, requestsPerSecond float64, logger *zap.Logger) CoinGeckoClient {
	return &coinGeckoClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger.Named("CoinGeckoClient"),
	}
}

// GetUSDPrices implements the CoinGeckoClient interface.
func (c *coinGeckoClientImpl) GetUSDPrices(ctx context.Context, assetIDs []string) (map[string]decimal.Decimal, error) {
	if len(assetIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	requestURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(strings.Join(assetIDs, ",")))

	c.logger.Debug("Requesting prices from CoinGecko",
		zap.Int("assetCount", len(assetIDs)))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	body := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("CoinGecko API request failed",
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", body))
		return nil, fmt.Errorf("CoinGecko API request failed with status %d: %s", resp.StatusCode(), string(body))
	}

	// Response shape: {"ethereum":{"usd":3000.12}, ...}
	var payload map[string]struct {
		USD decimal.Decimal `json:"usd"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CoinGecko response: %w", err)
	}

	prices := make(map[string]decimal.Decimal, len(payload))
	for assetID, entry := range payload {
		prices[assetID] = entry.USD
	}
	return prices, nil
}

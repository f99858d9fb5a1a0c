package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kapu/terrascope/internal/constants"
	"github.com/kapu/terrascope/internal/util"
	"github.com/kapu/terrascope/pkg/errors"
)

// JSONRequester performs rate-limited GET requests against one upstream and
// decodes JSON bodies. It never retries.
type JSONRequester struct {
	name       string
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	logger     *zap.Logger
}

// NewJSONRequester creates a requester. ratePerSecond <= 0 disables limiting.
func NewJSONRequester(name string, httpClient *http.Client, ratePerSecond float64, timeout time.Duration, logger *zap.Logger) *JSONRequester {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	limit := rate.Inf
	burst := 1
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
		burst = max(1, int(ratePerSecond))
	}
	return &JSONRequester{
		name:       name,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		timeout:    timeout,
		logger:     util.OrNop(logger),
	}
}

// GetJSON fetches rawURL with params and decodes the body into dest.
func (c *JSONRequester) GetJSON(ctx context.Context, rawURL string, params url.Values, dest any) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return errors.NewAPIError("rate limiter wait", 0, map[string]any{"provider": c.name}).WithCause(err)
	}

	reqURL := rawURL
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.NewAPIError("build request", 0, map[string]any{"url": reqURL}).WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.APIConfig.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed", zap.String("provider", c.name), zap.Error(err))
		return errors.NewAPIError("request failed", 0, map[string]any{"url": reqURL}).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewAPIError("read response", resp.StatusCode, map[string]any{"url": reqURL}).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Unexpected status",
			zap.String("provider", c.name),
			zap.Int("status", resp.StatusCode),
			zap.String("body", util.TruncateString(string(body), constants.StringLimits.LogPreview)),
		)
		return errors.NewAPIError("unexpected status", resp.StatusCode, map[string]any{"url": reqURL})
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return errors.NewAPIError("decode response", resp.StatusCode, map[string]any{"url": reqURL}).WithCause(err)
	}
	return nil
}

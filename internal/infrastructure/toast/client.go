// Package toast is the REST client for the upstream point-of-sale API:
// machine-client authentication with cached tokens, exponential-backoff
// retries on transient failures, client-side rate limiting, and pagination
// over the bulk endpoints.
package toast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/fynchlabs/toast-insights/internal/config"
	"github.com/fynchlabs/toast-insights/pkg/apperror"
)

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

// Client calls the point-of-sale API on behalf of one restaurant. Safe for
// concurrent use.
type Client struct {
	cfg            config.ToastConfig
	restaurantGUID string
	http           *http.Client
	limiter        *rate.Limiter
	log            logrus.FieldLogger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient builds a client bound to one restaurant GUID. No network call is
// made until the first request.
func NewClient(cfg config.ToastConfig, restaurantGUID string, log logrus.FieldLogger) *Client {
	perSecond := rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)
	return &Client{
		cfg:            cfg,
		restaurantGUID: restaurantGUID,
		http:           &http.Client{Timeout: cfg.RequestTimeout},
		limiter:        rate.NewLimiter(perSecond, cfg.RequestsPerMinute),
		log:            log.WithField("restaurant", restaurantGUID),
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// get performs one GET with token management, rate limiting, and retries.
// 401 invalidates the cached token and consumes a retry; 429, 5xx, and
// network errors retry with backoff; other 4xx surface immediately.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	backoff := initialBackoff
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.log.WithFields(logrus.Fields{
				"path":    path,
				"attempt": attempt,
			}).Warnf("retrying in %s: %v", backoff, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff = nextBackoff(backoff)
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		token, err := c.ensureToken(ctx)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("building request for %s: %w", path, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Toast-Restaurant-External-ID", c.restaurantGUID)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("request to %s: %w", path, err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response from %s: %w", path, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			c.invalidateToken()
			lastErr = apperror.ErrUpstreamAuth
			continue
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = apperror.NewUpstreamError(resp.StatusCode,
				fmt.Sprintf("upstream returned %d for %s", resp.StatusCode, path))
			continue
		case resp.StatusCode >= 400:
			return nil, apperror.NewUpstreamError(resp.StatusCode,
				fmt.Sprintf("upstream returned %d for %s", resp.StatusCode, path))
		}
		return body, nil
	}
	return nil, lastErr
}

// decodeList decodes a response that is either a bare JSON array or an
// object wrapping the array under one of the given keys.
func decodeList[T any](body []byte, keys ...string) ([]T, error) {
	var list []T
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	for _, key := range keys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decoding %q field: %w", key, err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("response has none of the expected fields %v", keys)
}

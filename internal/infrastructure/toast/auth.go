package toast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fynchlabs/toast-insights/pkg/apperror"
)

const machineClientAccessType = "TOAST_MACHINE_CLIENT"

// Token refresh scheduling: refresh this long before the recorded expiry,
// and assume this lifetime when the response carries no usable expiry.
const (
	refreshLeeway        = 5 * time.Minute
	expiresInBuffer      = time.Hour
	defaultTokenLifetime = 23 * time.Hour
)

type authRequest struct {
	ClientID       string `json:"clientId"`
	ClientSecret   string `json:"clientSecret"`
	UserAccessType string `json:"userAccessType"`
}

// authResponse tolerates the shapes the login endpoint has been observed to
// return: a token object, a bare token string, or a top-level accessToken.
type authResponse struct {
	Token       json.RawMessage `json:"token"`
	AccessToken string          `json:"accessToken"`
	AccessSnake string          `json:"access_token"`
}

type tokenPayload struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// extractToken pulls the access token and its advertised lifetime (0 when
// absent) out of a login response body.
func extractToken(body []byte) (string, int64, error) {
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", 0, fmt.Errorf("decoding auth response: %w", err)
	}

	if len(resp.Token) > 0 {
		var payload tokenPayload
		if err := json.Unmarshal(resp.Token, &payload); err == nil && payload.AccessToken != "" {
			return payload.AccessToken, payload.ExpiresIn, nil
		}
		var bare string
		if err := json.Unmarshal(resp.Token, &bare); err == nil && bare != "" {
			return bare, 0, nil
		}
	}
	if resp.AccessToken != "" {
		return resp.AccessToken, 0, nil
	}
	if resp.AccessSnake != "" {
		return resp.AccessSnake, 0, nil
	}
	return "", 0, fmt.Errorf("no access token in auth response")
}

// tokenExpiry determines when a token stops being trusted. The token's own
// exp claim is authoritative when it parses; the advertised expiresIn (less
// a safety buffer) comes next; otherwise a conservative default applies.
// The claim is read without signature verification, the token is the
// upstream's to verify.
func tokenExpiry(token string, expiresIn int64, now time.Time) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	if expiresIn > 0 {
		return now.Add(time.Duration(expiresIn)*time.Second - expiresInBuffer)
	}
	return now.Add(defaultTokenLifetime)
}

// ensureToken returns a token valid for at least the refresh leeway,
// authenticating when the cached one is missing or near expiry.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Add(refreshLeeway).Before(c.tokenExpiry) {
		return c.token, nil
	}
	if err := c.authenticate(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

// invalidateToken drops the cached token so the next request authenticates
// again. Called on 401 responses.
func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// authenticate performs the machine-client login exchange. Transient
// failures retry with the same backoff schedule as data requests. Callers
// hold c.mu.
func (c *Client) authenticate(ctx context.Context) error {
	payload, err := json.Marshal(authRequest{
		ClientID:       c.cfg.ClientID,
		ClientSecret:   c.cfg.ClientSecret,
		UserAccessType: machineClientAccessType,
	})
	if err != nil {
		return fmt.Errorf("encoding auth request: %w", err)
	}

	backoff := initialBackoff
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.log.WithField("attempt", attempt).Warnf("retrying authentication in %s: %v", backoff, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = nextBackoff(backoff)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("building auth request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("auth request: %w", err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading auth response: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			upstream := apperror.NewUpstreamError(resp.StatusCode,
				fmt.Sprintf("authentication failed with status %d", resp.StatusCode))
			if !upstream.Retryable {
				return apperror.ErrUpstreamAuth
			}
			lastErr = upstream
			continue
		}

		token, expiresIn, err := extractToken(body)
		if err != nil {
			return err
		}
		c.token = token
		c.tokenExpiry = tokenExpiry(token, expiresIn, time.Now())
		c.log.WithField("validUntil", c.tokenExpiry.Format(time.RFC3339)).Info("obtained access token")
		return nil
	}
	return lastErr
}

// Package webhook delivers result and failure notifications to external
// endpoints.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Notifier posts JSON payloads to callback URLs.
type Notifier struct {
	http *http.Client
	log  logrus.FieldLogger
}

// NewNotifier builds a notifier with a per-delivery timeout.
func NewNotifier(timeout time.Duration, log logrus.FieldLogger) *Notifier {
	return &Notifier{
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Post delivers one payload. Delivery is attempted once; a task result that
// cannot be delivered is the caller's problem to surface, not to retry.
func (n *Notifier) Post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned %d", resp.StatusCode)
	}
	n.log.WithField("url", url).Info("webhook delivered")
	return nil
}

// ErrorReporter sends terminal-failure notifications to a fixed endpoint.
type ErrorReporter struct {
	notifier *Notifier
	url      string
	log      logrus.FieldLogger
}

// NewErrorReporter builds a reporter; an empty URL disables reporting.
func NewErrorReporter(notifier *Notifier, url string, log logrus.FieldLogger) *ErrorReporter {
	return &ErrorReporter{notifier: notifier, url: url, log: log}
}

// Report sends a failure notification. Fire and forget: delivery problems
// are logged, never retried, and never fail the caller.
func (r *ErrorReporter) Report(ctx context.Context, message string, details map[string]any) {
	if r == nil || r.url == "" {
		return
	}
	payload := map[string]any{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range details {
		payload[k] = v
	}
	if err := r.notifier.Post(ctx, r.url, payload); err != nil {
		r.log.WithField("url", r.url).Warnf("error webhook delivery failed: %v", err)
	}
}

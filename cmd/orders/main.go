// Command orders generates the category sales summary for one location and
// date window, writing JSON to a file or stdout and optionally posting it
// to a webhook.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fynchlabs/toast-insights/internal/application/service"
	"github.com/fynchlabs/toast-insights/internal/config"
	"github.com/fynchlabs/toast-insights/internal/infrastructure/toast"
	"github.com/fynchlabs/toast-insights/internal/infrastructure/webhook"
)

func main() {
	var (
		date       = flag.String("date", "", "single business date (YYYY-MM-DD)")
		start      = flag.String("start", "", "range start date (YYYY-MM-DD)")
		end        = flag.String("end", "", "range end date (YYYY-MM-DD)")
		location   = flag.Int("location", 0, "location index (1-5)")
		out        = flag.String("out", "", "output file path (default stdout)")
		webhookURL = flag.String("webhook-url", "", "POST the summary to this URL")
	)
	flag.Parse()

	logger := logrus.New()

	input, err := windowFromFlags(*date, *start, *end, *location)
	if err != nil {
		logger.Fatalf("Invalid arguments: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	clients := func(restaurantGUID string) service.ToastAPI {
		return toast.NewClient(cfg.Toast, restaurantGUID, logger)
	}
	svc := service.NewOrdersService(clients, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	summary, err := svc.GenerateCategoryReport(ctx, input)
	if err != nil {
		logger.Fatalf("Summary generation failed: %v", err)
	}

	if err := deliver(ctx, summary, *out, *webhookURL, cfg, logger); err != nil {
		logger.Fatalf("Delivering summary: %v", err)
	}
}

// windowFromFlags resolves -date vs -start/-end into one validated window.
func windowFromFlags(date, start, end string, location int) (*service.DateRangeInput, error) {
	input := &service.DateRangeInput{LocationIndex: location}
	switch {
	case date != "":
		input.StartDate, input.EndDate = date, date
	case start != "" && end != "":
		input.StartDate, input.EndDate = start, end
	case start != "":
		input.StartDate, input.EndDate = start, start
	default:
		return nil, errors.New("one of -date or -start/-end is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return input, nil
}

func deliver(ctx context.Context, summary any, out, webhookURL string, cfg *config.Config, logger *logrus.Logger) error {
	body, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}

	if out != "" {
		if err := os.WriteFile(out, body, 0o644); err != nil {
			return err
		}
		logger.Infof("Summary written to %s", out)
	} else {
		os.Stdout.Write(append(body, '\n'))
	}

	if webhookURL != "" {
		notifier := webhook.NewNotifier(cfg.Webhooks.Timeout, logger)
		if err := notifier.Post(ctx, webhookURL, summary); err != nil {
			return err
		}
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fynchlabs/toast-insights/internal/domain/entity"
	"github.com/fynchlabs/toast-insights/pkg/apperror"
)

// ToastAPI is the upstream client surface the services consume. Dates are
// inclusive YYYY-MM-DD.
type ToastAPI interface {
	Orders(ctx context.Context, startDate, endDate string) ([]entity.Order, error)
	Employees(ctx context.Context) ([]entity.Employee, error)
	Jobs(ctx context.Context) ([]entity.Job, error)
	TimeEntries(ctx context.Context, startDate, endDate string) ([]entity.TimeEntry, error)
}

// ClientFactory builds an API client bound to one restaurant GUID.
type ClientFactory func(restaurantGUID string) ToastAPI

// DateRangeInput is the common query window for report generation.
type DateRangeInput struct {
	StartDate     string
	EndDate       string
	LocationIndex int
}

const dateLayout = "2006-01-02"

// Validate checks the window before any network call.
func (in *DateRangeInput) Validate() error {
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return apperror.NewBadRequestError(fmt.Sprintf("invalid startDate %q, expected YYYY-MM-DD", in.StartDate))
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return apperror.NewBadRequestError(fmt.Sprintf("invalid endDate %q, expected YYYY-MM-DD", in.EndDate))
	}
	if end.Before(start) {
		return apperror.NewBadRequestError("endDate must not be before startDate")
	}
	return nil
}

// Days enumerates the window's dates in order. Validate must have passed.
func (in *DateRangeInput) Days() []string {
	start, _ := time.Parse(dateLayout, in.StartDate)
	end, _ := time.Parse(dateLayout, in.EndDate)

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dateLayout))
	}
	return days
}

// IsSingleDay reports whether the window covers exactly one business date.
func (in *DateRangeInput) IsSingleDay() bool {
	return in.StartDate == in.EndDate
}

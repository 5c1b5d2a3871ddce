package toast

import (
	"context"
	"net/url"

	"github.com/fynchlabs/toast-insights/internal/domain/entity"
)

// Employees fetches the restaurant's full employee roster.
func (c *Client) Employees(ctx context.Context) ([]entity.Employee, error) {
	body, err := c.get(ctx, "/labor/v1/employees", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[entity.Employee](body, "employees", "data")
}

// Jobs fetches the restaurant's position definitions.
func (c *Client) Jobs(ctx context.Context) ([]entity.Job, error) {
	body, err := c.get(ctx, "/labor/v1/jobs", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[entity.Job](body, "jobs", "data")
}

// TimeEntries fetches clock records for an inclusive YYYY-MM-DD window,
// including archived entries and missed breaks so the roster reconciles
// against everything payroll will see.
func (c *Client) TimeEntries(ctx context.Context, startDate, endDate string) ([]entity.TimeEntry, error) {
	query := url.Values{
		"startDate":           {startDate + "T00:00:00.000Z"},
		"endDate":             {endDate + "T23:59:59.999Z"},
		"includeArchived":     {"true"},
		"includeMissedBreaks": {"true"},
	}
	body, err := c.get(ctx, "/labor/v1/timeEntries", query)
	if err != nil {
		return nil, err
	}
	return decodeList[entity.TimeEntry](body, "timeEntries", "data")
}

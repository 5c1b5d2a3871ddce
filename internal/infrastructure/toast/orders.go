package toast

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/fynchlabs/toast-insights/internal/domain/entity"
)

// Maximum page size the bulk orders endpoint allows.
const ordersPageSize = 100

// Orders fetches every order for an inclusive YYYY-MM-DD date window,
// following pagination until a short page. Single-day windows query by
// businessDate, which matches how payments are reported; if that query
// fails on the first page the fetch falls back to timestamp-range
// parameters.
func (c *Client) Orders(ctx context.Context, startDate, endDate string) ([]entity.Order, error) {
	useBusinessDate := startDate == endDate

	orders, err := c.fetchOrders(ctx, startDate, endDate, useBusinessDate)
	if err != nil && useBusinessDate {
		c.log.WithField("businessDate", startDate).Warnf("businessDate query failed, retrying as date range: %v", err)
		return c.fetchOrders(ctx, startDate, endDate, false)
	}
	return orders, err
}

func (c *Client) fetchOrders(ctx context.Context, startDate, endDate string, useBusinessDate bool) ([]entity.Order, error) {
	var all []entity.Order
	for page := 1; ; page++ {
		query := url.Values{
			"page":     {strconv.Itoa(page)},
			"pageSize": {strconv.Itoa(ordersPageSize)},
		}
		if useBusinessDate {
			query.Set("businessDate", strings.ReplaceAll(startDate, "-", ""))
		} else {
			query.Set("startDate", startDate+"T00:00:00.000Z")
			query.Set("endDate", endDate+"T23:59:59.999Z")
		}

		body, err := c.get(ctx, "/orders/v2/ordersBulk", query)
		if err != nil {
			return nil, err
		}
		batch, err := decodeList[entity.Order](body, "orders", "data")
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < ordersPageSize {
			return all, nil
		}
	}
}

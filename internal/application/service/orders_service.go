package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fynchlabs/toast-insights/internal/application/aggregate"
	"github.com/fynchlabs/toast-insights/internal/config"
	"github.com/fynchlabs/toast-insights/pkg/apperror"
)

// OrdersService produces the per-category sales summary for one location
// and date window.
type OrdersService struct {
	clients ClientFactory
	log     logrus.FieldLogger
}

// NewOrdersService creates a new orders service.
func NewOrdersService(clients ClientFactory, log logrus.FieldLogger) *OrdersService {
	return &OrdersService{clients: clients, log: log}
}

// GenerateCategoryReport fetches the window's orders in one ranged call and
// summarizes them by sales category.
func (s *OrdersService) GenerateCategoryReport(ctx context.Context, input *DateRangeInput) (*aggregate.CategoryReport, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	loc, err := config.Location(input.LocationIndex)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	client := s.clients(loc.RestaurantGUID)
	orders, err := client.Orders(ctx, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"location": loc.Index,
		"start":    input.StartDate,
		"end":      input.EndDate,
	}).Infof("summarizing %d orders by category", len(orders))

	return aggregate.SummarizeCategories(orders, loc), nil
}

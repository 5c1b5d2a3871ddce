package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fynchlabs/toast-insights/internal/application/aggregate"
	"github.com/fynchlabs/toast-insights/internal/config"
	"github.com/fynchlabs/toast-insights/pkg/apperror"
)

// TipsService produces the tips/sales/tax report with the reconciled labor
// roster for one location and date window.
type TipsService struct {
	clients ClientFactory
	log     logrus.FieldLogger
}

// NewTipsService creates a new tips service.
func NewTipsService(clients ClientFactory, log logrus.FieldLogger) *TipsService {
	return &TipsService{clients: clients, log: log}
}

// GenerateReport fetches orders, aggregates tips/sales/tax, and reconciles
// time entries for the window. Orders are fetched day by day. A single-day
// query pins every payment to the query day; a range resolves each payment's
// date from its own data, so a payment settling after midnight lands on its
// paidBusinessDate rather than the day it was fetched under.
func (s *TipsService) GenerateReport(ctx context.Context, input *DateRangeInput) (*aggregate.Report, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	loc, err := config.Location(input.LocationIndex)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	log := s.log.WithFields(logrus.Fields{
		"location": loc.Index,
		"start":    input.StartDate,
		"end":      input.EndDate,
	})
	client := s.clients(loc.RestaurantGUID)

	pin := ""
	if input.IsSingleDay() {
		pin = input.StartDate
	}
	totals := aggregate.NewTotals()
	for _, day := range input.Days() {
		orders, err := client.Orders(ctx, day, day)
		if err != nil {
			return nil, err
		}
		log.WithField("day", day).Infof("fetched %d orders", len(orders))
		totals.Accumulate(orders, pin, log)
	}

	employees, err := client.Employees(ctx)
	if err != nil {
		return nil, err
	}
	dir := aggregate.NewDirectory(employees)

	report := totals.BuildReport(dir, loc.Index)
	report.DateInfo = &aggregate.DateInfo{
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		IsDateRange: !input.IsSingleDay(),
	}

	roster, err := s.reconcileRoster(ctx, client, input, dir, totals, loc, log)
	if err != nil {
		// The financial report still stands when labor data is
		// unavailable; the roster is reported empty.
		log.Warnf("time entry reconciliation failed: %v", err)
		roster = &aggregate.Roster{TimeEntriesByDay: map[string][]aggregate.RosterRow{}}
	}
	report.TimeEntries = roster

	return report, nil
}

func (s *TipsService) reconcileRoster(
	ctx context.Context,
	client ToastAPI,
	input *DateRangeInput,
	dir aggregate.Directory,
	totals *aggregate.Totals,
	loc config.LocationConfig,
	log logrus.FieldLogger,
) (*aggregate.Roster, error) {
	entries, err := client.TimeEntries(ctx, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	jobs, err := client.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(jobs))
	for _, j := range jobs {
		titles[j.GUID] = j.Title
	}
	log.Infof("reconciling %d time entries against %d jobs", len(entries), len(jobs))
	return aggregate.BuildRoster(entries, dir, titles, totals, loc, log), nil
}

package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/fynchlabs/toast-insights/internal/config"
	"github.com/fynchlabs/toast-insights/internal/domain/entity"
	"github.com/fynchlabs/toast-insights/internal/domain/enum"
	"github.com/fynchlabs/toast-insights/pkg/apperror"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeToast serves canned data and records the order-fetch windows.
type fakeToast struct {
	ordersByDay  map[string][]entity.Order
	employees    []entity.Employee
	jobs         []entity.Job
	timeEntries  []entity.TimeEntry
	orderWindows [][2]string
	laborErr     error
}

func (f *fakeToast) Orders(_ context.Context, startDate, endDate string) ([]entity.Order, error) {
	f.orderWindows = append(f.orderWindows, [2]string{startDate, endDate})
	return f.ordersByDay[startDate], nil
}

func (f *fakeToast) Employees(_ context.Context) ([]entity.Employee, error) {
	return f.employees, nil
}

func (f *fakeToast) Jobs(_ context.Context) ([]entity.Job, error) {
	if f.laborErr != nil {
		return nil, f.laborErr
	}
	return f.jobs, nil
}

func (f *fakeToast) TimeEntries(_ context.Context, _, _ string) ([]entity.TimeEntry, error) {
	if f.laborErr != nil {
		return nil, f.laborErr
	}
	return f.timeEntries, nil
}

func (f *fakeToast) factory() (ClientFactory, *[]string) {
	var restaurants []string
	return func(guid string) ToastAPI {
		restaurants = append(restaurants, guid)
		return f
	}, &restaurants
}

func paidOrder(guid, server string, amount, tip float64, bd int) entity.Order {
	return entity.Order{
		GUID: guid,
		Checks: []entity.Check{{
			Amount:      amount,
			TotalAmount: amount + tip,
			Payments: []entity.Payment{{
				GUID:             guid + "-pay",
				Amount:           amount,
				TipAmount:        tip,
				Server:           &entity.ExternalRef{GUID: server},
				PaidBusinessDate: bd,
				PaymentStatus:    enum.PaymentStatusCaptured,
			}},
		}},
	}
}

func TestGenerateReportRangeFetchesDayByDay(t *testing.T) {
	serverGUID := "aaaaaaaa-0000-0000-0000-000000000001"
	fake := &fakeToast{
		ordersByDay: map[string][]entity.Order{
			"2024-01-15": {paidOrder("o-1", serverGUID, 50.00, 10.00, 20240115)},
			"2024-01-16": {paidOrder("o-2", serverGUID, 30.00, 6.00, 20240116)},
		},
		employees: []entity.Employee{{GUID: serverGUID, FirstName: "Ana", LastName: "Torres"}},
		jobs:      []entity.Job{{GUID: config.ServerJobGUID, Title: "Server"}},
		timeEntries: []entity.TimeEntry{{
			GUID:              "te-1",
			EmployeeReference: entity.ExternalRef{GUID: serverGUID},
			JobReference:      &entity.ExternalRef{GUID: config.ServerJobGUID},
			BusinessDate:      20240115,
			RegularHours:      8,
		}},
	}
	factory, restaurants := fake.factory()
	svc := NewTipsService(factory, testLogger())

	report, err := svc.GenerateReport(context.Background(), &DateRangeInput{
		StartDate:     "2024-01-15",
		EndDate:       "2024-01-16",
		LocationIndex: 1,
	})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}

	want := [][2]string{{"2024-01-15", "2024-01-15"}, {"2024-01-16", "2024-01-16"}}
	if len(fake.orderWindows) != 2 || fake.orderWindows[0] != want[0] || fake.orderWindows[1] != want[1] {
		t.Errorf("order fetch windows = %v, want one call per day", fake.orderWindows)
	}

	loc, _ := config.Location(1)
	if len(*restaurants) == 0 || (*restaurants)[0] != loc.RestaurantGUID {
		t.Errorf("client bound to %v, want location 1 restaurant GUID", *restaurants)
	}

	if report.TipsByDate["2024-01-15"] != 10.00 || report.TipsByDate["2024-01-16"] != 6.00 {
		t.Errorf("tips by date = %v", report.TipsByDate)
	}
	if report.Summary.TotalTips != 16.00 {
		t.Errorf("total tips = %v, want 16.00", report.Summary.TotalTips)
	}
	if report.DateInfo == nil || !report.DateInfo.IsDateRange {
		t.Errorf("date info = %+v, want range marker", report.DateInfo)
	}

	rows := report.TimeEntries.TimeEntriesByDay["2024-01-15"]
	if len(rows) != 1 {
		t.Fatalf("roster rows = %d, want 1", len(rows))
	}
	if rows[0].Sales != 50.00 || rows[0].NonCashTips != 10.00 {
		t.Errorf("roster row amounts = %v/%v, want 50.00/10.00", rows[0].Sales, rows[0].NonCashTips)
	}
}

func TestGenerateReportSingleDay(t *testing.T) {
	serverGUID := "aaaaaaaa-0000-0000-0000-000000000001"
	fake := &fakeToast{
		ordersByDay: map[string][]entity.Order{
			// The payment carries a different business date; a single-day
			// query pins it to the query day anyway.
			"2024-01-15": {paidOrder("o-1", serverGUID, 50.00, 10.00, 20240116)},
		},
	}
	factory, _ := fake.factory()
	svc := NewTipsService(factory, testLogger())

	report, err := svc.GenerateReport(context.Background(), &DateRangeInput{
		StartDate:     "2024-01-15",
		EndDate:       "2024-01-15",
		LocationIndex: 1,
	})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if report.TipsByDate["2024-01-15"] != 10.00 {
		t.Errorf("tips pinned to query day = %v", report.TipsByDate)
	}
	if report.DateInfo.IsDateRange {
		t.Errorf("single-day query marked as range")
	}
}

func TestGenerateReportRangeUsesPaymentDates(t *testing.T) {
	serverGUID := "aaaaaaaa-0000-0000-0000-000000000001"
	fake := &fakeToast{
		ordersByDay: map[string][]entity.Order{
			// Fetched under the 15th, but the payment settled after
			// midnight on the 16th. Over a range the payment's own
			// business date wins.
			"2024-01-15": {paidOrder("o-1", serverGUID, 50.00, 5.00, 20240116)},
		},
	}
	factory, _ := fake.factory()
	svc := NewTipsService(factory, testLogger())

	report, err := svc.GenerateReport(context.Background(), &DateRangeInput{
		StartDate:     "2024-01-15",
		EndDate:       "2024-01-16",
		LocationIndex: 1,
	})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if report.TipsByDate["2024-01-16"] != 5.00 {
		t.Errorf("tips by date = %v, want 5.00 under the payment's business date", report.TipsByDate)
	}
	if _, ok := report.TipsByDate["2024-01-15"]; ok {
		t.Errorf("tips pinned to the fetch day: %v", report.TipsByDate)
	}
}

func TestGenerateReportLaborFailureKeepsFinancials(t *testing.T) {
	serverGUID := "aaaaaaaa-0000-0000-0000-000000000001"
	fake := &fakeToast{
		ordersByDay: map[string][]entity.Order{
			"2024-01-15": {paidOrder("o-1", serverGUID, 50.00, 10.00, 20240115)},
		},
		laborErr: errors.New("labor api down"),
	}
	factory, _ := fake.factory()
	svc := NewTipsService(factory, testLogger())

	report, err := svc.GenerateReport(context.Background(), &DateRangeInput{
		StartDate:     "2024-01-15",
		EndDate:       "2024-01-15",
		LocationIndex: 1,
	})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if report.Summary.TotalTips != 10.00 {
		t.Errorf("total tips = %v, want financials intact", report.Summary.TotalTips)
	}
	if report.TimeEntries == nil || len(report.TimeEntries.TimeEntriesByDay) != 0 {
		t.Errorf("roster = %+v, want empty on labor failure", report.TimeEntries)
	}
}

func TestDateRangeInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		input DateRangeInput
	}{
		{"bad start", DateRangeInput{StartDate: "01/15/2024", EndDate: "2024-01-16", LocationIndex: 1}},
		{"bad end", DateRangeInput{StartDate: "2024-01-15", EndDate: "tomorrow", LocationIndex: 1}},
		{"inverted", DateRangeInput{StartDate: "2024-01-16", EndDate: "2024-01-15", LocationIndex: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if err == nil {
				t.Fatal("want validation error")
			}
			if appErr := apperror.GetAppError(err); appErr.Code != 400 {
				t.Errorf("error code = %d, want 400", appErr.Code)
			}
		})
	}
}

func TestGenerateReportInvalidLocation(t *testing.T) {
	fake := &fakeToast{}
	factory, _ := fake.factory()
	svc := NewTipsService(factory, testLogger())

	_, err := svc.GenerateReport(context.Background(), &DateRangeInput{
		StartDate:     "2024-01-15",
		EndDate:       "2024-01-15",
		LocationIndex: 9,
	})
	if err == nil {
		t.Fatal("want error for unknown location")
	}
	if len(fake.orderWindows) != 0 {
		t.Errorf("fetched orders despite invalid location")
	}
}

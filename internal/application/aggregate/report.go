package aggregate

import (
	"fmt"
	"sort"

	"github.com/fynchlabs/toast-insights/internal/domain/entity"
	"github.com/fynchlabs/toast-insights/pkg/money"
)

// Directory maps employee GUIDs to their labor records for name and payroll
// identifier lookups.
type Directory map[string]entity.Employee

// NewDirectory indexes a fetched employee list by GUID.
func NewDirectory(employees []entity.Employee) Directory {
	dir := make(Directory, len(employees))
	for _, e := range employees {
		dir[e.GUID] = e
	}
	return dir
}

// Name returns the employee's display name, or a GUID-derived placeholder
// when the directory has no entry.
func (d Directory) Name(guid string) string {
	if e, ok := d[guid]; ok {
		return e.DisplayName()
	}
	suffix := guid
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return fmt.Sprintf("Unknown Server (%s)", suffix)
}

// ExternalID returns the employee's external payroll identifier, if any.
func (d Directory) ExternalID(guid string) string {
	if e, ok := d[guid]; ok {
		return e.ExternalEmployeeID
	}
	return ""
}

// ServerDay is one server's totals for one business date.
type ServerDay struct {
	Date               string  `json:"date"`
	ServerGUID         string  `json:"server_guid"`
	ServerName         string  `json:"server_name"`
	ExternalEmployeeID string  `json:"external_employee_id"`
	TotalSales         float64 `json:"total_sales"`
	TotalTips          float64 `json:"total_tips"`
}

// DateRange bounds the dates observed in the output.
type DateRange struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// ProcessingStats counts what the aggregation pass saw.
type ProcessingStats struct {
	TotalOrdersProcessed   int `json:"total_orders_processed"`
	TotalPaymentsProcessed int `json:"total_payments_processed"`
	OrdersWithTips         int `json:"orders_with_tips"`
	UniqueServers          int `json:"unique_servers"`
	DaysWithTips           int `json:"days_with_tips"`
	ServerDayRecords       int `json:"server_day_records"`
}

// Summary is the report-level rollup.
type Summary struct {
	TotalTips        float64         `json:"total_tips"`
	TotalServerSales float64         `json:"total_server_sales"`
	DateRange        DateRange       `json:"date_range"`
	ProcessingStats  ProcessingStats `json:"processing_stats"`
}

// DateInfo records the caller's query window.
type DateInfo struct {
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsDateRange bool   `json:"isDateRange"`
}

// Report is the tips/sales output record. TimeEntries is attached when the
// labor roster was reconciled for the same window.
type Report struct {
	TipsByDate    map[string]float64 `json:"tips_by_date"`
	SalesByServer []ServerDay        `json:"sales_by_server"`
	Summary       Summary            `json:"summary"`
	LocationIndex int                `json:"location_index"`
	DateInfo      *DateInfo          `json:"dateInfo,omitempty"`
	TimeEntries   *Roster            `json:"timeEntries,omitempty"`
}

// BuildReport renders accumulated totals into the output record. Amounts are
// rounded to cents here, once, and keys are emitted in sorted order so two
// runs over the same batch produce identical output.
func (t *Totals) BuildReport(dir Directory, locationIndex int) *Report {
	tipsByDate := make(map[string]float64, len(t.TipsByDate))
	tipDates := make([]string, 0, len(t.TipsByDate))
	totalTips := money.Zero
	for date, amount := range t.TipsByDate {
		tipsByDate[date] = money.Float(money.Round2(amount))
		tipDates = append(tipDates, date)
		totalTips = totalTips.Add(amount)
	}
	sort.Strings(tipDates)

	// One row per (date, server) seen with sales or tips.
	dateSet := make(map[string]bool)
	for date := range t.SalesByServerByDate {
		dateSet[date] = true
	}
	for date := range t.TipsByServerByDate {
		dateSet[date] = true
	}
	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var rows []ServerDay
	uniqueServers := make(map[string]bool)
	totalSales := money.Zero
	for _, date := range dates {
		guidSet := make(map[string]bool)
		for guid := range t.SalesByServerByDate[date] {
			guidSet[guid] = true
		}
		for guid := range t.TipsByServerByDate[date] {
			guidSet[guid] = true
		}
		guids := make([]string, 0, len(guidSet))
		for guid := range guidSet {
			guids = append(guids, guid)
		}
		sort.Strings(guids)

		for _, guid := range guids {
			sales := ServerAmount(t.SalesByServerByDate, date, guid)
			tips := ServerAmount(t.TipsByServerByDate, date, guid)
			totalSales = totalSales.Add(sales)
			uniqueServers[guid] = true
			rows = append(rows, ServerDay{
				Date:               date,
				ServerGUID:         guid,
				ServerName:         dir.Name(guid),
				ExternalEmployeeID: dir.ExternalID(guid),
				TotalSales:         money.Float(money.Round2(sales)),
				TotalTips:          money.Float(money.Round2(tips)),
			})
		}
	}

	var dateRange DateRange
	if len(tipDates) > 0 {
		start, end := tipDates[0], tipDates[len(tipDates)-1]
		dateRange = DateRange{StartDate: &start, EndDate: &end}
	}

	return &Report{
		TipsByDate:    tipsByDate,
		SalesByServer: rows,
		LocationIndex: locationIndex,
		Summary: Summary{
			TotalTips:        money.Float(money.Round2(totalTips)),
			TotalServerSales: money.Float(money.Round2(totalSales)),
			DateRange:        dateRange,
			ProcessingStats: ProcessingStats{
				TotalOrdersProcessed:   t.OrdersProcessed,
				TotalPaymentsProcessed: t.PaymentsProcessed,
				OrdersWithTips:         t.OrdersWithTips,
				UniqueServers:          len(uniqueServers),
				DaysWithTips:           len(tipDates),
				ServerDayRecords:       len(rows),
			},
		},
	}
}

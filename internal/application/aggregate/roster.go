package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fynchlabs/toast-insights/internal/config"
	"github.com/fynchlabs/toast-insights/internal/domain/entity"
	"github.com/fynchlabs/toast-insights/pkg/money"
)

// RosterRow is one payroll-ready line: a time entry joined with the
// employee's per-date sales, tips, and tax from the aggregation pass.
type RosterRow struct {
	EmployeeGUID     string  `json:"employeeGuid"`
	EmployeeName     string  `json:"employeeName"`
	BusinessDate     string  `json:"businessDate"`
	TimeIn           string  `json:"timeIn"`
	TimeOut          string  `json:"timeOut"`
	TotalHours       float64 `json:"totalHours"`
	UnpaidBreakHours float64 `json:"unpaidBreakHours"`
	PayableHours     float64 `json:"payableHours"`
	Position         string  `json:"position"`
	PositionGUID     string  `json:"positionGuid"`
	Sales            float64 `json:"sales"`
	NonCashTips      float64 `json:"nonCashTips"`
	TotalGratuity    float64 `json:"totalGratuity"`
	CashTipsDeclared float64 `json:"cashTipsDeclared"`
	TaxAmount        float64 `json:"taxAmount"`
	TimeEntryGUID    string  `json:"timeEntryGuid"`
}

// RosterSummary aggregates hours across the roster.
type RosterSummary struct {
	TotalTimeEntries      int     `json:"totalTimeEntries"`
	DaysWithTimeEntries   int     `json:"daysWithTimeEntries"`
	TotalHours            float64 `json:"totalHours"`
	TotalPayableHours     float64 `json:"totalPayableHours"`
	TotalUnpaidBreakHours float64 `json:"totalUnpaidBreakHours"`
	TotalRegularHours     float64 `json:"totalRegularHours"`
	TotalOvertimeHours    float64 `json:"totalOvertimeHours"`
}

// Roster is the reconciled labor output, keyed by YYYY-MM-DD.
type Roster struct {
	TimeEntriesByDay map[string][]RosterRow `json:"timeEntriesByDay"`
	Summary          RosterSummary          `json:"summary"`
}

// UnpaidBreakHours sums the durations of unpaid break intervals, in hours.
// Breaks with missing or unparsable timestamps are skipped with a warning.
func UnpaidBreakHours(breaks []entity.Break, log logrus.FieldLogger) float64 {
	total := money.Zero
	for _, b := range breaks {
		if b.Paid || b.InDate == "" || b.OutDate == "" {
			continue
		}
		in, okIn := ParseTimestamp(b.InDate)
		out, okOut := ParseTimestamp(b.OutDate)
		if !okIn || !okOut {
			log.WithField("break", b.GUID).Warn("unparsable break interval, skipping")
			continue
		}
		total = total.Add(money.FromFloat(out.Sub(in).Hours()))
	}
	return money.Float(money.Round2(total))
}

func clockDisplay(ts string, utcOffsetHours int) string {
	if ts == "" {
		return ""
	}
	t, ok := ParseTimestamp(ts)
	if !ok {
		return ""
	}
	local := t.UTC().Add(time.Duration(utcOffsetHours) * time.Hour)
	return strings.ToLower(local.Format("03:04PM"))
}

// BuildRoster joins time entries with per-server-per-date totals. Only
// positions on the location's tip-pool allow-list carry sales, tips, and
// tax; everyone else appears with zero amounts even when the aggregation
// computed nonzero values for their GUID. The row position comes from the
// time entry's own job reference, falling back to the employee's first
// listed job.
func BuildRoster(
	entries []entity.TimeEntry,
	dir Directory,
	jobs map[string]string,
	totals *Totals,
	loc config.LocationConfig,
	log logrus.FieldLogger,
) *Roster {
	byDay := make(map[string][]RosterRow)
	summary := RosterSummary{TotalTimeEntries: len(entries)}

	for i := range entries {
		entry := &entries[i]

		// Regular/overtime totals cover every fetched entry, even ones
		// too malformed to join into a row.
		summary.TotalRegularHours += entry.RegularHours
		summary.TotalOvertimeHours += entry.OvertimeHours

		date, ok := BusinessDateString(entry.BusinessDate)
		if !ok {
			log.WithFields(logrus.Fields{
				"timeEntry":    entry.GUID,
				"businessDate": entry.BusinessDate,
			}).Warn("invalid business date on time entry, skipping")
			continue
		}

		employeeGUID := entry.EmployeeReference.GUID
		if employeeGUID == "" {
			log.WithField("timeEntry", entry.GUID).Warn("time entry has no employee reference, skipping")
			continue
		}

		positionGUID := entry.JobGUID()
		if positionGUID == "" {
			if e, ok := dir[employeeGUID]; ok {
				positionGUID = e.PrimaryJobGUID()
			}
		}
		position := positionGUID
		if title, ok := jobs[positionGUID]; ok {
			position = title
		} else if position == "" {
			position = "Unknown Position"
		}

		payableHours := entry.RegularHours + entry.OvertimeHours
		unpaidBreaks := UnpaidBreakHours(entry.Breaks, log)
		totalHours := payableHours + unpaidBreaks

		sales, tips, tax := money.Zero, money.Zero, money.Zero
		if loc.TipPoolEligible(positionGUID) {
			sales = ServerAmount(totals.SalesByServerByDate, date, employeeGUID)
			tips = ServerAmount(totals.TipsByServerByDate, date, employeeGUID)
			tax = ServerAmount(totals.TaxByServerByDate, date, employeeGUID)
		}

		declaredCash := money.FromFloatPtr(entry.DeclaredCashTips)

		displayDate, _ := time.Parse("2006-01-02", date)
		byDay[date] = append(byDay[date], RosterRow{
			EmployeeGUID:     employeeGUID,
			EmployeeName:     dir.Name(employeeGUID),
			BusinessDate:     displayDate.Format("01/02/2006"),
			TimeIn:           clockDisplay(entry.InDate, loc.ClockUTCOffsetHours),
			TimeOut:          clockDisplay(entry.OutDate, loc.ClockUTCOffsetHours),
			TotalHours:       round2f(totalHours),
			UnpaidBreakHours: unpaidBreaks,
			PayableHours:     round2f(payableHours),
			Position:         position,
			PositionGUID:     positionGUID,
			Sales:            money.Float(money.Round2(sales)),
			NonCashTips:      money.Float(money.Round2(tips)),
			TotalGratuity:    0,
			CashTipsDeclared: money.Float(money.Round2(declaredCash)),
			TaxAmount:        money.Float(money.Round2(tax)),
			TimeEntryGUID:    entry.GUID,
		})

		summary.TotalHours += totalHours
		summary.TotalPayableHours += payableHours
		summary.TotalUnpaidBreakHours += unpaidBreaks
	}

	for date := range byDay {
		rows := byDay[date]
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].EmployeeName < rows[j].EmployeeName
		})
	}

	summary.DaysWithTimeEntries = len(byDay)
	summary.TotalHours = round2f(summary.TotalHours)
	summary.TotalPayableHours = round2f(summary.TotalPayableHours)
	summary.TotalUnpaidBreakHours = round2f(summary.TotalUnpaidBreakHours)

	return &Roster{TimeEntriesByDay: byDay, Summary: summary}
}

func round2f(f float64) float64 {
	return money.Float(money.Round2(money.FromFloat(f)))
}

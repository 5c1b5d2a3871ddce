package aggregate

import (
	"testing"

	"github.com/fynchlabs/toast-insights/internal/config"
	"github.com/fynchlabs/toast-insights/internal/domain/entity"
	"github.com/fynchlabs/toast-insights/pkg/money"
)

const bartenderJobGUID = "cccccccc-0000-0000-0000-00000000000c"

func rosterFixture(t *testing.T) (Directory, map[string]string, *Totals, config.LocationConfig) {
	t.Helper()
	dir := NewDirectory([]entity.Employee{
		{GUID: serverA, FirstName: "Ana", LastName: "Torres"},
		{
			GUID:          serverB,
			FirstName:     "Ben",
			LastName:      "Ito",
			JobReferences: []entity.ExternalRef{{GUID: bartenderJobGUID}},
		},
	})
	jobs := map[string]string{
		config.ServerJobGUID: "Server",
		bartenderJobGUID:     "Bartender",
	}

	totals := NewTotals()
	addNested(totals.SalesByServerByDate, "2024-01-15", serverA, money.FromFloat(240.00))
	addNested(totals.TipsByServerByDate, "2024-01-15", serverA, money.FromFloat(48.00))
	addNested(totals.TaxByServerByDate, "2024-01-15", serverA, money.FromFloat(21.60))
	addNested(totals.SalesByServerByDate, "2024-01-15", serverB, money.FromFloat(100.00))
	addNested(totals.TipsByServerByDate, "2024-01-15", serverB, money.FromFloat(20.00))

	loc, err := config.Location(1)
	if err != nil {
		t.Fatalf("Location(1): %v", err)
	}
	return dir, jobs, totals, loc
}

func TestBuildRosterJoinsTotals(t *testing.T) {
	dir, jobs, totals, loc := rosterFixture(t)
	declared := 12.00

	entries := []entity.TimeEntry{{
		GUID:              "te-1",
		EmployeeReference: entity.ExternalRef{GUID: serverA},
		JobReference:      &entity.ExternalRef{GUID: config.ServerJobGUID},
		BusinessDate:      20240115,
		InDate:            "2024-01-15T18:00:00.000+0000",
		OutDate:           "2024-01-16T02:30:00.000+0000",
		RegularHours:      8.0,
		OvertimeHours:     0.5,
		DeclaredCashTips:  &declared,
	}}

	roster := BuildRoster(entries, dir, jobs, totals, loc, testLogger())

	rows := roster.TimeEntriesByDay["2024-01-15"]
	if len(rows) != 1 {
		t.Fatalf("got %d rows for day, want 1", len(rows))
	}
	row := rows[0]
	if row.EmployeeName != "Ana Torres" {
		t.Errorf("name = %q, want Ana Torres", row.EmployeeName)
	}
	if row.BusinessDate != "01/15/2024" {
		t.Errorf("business date = %q, want 01/15/2024", row.BusinessDate)
	}
	if row.TimeIn != "11:00am" || row.TimeOut != "07:30pm" {
		t.Errorf("clock times = %q/%q, want 11:00am/07:30pm", row.TimeIn, row.TimeOut)
	}
	if row.Position != "Server" {
		t.Errorf("position = %q, want Server", row.Position)
	}
	if row.PayableHours != 8.5 {
		t.Errorf("payable hours = %v, want 8.5", row.PayableHours)
	}
	if row.Sales != 240.00 || row.NonCashTips != 48.00 || row.TaxAmount != 21.60 {
		t.Errorf("joined amounts = %v/%v/%v, want 240.00/48.00/21.60",
			row.Sales, row.NonCashTips, row.TaxAmount)
	}
	if row.CashTipsDeclared != 12.00 {
		t.Errorf("declared cash tips = %v, want 12.00", row.CashTipsDeclared)
	}
	if row.TotalGratuity != 0 {
		t.Errorf("total gratuity = %v, want 0", row.TotalGratuity)
	}
}

func TestBuildRosterIneligiblePositionZeroed(t *testing.T) {
	dir, jobs, totals, loc := rosterFixture(t)

	// Server B has per-date totals but clocked in as a bartender, which is
	// outside the tip pool at this location.
	entries := []entity.TimeEntry{{
		GUID:              "te-2",
		EmployeeReference: entity.ExternalRef{GUID: serverB},
		JobReference:      &entity.ExternalRef{GUID: bartenderJobGUID},
		BusinessDate:      20240115,
		RegularHours:      6.0,
	}}

	roster := BuildRoster(entries, dir, jobs, totals, loc, testLogger())

	row := roster.TimeEntriesByDay["2024-01-15"][0]
	if row.Sales != 0 || row.NonCashTips != 0 || row.TaxAmount != 0 {
		t.Errorf("ineligible position carried amounts %v/%v/%v, want zeros",
			row.Sales, row.NonCashTips, row.TaxAmount)
	}
	if row.Position != "Bartender" {
		t.Errorf("position = %q, want Bartender", row.Position)
	}
	if row.PayableHours != 6.0 {
		t.Errorf("payable hours = %v, want 6.0", row.PayableHours)
	}
}

func TestBuildRosterJobFallback(t *testing.T) {
	dir, jobs, totals, loc := rosterFixture(t)

	// The time entry has no job reference; Server B's first listed job
	// applies instead.
	entries := []entity.TimeEntry{{
		GUID:              "te-3",
		EmployeeReference: entity.ExternalRef{GUID: serverB},
		BusinessDate:      20240115,
		RegularHours:      4.0,
	}}

	roster := BuildRoster(entries, dir, jobs, totals, loc, testLogger())

	row := roster.TimeEntriesByDay["2024-01-15"][0]
	if row.PositionGUID != bartenderJobGUID {
		t.Errorf("position guid = %q, want employee's primary job", row.PositionGUID)
	}
	if row.Position != "Bartender" {
		t.Errorf("position = %q, want Bartender", row.Position)
	}
}

func TestBuildRosterSkipsInvalidEntries(t *testing.T) {
	dir, jobs, totals, loc := rosterFixture(t)

	entries := []entity.TimeEntry{
		{GUID: "te-bad-date", EmployeeReference: entity.ExternalRef{GUID: serverA}, BusinessDate: 123, RegularHours: 3.0, OvertimeHours: 1.0},
		{GUID: "te-no-employee", BusinessDate: 20240115, RegularHours: 2.0},
	}

	roster := BuildRoster(entries, dir, jobs, totals, loc, testLogger())
	if len(roster.TimeEntriesByDay) != 0 {
		t.Fatalf("invalid entries produced rows: %v", roster.TimeEntriesByDay)
	}
	if roster.Summary.TotalTimeEntries != 2 {
		t.Errorf("total time entries = %d, want 2 counted as seen", roster.Summary.TotalTimeEntries)
	}
	// Skipped entries still count toward the fetched-hours totals.
	if roster.Summary.TotalRegularHours != 5.0 || roster.Summary.TotalOvertimeHours != 1.0 {
		t.Errorf("regular/overtime = %v/%v, want 5.0/1.0 over all fetched entries",
			roster.Summary.TotalRegularHours, roster.Summary.TotalOvertimeHours)
	}
}

func TestUnpaidBreakHours(t *testing.T) {
	breaks := []entity.Break{
		{GUID: "b-unpaid", InDate: "2024-01-15T20:00:00.000+0000", OutDate: "2024-01-15T20:30:00.000+0000"},
		{GUID: "b-paid", Paid: true, InDate: "2024-01-15T22:00:00.000+0000", OutDate: "2024-01-15T22:15:00.000+0000"},
		{GUID: "b-open", InDate: "2024-01-15T23:00:00.000+0000"},
		{GUID: "b-garbled", InDate: "garbled", OutDate: "2024-01-15T23:30:00.000+0000"},
	}
	if got := UnpaidBreakHours(breaks, testLogger()); got != 0.5 {
		t.Fatalf("unpaid break hours = %v, want 0.5", got)
	}
}

func TestBuildRosterSummaryAndOrdering(t *testing.T) {
	dir, jobs, totals, loc := rosterFixture(t)

	entries := []entity.TimeEntry{
		{
			GUID:              "te-ben",
			EmployeeReference: entity.ExternalRef{GUID: serverB},
			JobReference:      &entity.ExternalRef{GUID: config.ServerJobGUID},
			BusinessDate:      20240115,
			RegularHours:      5.0,
			OvertimeHours:     1.0,
			Breaks: []entity.Break{
				{InDate: "2024-01-15T20:00:00.000+0000", OutDate: "2024-01-15T20:30:00.000+0000"},
			},
		},
		{
			GUID:              "te-ana",
			EmployeeReference: entity.ExternalRef{GUID: serverA},
			JobReference:      &entity.ExternalRef{GUID: config.ServerJobGUID},
			BusinessDate:      20240115,
			RegularHours:      7.0,
		},
	}

	roster := BuildRoster(entries, dir, jobs, totals, loc, testLogger())

	rows := roster.TimeEntriesByDay["2024-01-15"]
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].EmployeeName != "Ana Torres" || rows[1].EmployeeName != "Ben Ito" {
		t.Errorf("rows not sorted by employee name: %q, %q", rows[0].EmployeeName, rows[1].EmployeeName)
	}

	s := roster.Summary
	if s.TotalTimeEntries != 2 || s.DaysWithTimeEntries != 1 {
		t.Errorf("summary counts = %d/%d, want 2/1", s.TotalTimeEntries, s.DaysWithTimeEntries)
	}
	if s.TotalPayableHours != 13.0 {
		t.Errorf("payable hours = %v, want 13.0", s.TotalPayableHours)
	}
	if s.TotalUnpaidBreakHours != 0.5 {
		t.Errorf("unpaid break hours = %v, want 0.5", s.TotalUnpaidBreakHours)
	}
	if s.TotalHours != 13.5 {
		t.Errorf("total hours = %v, want 13.5", s.TotalHours)
	}
	if s.TotalRegularHours != 12.0 || s.TotalOvertimeHours != 1.0 {
		t.Errorf("regular/overtime = %v/%v, want 12.0/1.0", s.TotalRegularHours, s.TotalOvertimeHours)
	}
}

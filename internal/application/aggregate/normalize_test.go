package aggregate

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/fynchlabs/toast-insights/internal/domain/entity"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestBusinessDateString(t *testing.T) {
	tests := []struct {
		bd   int
		want string
		ok   bool
	}{
		{20240115, "2024-01-15", true},
		{20231231, "2023-12-31", true},
		{0, "", false},
		{2024011, "", false},
		{202401150, "", false},
	}
	for _, tt := range tests {
		got, ok := BusinessDateString(tt.bd)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BusinessDateString(%d) = (%q, %v), want (%q, %v)", tt.bd, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseTimestampFormats(t *testing.T) {
	valid := []string{
		"2024-01-15T18:30:00.000+0000",
		"2024-01-15T18:30:00-0700",
		"2024-01-15T18:30:00Z",
		"2024-01-15T18:30:00.123456789Z",
	}
	for _, ts := range valid {
		if _, ok := ParseTimestamp(ts); !ok {
			t.Errorf("ParseTimestamp(%q) failed, want success", ts)
		}
	}
	if _, ok := ParseTimestamp("not a timestamp"); ok {
		t.Errorf("ParseTimestamp accepted garbage input")
	}
}

func TestResolvePaymentDatePriority(t *testing.T) {
	tests := []struct {
		name    string
		order   entity.Order
		payment entity.Payment
		want    string
	}{
		{
			name: "payment business date wins over everything",
			order: entity.Order{
				PaidDate:   "2024-01-14T23:50:00.000+0000",
				OpenedDate: "2024-01-14T22:00:00.000+0000",
			},
			payment: entity.Payment{
				PaidBusinessDate: 20240115,
				PaidDate:         "2024-01-14T23:55:00.000+0000",
			},
			want: "2024-01-15",
		},
		{
			name:  "payment paid timestamp when no business date",
			order: entity.Order{OpenedDate: "2024-01-14T22:00:00.000+0000"},
			payment: entity.Payment{
				PaidDate: "2024-01-16T02:30:00.000+0000",
			},
			want: "2024-01-16",
		},
		{
			name:    "order paid timestamp third",
			order:   entity.Order{PaidDate: "2024-01-17T01:00:00.000+0000"},
			payment: entity.Payment{},
			want:    "2024-01-17",
		},
		{
			name:    "order opened timestamp last",
			order:   entity.Order{OpenedDate: "2024-01-18T19:00:00.000+0000"},
			payment: entity.Payment{},
			want:    "2024-01-18",
		},
		{
			name:    "nothing resolvable",
			order:   entity.Order{},
			payment: entity.Payment{},
			want:    "",
		},
		{
			name:    "malformed business date falls through to timestamps",
			order:   entity.Order{OpenedDate: "2024-01-19T12:00:00.000+0000"},
			payment: entity.Payment{PaidBusinessDate: 123},
			want:    "2024-01-19",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePaymentDate(&tt.order, &tt.payment)
			if got != tt.want {
				t.Fatalf("ResolvePaymentDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeForceDate(t *testing.T) {
	orders := []entity.Order{{
		GUID: "order-1",
		Checks: []entity.Check{{
			Payments: []entity.Payment{
				{GUID: "pay-1", PaidBusinessDate: 20240110},
				{GUID: "pay-2", PaidBusinessDate: 20240111},
			},
		}},
	}}

	records := Normalize(orders, "2024-01-15", testLogger())
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, r := range records {
		if r.Date != "2024-01-15" {
			t.Errorf("record %s date = %q, want forced 2024-01-15", r.Payment.GUID, r.Date)
		}
	}
}

func TestNormalizeDropsUnresolvable(t *testing.T) {
	orders := []entity.Order{{
		GUID: "order-1",
		Checks: []entity.Check{{
			Payments: []entity.Payment{
				{GUID: "pay-dated", PaidBusinessDate: 20240110},
				{GUID: "pay-undated"},
			},
		}},
	}}

	records := Normalize(orders, "", testLogger())
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Payment.GUID != "pay-dated" {
		t.Errorf("kept record %s, want pay-dated", records[0].Payment.GUID)
	}
	if records[0].Date != "2024-01-10" {
		t.Errorf("record date = %q, want 2024-01-10", records[0].Date)
	}
}

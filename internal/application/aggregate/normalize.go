// Package aggregate implements the tip/sales/tax attribution engine: a
// single-pass reduction over fetched orders producing per-day and
// per-server-per-day financial totals, joined with labor time entries into a
// payroll-ready roster.
package aggregate

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fynchlabs/toast-insights/internal/domain/entity"
)

// upstream timestamps arrive either RFC3339 or with a numeric zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
}

// ParseTimestamp parses an upstream ISO-8601 timestamp.
func ParseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BusinessDateString converts an integer YYYYMMDD business date to
// YYYY-MM-DD. Returns false for anything that is not eight digits.
func BusinessDateString(bd int) (string, bool) {
	s := strconv.Itoa(bd)
	if len(s) != 8 {
		return "", false
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:8], true
}

func timestampDate(ts string) (string, bool) {
	if ts == "" {
		return "", false
	}
	t, ok := ParseTimestamp(ts)
	if !ok {
		return "", false
	}
	return t.UTC().Format("2006-01-02"), true
}

// ResolvePaymentDate resolves the business date for one payment. Priority:
// the payment's own business date, then the payment's paid timestamp, then
// the order's paid and opened timestamps. Returns "" when nothing resolves;
// the caller drops the record with a warning rather than aborting the batch.
func ResolvePaymentDate(order *entity.Order, payment *entity.Payment) string {
	if payment.PaidBusinessDate != 0 {
		if d, ok := BusinessDateString(payment.PaidBusinessDate); ok {
			return d
		}
	}
	if d, ok := timestampDate(payment.PaidDate); ok {
		return d
	}
	if d, ok := timestampDate(order.PaidDate); ok {
		return d
	}
	if d, ok := timestampDate(order.OpenedDate); ok {
		return d
	}
	return ""
}

// PaymentRecord is a flattened (order, check, payment) triple annotated with
// its resolved business date.
type PaymentRecord struct {
	Date    string
	Order   *entity.Order
	Check   *entity.Check
	Payment *entity.Payment
}

// Normalize flattens heterogeneous nested orders into dated payment records.
// When forceDate is non-empty (single-day queries) every record is pinned to
// that day, overriding data-derived dates; this avoids spurious date splits
// from timezone skew near midnight at the cost of losing true cross-midnight
// attribution.
func Normalize(orders []entity.Order, forceDate string, log logrus.FieldLogger) []PaymentRecord {
	var records []PaymentRecord
	for i := range orders {
		order := &orders[i]
		for j := range order.Checks {
			check := &order.Checks[j]
			for k := range check.Payments {
				payment := &check.Payments[k]
				date := forceDate
				if date == "" {
					date = ResolvePaymentDate(order, payment)
				}
				if date == "" {
					log.WithFields(logrus.Fields{
						"order":   order.GUID,
						"payment": payment.GUID,
					}).Warn("could not determine business date, dropping payment record")
					continue
				}
				records = append(records, PaymentRecord{
					Date:    date,
					Order:   order,
					Check:   check,
					Payment: payment,
				})
			}
		}
	}
	return records
}

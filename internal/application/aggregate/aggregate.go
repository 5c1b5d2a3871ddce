package aggregate

import (
	"github.com/sirupsen/logrus"

	"github.com/fynchlabs/toast-insights/internal/domain/entity"
	"github.com/fynchlabs/toast-insights/pkg/money"
)

// Totals is the accumulated output of one aggregation pass. All maps are
// keyed by YYYY-MM-DD date and, where nested, by server GUID.
type Totals struct {
	TipsByDate          map[string]money.Amount
	SalesByServerByDate map[string]map[string]money.Amount
	TipsByServerByDate  map[string]map[string]money.Amount
	TaxByServerByDate   map[string]map[string]money.Amount

	OrdersProcessed   int
	PaymentsProcessed int
	OrdersWithTips    int
}

// NewTotals returns an empty accumulator.
func NewTotals() *Totals {
	return &Totals{
		TipsByDate:          make(map[string]money.Amount),
		SalesByServerByDate: make(map[string]map[string]money.Amount),
		TipsByServerByDate:  make(map[string]map[string]money.Amount),
		TaxByServerByDate:   make(map[string]map[string]money.Amount),
	}
}

func addNested(m map[string]map[string]money.Amount, date, guid string, amt money.Amount) {
	inner, ok := m[date]
	if !ok {
		inner = make(map[string]money.Amount)
		m[date] = inner
	}
	inner[guid] = inner[guid].Add(amt)
}

// ServerAmount looks up a per-server-per-date amount, zero when absent.
func ServerAmount(m map[string]map[string]money.Amount, date, guid string) money.Amount {
	if inner, ok := m[date]; ok {
		return inner[guid]
	}
	return money.Zero
}

// Aggregate runs the single-pass reduction over a fetched order batch.
//
// Per payment: voided and denied payments are skipped entirely; tips
// accumulate by date and, when a server is assigned, by server; payment
// amounts accumulate by server. Per check: tax is back-derived as
// totalAmount - amount - tips and attributed entirely to the first server
// seen in the check's payment list, even on split checks. That first-server
// attribution mirrors the upstream reporting pipeline; splitting it
// proportionally is pending product-owner review.
//
// A forceDate pins every record to one day (see Normalize). Malformed
// records are logged and skipped; the batch never aborts.
func Aggregate(orders []entity.Order, forceDate string, log logrus.FieldLogger) *Totals {
	t := NewTotals()
	t.Accumulate(orders, forceDate, log)
	return t
}

// Accumulate folds one fetched batch into the running totals. The batch is
// first flattened by Normalize; records arrive grouped per order and check,
// so check-level tax derivation flushes on group boundaries.
func (t *Totals) Accumulate(orders []entity.Order, forceDate string, log logrus.FieldLogger) {
	t.OrdersProcessed += len(orders)
	for i := range orders {
		for j := range orders[i].Checks {
			t.PaymentsProcessed += len(orders[i].Checks[j].Payments)
		}
	}

	var (
		curOrder    *entity.Order
		curCheck    *entity.Check
		orderTipped bool
		checkTips   money.Amount
		firstServer string
		firstDate   string
	)

	// Back-derive tax from the check invariant
	// totalAmount == amount + tax + tips.
	flushCheck := func() {
		if curCheck == nil {
			return
		}
		tax := money.FromFloat(curCheck.TotalAmount).
			Sub(money.FromFloat(curCheck.Amount)).
			Sub(checkTips)
		if firstServer != "" && tax.IsPositive() {
			addNested(t.TaxByServerByDate, firstDate, firstServer, tax)
		}
	}
	flushOrder := func() {
		flushCheck()
		if curOrder != nil && orderTipped {
			t.OrdersWithTips++
		}
	}

	for _, rec := range Normalize(orders, forceDate, log) {
		if rec.Order != curOrder {
			flushOrder()
			curOrder, orderTipped = rec.Order, false
			curCheck = nil
		}
		if rec.Check != curCheck {
			flushCheck()
			curCheck = rec.Check
			checkTips, firstServer, firstDate = money.Zero, "", ""
		}

		payment := rec.Payment
		if payment.Excluded() {
			continue
		}

		tip := money.FromFloat(payment.TipAmount)
		checkTips = checkTips.Add(tip)

		guid := payment.ServerGUID()
		if guid != "" && firstServer == "" {
			firstServer = guid
			firstDate = rec.Date
		}

		if tip.IsPositive() {
			t.TipsByDate[rec.Date] = t.TipsByDate[rec.Date].Add(tip)
			orderTipped = true
			if guid != "" {
				addNested(t.TipsByServerByDate, rec.Date, guid, tip)
			}
		}

		if amount := money.FromFloat(payment.Amount); guid != "" && amount.IsPositive() {
			addNested(t.SalesByServerByDate, rec.Date, guid, amount)
		}
	}
	flushOrder()
}

package aggregate

import (
	"github.com/fynchlabs/toast-insights/internal/domain/entity"
	"github.com/fynchlabs/toast-insights/internal/domain/enum"
	"github.com/fynchlabs/toast-insights/pkg/money"
)

// SelectionDiscount computes the discount amount for one line item. Applied
// discounts that are not voided are summed; when the selection has no
// applied discounts, or only voided ones, the discount is derived from the
// pre-discount/post-discount price difference.
func SelectionDiscount(sel *entity.Selection) money.Amount {
	discount := money.Zero
	applied := false
	for _, d := range sel.AppliedDiscounts {
		if d.ProcessingState == enum.DiscountStateVoid {
			continue
		}
		applied = true
		discount = discount.Add(money.FromFloat(d.DiscountAmount))
	}
	if !applied {
		return money.FromFloat(sel.PreDiscountPrice).Sub(money.FromFloat(sel.Price))
	}
	return discount
}

// SelectionNetTotal is the line item's total after its discount.
func SelectionNetTotal(sel *entity.Selection) money.Amount {
	return money.FromFloat(sel.PreDiscountPrice).Sub(SelectionDiscount(sel))
}

// CheckSubtotal sums pre-discount prices of the check's non-voided,
// non-gift-card selections. It is the denominator for proportional
// service-charge attribution.
func CheckSubtotal(check *entity.Check, isGiftCard func(string) bool) money.Amount {
	subtotal := money.Zero
	for i := range check.Selections {
		sel := &check.Selections[i]
		if sel.Voided || isGiftCard(sel.DisplayName) {
			continue
		}
		subtotal = subtotal.Add(money.FromFloat(sel.PreDiscountPrice))
	}
	return subtotal
}

// NonGratuityCharges sums the check's non-gratuity service charges.
func NonGratuityCharges(check *entity.Check) money.Amount {
	total := money.Zero
	for _, sc := range check.AppliedServiceCharges {
		if sc.Gratuity {
			continue
		}
		total = total.Add(money.FromFloatPtr(sc.ChargeAmount))
	}
	return total
}

// ProportionalShare apportions a charge to a selection by its share of the
// check subtotal. A zero subtotal yields zero: charges stay unattributed
// rather than dividing by zero.
func ProportionalShare(charge, selectionPrice, checkSubtotal money.Amount) money.Amount {
	return charge.Mul(money.Ratio(selectionPrice, checkSubtotal))
}

// DistributeExact splits total across weights so the shares sum exactly to
// total: each share is truncated to cents and the leftover cents go to the
// last weighted entry. Zero weights (or an all-zero weight vector) receive
// nothing.
func DistributeExact(total money.Amount, weights []money.Amount) []money.Amount {
	shares := make([]money.Amount, len(weights))
	sum := money.Zero
	for _, w := range weights {
		sum = sum.Add(w)
	}
	if sum.IsZero() {
		for i := range shares {
			shares[i] = money.Zero
		}
		return shares
	}

	distributed := money.Zero
	last := -1
	for i, w := range weights {
		share := money.Truncate2(ProportionalShare(total, w, sum))
		shares[i] = share
		distributed = distributed.Add(share)
		if !w.IsZero() {
			last = i
		}
	}
	if remainder := total.Sub(distributed); !remainder.IsZero() && last >= 0 {
		shares[last] = shares[last].Add(remainder)
	}
	return shares
}

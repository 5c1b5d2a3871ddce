package aggregate

import (
	"github.com/fynchlabs/toast-insights/internal/config"
	"github.com/fynchlabs/toast-insights/internal/domain/entity"
	"github.com/fynchlabs/toast-insights/internal/domain/enum"
	"github.com/fynchlabs/toast-insights/pkg/money"
)

// ItemSummary aggregates one menu item across the batch.
type ItemSummary struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	RawSales     float64 `json:"raw_sales"`
	NetSales     float64 `json:"net_sales"`
	UnitPrice    float64 `json:"unit_price"`
	Category     string  `json:"category"`
	CategoryGUID string  `json:"category_guid"`
	Discounts    float64 `json:"discounts"`
}

// CategoryReport is the category sales summary for one fetched batch.
// CategoryDiscounts carries an extra "Total" key; TotalSales carries an
// extra "total" key summing every category except Other.
type CategoryReport struct {
	Items                          []ItemSummary      `json:"items"`
	NetSales                       map[string]float64 `json:"net_sales"`
	GrossSales                     map[string]float64 `json:"gross_sales"`
	CategoryCounts                 map[string]float64 `json:"category_counts"`
	CategoryDiscounts              map[string]float64 `json:"category_discounts"`
	VoidedItemsCount               int                `json:"voided_items_count"`
	GiftCardItemsCount             int                `json:"gift_card_items_count"`
	NonGratServiceCharges          float64            `json:"nonGratServiceCharges"`
	NonGratServiceChargeAggregates map[string]float64 `json:"nonGratServiceChargesAggregates"`
	TotalSales                     map[string]float64 `json:"total_sales"`
	LocationIndex                  int                `json:"locationIndex"`
}

type itemAccum struct {
	quantity     float64
	rawSales     money.Amount
	netSales     money.Amount
	discounts    money.Amount
	unitPrice    money.Amount
	category     enum.Category
	categoryGUID string
}

// SummarizeCategories aggregates the batch into per-item and per-category
// totals: gross (pre-discount), net (post-discount), discounts, item counts,
// and non-gratuity service charges split exactly across each check's line
// items by pre-discount share. Voided selections and gift-card products are
// excluded from every total; category amounts are rounded to cents only at
// the end.
func SummarizeCategories(orders []entity.Order, loc config.LocationConfig) *CategoryReport {
	keys := loc.CategoryKeys()
	netTotals := newCategoryAccum(keys)
	grossTotals := newCategoryAccum(keys)
	discountTotals := newCategoryAccum(keys)
	chargeTotals := newCategoryAccum(keys)
	counts := make(map[enum.Category]float64, len(keys))
	for _, k := range keys {
		counts[k] = 0
	}

	items := make(map[string]*itemAccum)
	var itemOrder []string
	voidedCount := 0
	giftCardCount := 0
	totalCharges := money.Zero

	for i := range orders {
		order := &orders[i]

		for j := range order.Checks {
			check := &order.Checks[j]
			charge := NonGratuityCharges(check)
			totalCharges = totalCharges.Add(charge)

			// Charges split exactly over the check's eligible items;
			// with a zero subtotal they stay unattributed.
			weights := make([]money.Amount, len(check.Selections))
			if CheckSubtotal(check, loc.IsGiftCard).IsPositive() {
				for k := range check.Selections {
					sel := &check.Selections[k]
					if sel.Voided || loc.IsGiftCard(sel.DisplayName) {
						continue
					}
					weights[k] = money.FromFloat(sel.PreDiscountPrice)
				}
			}
			shares := DistributeExact(charge, weights)

			for k := range check.Selections {
				sel := &check.Selections[k]
				if sel.Voided {
					voidedCount++
					continue
				}
				if loc.IsGiftCard(sel.DisplayName) {
					giftCardCount++
					continue
				}

				name := sel.DisplayName
				if name == "" {
					name = "Unknown Item"
				}
				category := loc.CategoryFor(sel.SalesCategoryGUID(), name, order.Source)

				raw := money.FromFloat(sel.PreDiscountPrice)
				discount := SelectionDiscount(sel)
				net := SelectionNetTotal(sel)

				if discount.IsPositive() {
					discountTotals[category] = discountTotals[category].Add(discount)
				}
				grossTotals[category] = grossTotals[category].Add(raw)
				netTotals[category] = netTotals[category].Add(net)
				counts[category] += sel.Quantity
				chargeTotals[category] = chargeTotals[category].Add(shares[k])

				acc, ok := items[name]
				if !ok {
					acc = &itemAccum{
						unitPrice:    money.FromFloat(sel.ReceiptLinePrice),
						category:     category,
						categoryGUID: sel.SalesCategoryGUID(),
					}
					items[name] = acc
					itemOrder = append(itemOrder, name)
				}
				acc.quantity += sel.Quantity
				acc.rawSales = acc.rawSales.Add(raw)
				acc.netSales = acc.netSales.Add(net)
				acc.discounts = acc.discounts.Add(discount)
			}
		}
	}

	report := &CategoryReport{
		Items:                          make([]ItemSummary, 0, len(itemOrder)),
		NetSales:                       renderCategories(netTotals, keys),
		GrossSales:                     renderCategories(grossTotals, keys),
		CategoryCounts:                 make(map[string]float64, len(keys)),
		CategoryDiscounts:              renderCategories(discountTotals, keys),
		VoidedItemsCount:               voidedCount,
		GiftCardItemsCount:             giftCardCount,
		NonGratServiceCharges:          money.Float(money.Round2(totalCharges)),
		NonGratServiceChargeAggregates: renderCategories(chargeTotals, keys),
		TotalSales:                     make(map[string]float64, len(keys)+1),
		LocationIndex:                  loc.Index,
	}

	for _, name := range itemOrder {
		acc := items[name]
		report.Items = append(report.Items, ItemSummary{
			Name:         name,
			Quantity:     acc.quantity,
			RawSales:     money.Float(money.Round2(acc.rawSales)),
			NetSales:     money.Float(money.Round2(acc.netSales)),
			UnitPrice:    money.Float(money.Round2(acc.unitPrice)),
			Category:     acc.category.String(),
			CategoryGUID: acc.categoryGUID,
			Discounts:    money.Float(money.Round2(acc.discounts)),
		})
	}

	totalDiscounts := money.Zero
	grandTotal := money.Zero
	for _, k := range keys {
		report.CategoryCounts[k.String()] = counts[k]
		totalDiscounts = totalDiscounts.Add(discountTotals[k])

		// total_sales reconstructs pre-discount revenue per category:
		// net + discounts.
		sales := netTotals[k].Add(discountTotals[k])
		report.TotalSales[k.String()] = money.Float(money.Round2(sales))
		if k != enum.CategoryOther {
			grandTotal = grandTotal.Add(sales)
		}
	}
	report.CategoryDiscounts["Total"] = money.Float(money.Round2(totalDiscounts))
	report.TotalSales["total"] = money.Float(money.Round2(grandTotal))

	return report
}

func newCategoryAccum(keys []enum.Category) map[enum.Category]money.Amount {
	m := make(map[enum.Category]money.Amount, len(keys))
	for _, k := range keys {
		m[k] = money.Zero
	}
	return m
}

func renderCategories(m map[enum.Category]money.Amount, keys []enum.Category) map[string]float64 {
	out := make(map[string]float64, len(keys))
	for _, k := range keys {
		out[k.String()] = money.Float(money.Round2(m[k]))
	}
	return out
}

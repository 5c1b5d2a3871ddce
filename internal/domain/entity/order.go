// Package entity holds read-only projections of the upstream point-of-sale
// API payloads. Entities are decoded from one fetch call's response and are
// never mutated by this system.
package entity

import "github.com/fynchlabs/toast-insights/internal/domain/enum"

// ExternalRef is a GUID reference to another upstream entity.
type ExternalRef struct {
	GUID string `json:"guid"`
}

// Order is one point-of-sale order with its nested checks.
type Order struct {
	GUID          string           `json:"guid"`
	DisplayNumber string           `json:"displayNumber,omitempty"`
	Source        enum.OrderSource `json:"source,omitempty"`
	Voided        bool             `json:"voided,omitempty"`
	OpenedDate    string           `json:"openedDate,omitempty"`
	PaidDate      string           `json:"paidDate,omitempty"`
	Checks        []Check          `json:"checks,omitempty"`
}

// Check is a sub-bill within an order, the unit payments and tips attach to.
// Amount is the post-discount pre-tax subtotal; TotalAmount includes tax and
// tips.
type Check struct {
	GUID                  string                 `json:"guid"`
	Amount                float64                `json:"amount,omitempty"`
	TotalAmount           float64                `json:"totalAmount,omitempty"`
	Selections            []Selection            `json:"selections,omitempty"`
	Payments              []Payment              `json:"payments,omitempty"`
	AppliedServiceCharges []AppliedServiceCharge `json:"appliedServiceCharges,omitempty"`
}

// Selection is a line item on a check.
type Selection struct {
	GUID             string            `json:"guid"`
	DisplayName      string            `json:"displayName,omitempty"`
	Quantity         float64           `json:"quantity,omitempty"`
	PreDiscountPrice float64           `json:"preDiscountPrice,omitempty"`
	Price            float64           `json:"price,omitempty"`
	ReceiptLinePrice float64           `json:"receiptLinePrice,omitempty"`
	SalesCategory    *ExternalRef      `json:"salesCategory,omitempty"`
	Voided           bool              `json:"voided,omitempty"`
	AppliedDiscounts []AppliedDiscount `json:"appliedDiscounts,omitempty"`
}

// SalesCategoryGUID returns the selection's sales-category reference, or ""
// when the upstream record carries none.
func (s *Selection) SalesCategoryGUID() string {
	if s.SalesCategory == nil {
		return ""
	}
	return s.SalesCategory.GUID
}

// AppliedDiscount is a discount applied to a selection.
type AppliedDiscount struct {
	GUID            string                       `json:"guid,omitempty"`
	Name            string                       `json:"name,omitempty"`
	DiscountAmount  float64                      `json:"discountAmount,omitempty"`
	ProcessingState enum.DiscountProcessingState `json:"processingState,omitempty"`
}

// Payment is one payment against a check. A check may carry zero, one, or
// several payments, each potentially attributed to a different server and a
// different business date.
type Payment struct {
	GUID             string             `json:"guid"`
	Amount           float64            `json:"amount,omitempty"`
	TipAmount        float64            `json:"tipAmount,omitempty"`
	Server           *ExternalRef       `json:"server,omitempty"`
	PaidBusinessDate int                `json:"paidBusinessDate,omitempty"`
	PaidDate         string             `json:"paidDate,omitempty"`
	VoidInfo         *VoidInfo          `json:"voidInfo,omitempty"`
	PaymentStatus    enum.PaymentStatus `json:"paymentStatus,omitempty"`
	RefundStatus     string             `json:"refundStatus,omitempty"`
}

// Excluded reports whether the payment must be skipped entirely: voided
// payments and payments in a denied/cancelled status never contribute to any
// aggregate.
func (p *Payment) Excluded() bool {
	return p.VoidInfo != nil || p.PaymentStatus.Excluded()
}

// ServerGUID returns the payment's server reference, or "" when the payment
// has no assigned server.
func (p *Payment) ServerGUID() string {
	if p.Server == nil {
		return ""
	}
	return p.Server.GUID
}

// VoidInfo is present on a payment when it has been voided.
type VoidInfo struct {
	VoidUser *ExternalRef `json:"voidUser,omitempty"`
	VoidDate string       `json:"voidDate,omitempty"`
}

// AppliedServiceCharge is a mandatory fee attached to a check. Gratuity
// charges flow to staff and are excluded from the proportional distribution
// over line items. ChargeAmount is nullable upstream.
type AppliedServiceCharge struct {
	GUID         string   `json:"guid,omitempty"`
	Name         string   `json:"name,omitempty"`
	ChargeAmount *float64 `json:"chargeAmount,omitempty"`
	Gratuity     bool     `json:"gratuity,omitempty"`
}

package enum

// PaymentStatus is the upstream processing status of a payment.
type PaymentStatus string

const (
	PaymentStatusOpen       PaymentStatus = "OPEN"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusAuthorized PaymentStatus = "AUTHORIZED"
	PaymentStatusCaptured   PaymentStatus = "CAPTURED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusDenied     PaymentStatus = "DENIED"
	PaymentStatusVoided     PaymentStatus = "VOIDED"
)

// Excluded reports whether a payment in this status must be left out of all
// financial aggregation.
func (s PaymentStatus) Excluded() bool {
	switch s {
	case PaymentStatusDenied, PaymentStatusVoided, PaymentStatusCancelled:
		return true
	}
	return false
}

// DiscountProcessingState is the processing state of an applied discount.
type DiscountProcessingState string

const (
	DiscountStateApplied DiscountProcessingState = "APPLIED"
	DiscountStateVoid    DiscountProcessingState = "VOID"
)

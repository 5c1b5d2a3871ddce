package enum

// OrderSource identifies the channel an order was submitted through.
type OrderSource string

const (
	OrderSourceInStore OrderSource = "In Store"
	OrderSourceOnline  OrderSource = "Online"
	// OrderSourceAPI marks orders submitted through the partner API. These
	// are known to arrive without sales-category metadata at some locations.
	OrderSourceAPI OrderSource = "API"
)

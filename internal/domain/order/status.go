package order

// Status is the server-owned order lifecycle status. The server enforces the
// actual transition rules; the client only derives display and
// action-availability decisions from it.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every valid status, in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// Valid reports whether s is one of the closed set of statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Severity maps the status to the display severity the UI renders it with.
func (s Status) Severity() string {
	switch s {
	case StatusPending:
		return "warning"
	case StatusProcessing:
		return "info"
	case StatusShipped, StatusDelivered:
		return "success"
	case StatusCancelled:
		return "error"
	default:
		return "default"
	}
}

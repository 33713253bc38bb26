package shop

type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusShipped: true, StatusCompleted: true, StatusCanceled: true},
	StatusShipped:   {StatusCompleted: true},
	StatusCompleted: {},
	StatusCanceled:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// CanCancel gates the one transition exposed over HTTP: allowed whenever
// the order has neither shipped nor completed. Re-canceling a canceled
// order is allowed and leaves it untouched.
func CanCancel(from Status) bool {
	return from != StatusShipped && from != StatusCompleted
}

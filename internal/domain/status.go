package domain

// List of possible rental statuses
const (
	StatusProcessing RentalStatus = "processing"
	StatusRented     RentalStatus = "rented"
	StatusRejected   RentalStatus = "rejected"
	StatusDone       RentalStatus = "done"
)

// List of allowed statuses
var allowedStatuses = [...]RentalStatus{
	StatusProcessing, StatusRented, StatusRejected, StatusDone,
}

// transitions describes the rental state machine. REJECTED and DONE are
// terminal.
var transitions = map[RentalStatus][]RentalStatus{
	StatusProcessing: {StatusRented, StatusRejected},
	StatusRented:     {StatusDone},
}

// Valid checks if the RentalStatus is valid
func (s RentalStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is legal from s.
func (s RentalStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether the state machine permits moving from s to
// next.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, v := range transitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

package entity

type VehicleStatus string

const (
	StatusAwaitingDropoff VehicleStatus = "awaiting_dropoff"
	StatusCheckedIn       VehicleStatus = "checked_in"
	StatusCheckedOut      VehicleStatus = "checked_out"
	StatusCancelled       VehicleStatus = "cancelled"
)

// allowedTransitions holds the vehicle lifecycle as a directed graph.
// checked_out and cancelled are terminal.
var allowedTransitions = map[VehicleStatus][]VehicleStatus{
	StatusAwaitingDropoff: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:       {StatusCheckedOut, StatusCancelled},
	StatusCheckedOut:      {},
	StatusCancelled:       {},
}

func (s VehicleStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Terminal reports whether the status locks the record against any
// further status or content mutation.
func (s VehicleStatus) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// CanTransition reports whether from -> to is an allowed lifecycle step.
func CanTransition(from, to VehicleStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

package models

// AttendeeStatus is the lifecycle state of a registration.
type AttendeeStatus string

const (
	StatusRegistered AttendeeStatus = "registered"
	StatusConfirmed  AttendeeStatus = "confirmed"
	StatusAttended   AttendeeStatus = "attended"
	StatusCancelled  AttendeeStatus = "cancelled"
	StatusNoShow     AttendeeStatus = "no_show"
)

// transitions lists the reachable next states per current state.
// attended, cancelled and no_show are terminal.
var transitions = map[AttendeeStatus][]AttendeeStatus{
	StatusRegistered: {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusAttended, StatusCancelled, StatusNoShow},
}

// Valid reports whether s is one of the known statuses.
func (s AttendeeStatus) Valid() bool {
	switch s {
	case StatusRegistered, StatusConfirmed, StatusAttended, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s AttendeeStatus) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// CanTransitionTo reports whether the state machine permits moving to next.
func (s AttendeeStatus) CanTransitionTo(next AttendeeStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

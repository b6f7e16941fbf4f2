package status

import "fmt"

// State is the lifecycle position of a sort job.
type State int32

const (
	Idle State = iota
	Producing
	Merging
	Cleaning
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Producing:
		return "Producing"
	case Merging:
		return "Merging"
	case Cleaning:
		return "Cleaning"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Terminal reports whether no further transition may leave s.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

var transitions = map[State][]State{
	Idle:      {Producing},
	Producing: {Merging, Cleaning},
	Merging:   {Cleaning},
	Cleaning:  {Done, Failed},
}

// CanTransition reports whether from -> to is a legal step.
// Every path into a terminal state passes through Cleaning.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

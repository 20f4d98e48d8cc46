package resolver

// State is a step of the resolution state machine:
//
//	Searching -> AutoResolved -> Resolved
//	Searching -> AwaitingConfirmation -> Searching | Resolved
type State int

const (
	StateSearching State = iota
	StateAutoResolved
	StateAwaitingConfirmation
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateAutoResolved:
		return "auto_resolved"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateResolved:
		return "resolved"
	}
	return "unknown"
}

package engine

func NewState(total int) State {
	if total < 0 {
		total = 0
	}
	return State{Index: 0, Revealed: false, Total: total}
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// DerivePhase treats an index at or beyond total as complete, so an empty
// sequence starts out complete.
func DerivePhase(index, total int, revealed bool) Phase {
	if index >= total {
		return PhaseComplete
	} else if revealed {
		return PhaseRevealed
	} else {
		return PhaseSealed
	}
}

// Progress is the fraction of votes already passed, clamped to 1. An empty
// sequence reports 1 because it is already complete.
func Progress(s State) float64 {
	if s.Total <= 0 {
		return 1.0
	}
	return min(float64(s.Index)/float64(s.Total), 1.0)
}

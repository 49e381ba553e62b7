package engine

import "errors"

var ErrWrongPhase = errors.New("command not allowed in current phase")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Phase string

const (
	PhaseSealed   Phase = "sealed"
	PhaseRevealed Phase = "revealed"
	PhaseComplete Phase = "complete"
)

// State is the position of a presentation session inside the vote
// sequence. Total is fixed when the session starts.
type State struct {
	Index    int
	Revealed bool
	Total    int
}

func (s State) Phase() Phase {
	return DerivePhase(s.Index, s.Total, s.Revealed)
}

type CommandType string

const (
	CmdReveal  CommandType = "Reveal"
	CmdAdvance CommandType = "Advance"
	CmdReset   CommandType = "Reset"
)

/*
	CmdReveal  -> EvtVoteRevealed
	CmdAdvance -> EvtVoteAdvanced -> EvtCountCompleted (only when the advance lands past the last vote)
	CmdReset   -> EvtSessionReset
*/

type Command struct {
	Type CommandType
}

type EventType string

const (
	EvtVoteRevealed   EventType = "VoteRevealed"
	EvtVoteAdvanced   EventType = "VoteAdvanced"
	EvtCountCompleted EventType = "CountCompleted"
	EvtSessionReset   EventType = "SessionReset"
)

type Event struct {
	Type  EventType
	Index int
}

// Apply validates cmd against the current phase and returns the events it
// produced together with the next state. On error the input state is
// returned unchanged.
func Apply(s State, cmd Command) ([]Event, State, error) {
	phase := s.Phase()

	switch cmd.Type {
	case CmdReveal, CmdAdvance, CmdReset:
	default:
		return nil, s, ErrUnsupportedCommand
	}

	if !allowed(phase, cmd.Type) {
		return nil, s, ErrWrongPhase
	}

	newState := s

	switch cmd.Type {
	case CmdReveal:
		newState.Revealed = true
		return []Event{{Type: EvtVoteRevealed, Index: s.Index}}, newState, nil

	case CmdAdvance:
		newState.Index++
		newState.Revealed = false

		events := []Event{{Type: EvtVoteAdvanced, Index: newState.Index}}
		if newState.Index >= newState.Total {
			events = append(events, Event{Type: EvtCountCompleted, Index: newState.Index})
		}
		return events, newState, nil

	default: // CmdReset
		newState = NewState(s.Total)
		return []Event{{Type: EvtSessionReset}}, newState, nil
	}
}

// Reduce rebuilds a session state from its event history.
func Reduce(total int, events []Event) State {
	s := NewState(total)
	for _, event := range events {
		switch event.Type {
		case EvtVoteRevealed:
			s.Revealed = true
		case EvtVoteAdvanced:
			s.Index = min(s.Index+1, s.Total)
			s.Revealed = false
		case EvtSessionReset:
			s = NewState(total)
		}
	}
	return s
}

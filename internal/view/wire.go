package view

import (
	"github.com/DoyleJ11/vote-reveal/internal/engine"
	"github.com/DoyleJ11/vote-reveal/pkg/types"
)

// Wire converts s into the message form sent to live displays.
func Wire(s Screen, state engine.State) types.Snapshot {
	out := types.Snapshot{
		Kind:      string(s.Kind),
		Index:     state.Index,
		Total:     state.Total,
		Number:    s.Number,
		Heading:   s.Heading,
		Timestamp: s.Timestamp,
		Candidate: s.Candidate,
		Banner:    s.Banner,
		Error:     s.Error,
	}
	if s.ShowProgress {
		p := s.Progress
		out.Progress = &p
	}
	for _, r := range s.Tally {
		out.Tally = append(out.Tally, types.TallyEntry{Candidate: r.Candidate, Count: r.Count})
	}
	if s.Control != nil {
		out.Control = string(s.Control.Command)
	}
	return out
}

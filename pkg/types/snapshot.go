package types

// Snapshot is the screen a display should show, independent of how it is
// painted.
//
//	kind:      "sealed" | "revealed" | "complete" | "halted"
//	index:     0-based position in the vote sequence
//	total:     number of votes
//	progress:  0..1, absent on a halted screen
//	candidate: only on a revealed screen
//	tally:     only on a complete screen, highest count first
//	control:   the one command the display may send next
type Snapshot struct {
	Kind      string       `json:"kind"`
	Index     int          `json:"index"`
	Total     int          `json:"total"`
	Progress  *float64     `json:"progress,omitempty"`
	Number    int          `json:"number,omitempty"`
	Heading   string       `json:"heading,omitempty"`
	Timestamp string       `json:"timestamp,omitempty"`
	Candidate string       `json:"candidate,omitempty"`
	Banner    string       `json:"banner,omitempty"`
	Tally     []TallyEntry `json:"tally,omitempty"`
	Control   string       `json:"control,omitempty"`
	Error     string       `json:"error,omitempty"`
}

type TallyEntry struct {
	Candidate string `json:"candidate"`
	Count     int    `json:"count"`
}

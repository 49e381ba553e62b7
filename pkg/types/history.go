package types

// History is the event log of one presentation session, oldest first,
// with the position it replays to.
type History struct {
	Version  int            `json:"version"`
	Index    int            `json:"index"`
	Revealed bool           `json:"revealed"`
	Total    int            `json:"total"`
	Events   []HistoryEvent `json:"events"`
}

type HistoryEvent struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

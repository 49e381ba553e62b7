// Package types holds the messages exchanged with a live display over the
// websocket.
package types

// Client -> Server
//
//	{"type": "Reveal"}   open the sealed vote
//	{"type": "Advance"}  move to the next vote
//	{"type": "Reset"}    start the count over (only after completion)
type ClientMessage struct {
	Type string `json:"type"`
}

// Server -> Client
//
//	StateSnapshot: version, screen, html (the stage fragment to swap in)
//	Error:         error
type ServerMessage struct {
	Type    string    `json:"type"` // "StateSnapshot" | "Error"
	Version int       `json:"version,omitempty"`
	Screen  *Snapshot `json:"screen,omitempty"`
	HTML    string    `json:"html,omitempty"`
	Error   string    `json:"error,omitempty"`
}

const (
	MsgStateSnapshot = "StateSnapshot"
	MsgError         = "Error"
)

// Package view turns a presentation state and the loaded vote sequence into
// a description of the screen to draw. Render has no side effects; the web
// and terminal front ends only differ in how they paint a Screen.
package view

import (
	"time"

	"github.com/ncruces/go-strftime"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/DoyleJ11/vote-reveal/internal/engine"
	"github.com/DoyleJ11/vote-reveal/internal/votes"
)

const DefaultTimestampFormat = "%d %b %Y • %H:%M:%S WIB"

type Kind string

const (
	KindSealed   Kind = "sealed"
	KindRevealed Kind = "revealed"
	KindComplete Kind = "complete"
	KindHalted   Kind = "halted"
)

type Control struct {
	Command engine.CommandType `json:"command"`
	Action  string             `json:"action"`
	Label   string             `json:"label"`
	// Busy is shown while the command is in flight.
	Busy string `json:"busy,omitempty"`
}

type Row struct {
	Candidate string `json:"candidate"`
	Count     int    `json:"count"`
	Display   string `json:"display"`
}

type Screen struct {
	Kind        Kind    `json:"kind"`
	Title       string  `json:"title"`
	Background  string  `json:"-"`
	HeaderImage string  `json:"-"`
	Colors      Colors  `json:"-"`
	Progress    float64 `json:"progress"`
	// ShowProgress is false only on a halted screen.
	ShowProgress bool `json:"show_progress"`

	Number        int       `json:"number,omitempty"`
	Heading       string    `json:"heading,omitempty"`
	ReceivedLabel string    `json:"received_label,omitempty"`
	Timestamp     string    `json:"timestamp,omitempty"`
	SealedLabel   string    `json:"sealed_label,omitempty"`
	ChoiceLabel   string    `json:"choice_label,omitempty"`
	Candidate     string    `json:"candidate,omitempty"`
	Banner        string    `json:"banner,omitempty"`
	TallyHeaders  [2]string `json:"tally_headers"`
	Tally         []Row     `json:"tally,omitempty"`
	Control       *Control  `json:"control,omitempty"`
	Error         string    `json:"error,omitempty"`
}

type Options struct {
	Title           string
	Labels          Labels
	Location        *time.Location
	TimestampFormat string
	Locale          language.Tag
	Background      string
	HeaderImage     string
	Colors          Colors
}

func (o Options) withDefaults() Options {
	if o.Labels == (Labels{}) {
		o.Labels = Indonesian
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.TimestampFormat == "" {
		o.TimestampFormat = DefaultTimestampFormat
	}
	o.Colors = o.Colors.Merge(DefaultColors)
	return o
}

// Render describes the screen for state over records. records must be the
// sequence the session was started with.
func Render(state engine.State, records []votes.Record, opts Options) Screen {
	opts = opts.withDefaults()

	s := Screen{
		Title:        opts.Title,
		Background:   opts.Background,
		HeaderImage:  opts.HeaderImage,
		Colors:       opts.Colors,
		Progress:     engine.Progress(state),
		ShowProgress: true,
	}

	phase := state.Phase()
	if phase == engine.PhaseComplete || state.Index >= len(records) {
		return renderComplete(s, records, opts)
	}

	rec := records[state.Index]
	s.Number = state.Index + 1
	s.Heading = opts.Labels.heading(s.Number)
	s.ReceivedLabel = opts.Labels.Received
	s.Timestamp = FormatTimestamp(rec.Timestamp, opts.TimestampFormat, opts.Location)

	if phase == engine.PhaseRevealed {
		s.Kind = KindRevealed
		s.ChoiceLabel = opts.Labels.Choice
		s.Candidate = string(rec.Candidate)
		s.Control = &Control{Command: engine.CmdAdvance, Action: "advance", Label: opts.Labels.Advance}
		return s
	}

	s.Kind = KindSealed
	s.SealedLabel = opts.Labels.Sealed
	s.Control = &Control{Command: engine.CmdReveal, Action: "reveal", Label: opts.Labels.Reveal, Busy: opts.Labels.Unlocking}
	return s
}

func renderComplete(s Screen, records []votes.Record, opts Options) Screen {
	s.Kind = KindComplete
	s.Progress = 1.0
	s.Banner = opts.Labels.Complete
	s.TallyHeaders = [2]string{opts.Labels.CandidateColumn, opts.Labels.CountColumn}

	p := message.NewPrinter(opts.Locale)
	for _, e := range votes.Tally(records) {
		s.Tally = append(s.Tally, Row{
			Candidate: string(e.Candidate),
			Count:     e.Count,
			Display:   p.Sprintf("%d", e.Count),
		})
	}
	s.Control = &Control{Command: engine.CmdReset, Action: "reset", Label: opts.Labels.Reset}
	return s
}

// Halted is the screen for a session that cannot start, such as when the
// vote file is missing: the message only, no progress bar and no controls.
func Halted(message string, opts Options) Screen {
	opts = opts.withDefaults()
	return Screen{
		Kind:        KindHalted,
		Title:       opts.Title,
		Background:  opts.Background,
		HeaderImage: opts.HeaderImage,
		Colors:      opts.Colors,
		Error:       message,
	}
}

// MissingData is the halted screen for an absent vote file.
func MissingData(dataFile string, opts Options) Screen {
	opts = opts.withDefaults()
	return Halted(opts.Labels.MissingDataText(dataFile), opts)
}

func FormatTimestamp(t time.Time, layout string, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return strftime.Format(layout, t)
}

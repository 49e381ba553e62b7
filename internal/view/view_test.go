package view

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/vote-reveal/internal/engine"
	"github.com/DoyleJ11/vote-reveal/internal/votes"
)

var wib = time.FixedZone("WIB", 7*60*60)

func sampleRecords() []votes.Record {
	return []votes.Record{
		{Candidate: "B", Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, wib)},
		{Candidate: "A", Timestamp: time.Date(2025, 1, 1, 0, 0, 1, 0, wib)},
	}
}

func testOptions() Options {
	return Options{Title: "Live Count", Labels: English, Location: wib}
}

func TestRenderSealed(t *testing.T) {
	s := Render(engine.NewState(2), sampleRecords(), testOptions())

	assert.Equal(t, KindSealed, s.Kind)
	assert.Equal(t, 1, s.Number)
	assert.Equal(t, "ONLINE VOTE #1", s.Heading)
	assert.Equal(t, "01 Jan 2025 • 00:00:00 WIB", s.Timestamp)
	assert.Empty(t, s.Candidate, "sealed screen must not leak the candidate")
	assert.True(t, s.ShowProgress)
	assert.Equal(t, 0.0, s.Progress)
	require.NotNil(t, s.Control)
	assert.Equal(t, engine.CmdReveal, s.Control.Command)
}

func TestRenderRevealed(t *testing.T) {
	state := engine.State{Index: 1, Revealed: true, Total: 2}
	s := Render(state, sampleRecords(), testOptions())

	assert.Equal(t, KindRevealed, s.Kind)
	assert.Equal(t, 2, s.Number)
	assert.Equal(t, "A", s.Candidate)
	assert.Equal(t, 0.5, s.Progress)
	require.NotNil(t, s.Control)
	assert.Equal(t, engine.CmdAdvance, s.Control.Command)
}

func TestRenderComplete(t *testing.T) {
	state := engine.State{Index: 2, Total: 2}
	s := Render(state, sampleRecords(), testOptions())

	assert.Equal(t, KindComplete, s.Kind)
	assert.Equal(t, 1.0, s.Progress)
	assert.Equal(t, "✅ DONE!", s.Banner)
	assert.Equal(t, [2]string{"Candidate", "Votes"}, s.TallyHeaders)
	assert.Equal(t, []Row{
		{Candidate: "B", Count: 1, Display: "1"},
		{Candidate: "A", Count: 1, Display: "1"},
	}, s.Tally)
	require.NotNil(t, s.Control)
	assert.Equal(t, engine.CmdReset, s.Control.Command)
}

func TestRenderEmptySequence(t *testing.T) {
	s := Render(engine.NewState(0), nil, testOptions())

	assert.Equal(t, KindComplete, s.Kind)
	assert.Equal(t, 1.0, s.Progress)
	assert.Empty(t, s.Tally)
}

func TestRenderIsIdempotent(t *testing.T) {
	state := engine.State{Index: 0, Revealed: true, Total: 2}
	records := sampleRecords()

	first := Render(state, records, testOptions())
	second := Render(state, records, testOptions())
	assert.Equal(t, first, second)
	assert.Equal(t, engine.State{Index: 0, Revealed: true, Total: 2}, state)
}

func TestHalted(t *testing.T) {
	s := MissingData("votes.json", Options{})

	assert.Equal(t, KindHalted, s.Kind)
	assert.Equal(t, "File 'votes.json' tidak ditemukan!", s.Error)
	assert.False(t, s.ShowProgress)
	assert.Nil(t, s.Control)
}

func TestStageHTML(t *testing.T) {
	cases := []struct {
		name     string
		screen   Screen
		contains []string
		excludes []string
	}{
		{
			name:     "sealed",
			screen:   Render(engine.NewState(2), sampleRecords(), testOptions()),
			contains: []string{"ONLINE VOTE #1", "VOTE SEALED", `action="/actions/reveal"`, "<progress"},
			excludes: []string{"big-font"},
		},
		{
			name:     "revealed",
			screen:   Render(engine.State{Index: 0, Revealed: true, Total: 2}, sampleRecords(), testOptions()),
			contains: []string{`<div class="big-font">B</div>`, `action="/actions/advance"`},
		},
		{
			name:     "complete",
			screen:   Render(engine.State{Index: 2, Total: 2}, sampleRecords(), testOptions()),
			contains: []string{"<table>", "<td>A</td>", `action="/actions/reset"`},
		},
		{
			name:     "halted",
			screen:   MissingData("votes.json", testOptions()),
			contains: []string{"File &#39;votes.json&#39; not found!"},
			excludes: []string{"<progress", "<form", "<button"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Stage(&buf, tc.screen))
			out := buf.String()
			for _, want := range tc.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tc.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestPageEscapesCandidate(t *testing.T) {
	records := []votes.Record{{Candidate: "<script>x</script>", Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, wib)}}
	s := Render(engine.State{Index: 0, Revealed: true, Total: 1}, records, testOptions())

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, s))
	assert.NotContains(t, buf.String(), "<script>x</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;x&lt;/script&gt;")
}

func TestWire(t *testing.T) {
	state := engine.State{Index: 2, Total: 2}
	w := Wire(Render(state, sampleRecords(), testOptions()), state)

	assert.Equal(t, "complete", w.Kind)
	require.NotNil(t, w.Progress)
	assert.Equal(t, 1.0, *w.Progress)
	assert.Equal(t, "Reset", w.Control)
	assert.Len(t, w.Tally, 2)

	halted := Wire(MissingData("votes.json", testOptions()), engine.State{})
	assert.Nil(t, halted.Progress)
	assert.Empty(t, halted.Control)
}

func TestRenderFillsMissingColors(t *testing.T) {
	s := Render(engine.NewState(0), nil, Options{Colors: Colors{Accent: "#00ff88"}})
	assert.Equal(t, "#00ff88", s.Colors.Accent)
	assert.Equal(t, DefaultColors.ButtonEnd, s.Colors.ButtonEnd)

	assert.True(t, IsHexColor("#0E1117"))
	assert.True(t, IsHexColor("#fff"))
	assert.False(t, IsHexColor("#ggg"))
	assert.False(t, IsHexColor("red"))
	assert.False(t, IsHexColor("#12345"))
}

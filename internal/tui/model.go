// Package tui runs the reveal show in a terminal. It drives the same state
// machine and renderer as the web display and only paints differently.
package tui

import (
	"errors"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/DoyleJ11/vote-reveal/internal/engine"
	"github.com/DoyleJ11/vote-reveal/internal/view"
	"github.com/DoyleJ11/vote-reveal/internal/votes"
)

type Model struct {
	records []votes.Record
	state   engine.State
	opts    view.Options
	halted  *view.Screen

	keys     KeyMap
	theme    Theme
	progress progress.Model
	log      *zap.Logger

	width  int
	height int
}

// NewModel starts a session over records. loadErr is the error returned
// when loading them; dataFile names the file for the halted message.
func NewModel(records []votes.Record, loadErr error, dataFile string, opts view.Options, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	theme := ThemeFor(opts.Colors)
	m := Model{
		records: records,
		state:   engine.NewState(len(records)),
		opts:    opts,
		keys:    DefaultKeyMap,
		theme:   theme,
		log:     log,
		progress: progress.New(
			progress.WithGradient(theme.ButtonStart, theme.ButtonEnd),
			progress.WithoutPercentage(),
		),
	}

	if loadErr != nil {
		var screen view.Screen
		if errors.Is(loadErr, votes.ErrMissingDataFile) {
			screen = view.MissingData(filepath.Base(dataFile), opts)
		} else {
			screen = view.Halted(loadErr.Error(), opts)
		}
		m.halted = &screen
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) State() engine.State { return m.state }

// Screen is what View paints.
func (m Model) Screen() view.Screen {
	if m.halted != nil {
		return *m.halted
	}
	return view.Render(m.state, m.records, m.opts)
}

func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, m.keys.Quit):
			return m, tea.Quit

		case m.halted != nil:
			// Only quitting is possible on a halted screen.

		case key.Matches(message, m.keys.Primary):
			m.apply(engine.PrimaryCommand(m.state.Phase()))

		case key.Matches(message, m.keys.Reset):
			m.apply(engine.CmdReset)
		}

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.progress.Width = max(message.Width-4, 10)
	}
	return m, nil
}

func (m *Model) apply(cmd engine.CommandType) {
	events, next, err := engine.Apply(m.state, engine.Command{Type: cmd})
	if err != nil {
		m.log.Debug("command rejected", zap.String("command", string(cmd)), zap.Error(err))
		return
	}
	m.state = next
	for _, e := range events {
		m.log.Info("presentation event", zap.String("event", string(e.Type)), zap.Int("index", e.Index))
	}
}

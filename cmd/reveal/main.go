// reveal runs the vote reveal show in the terminal. It reads the same
// configuration as the web server and needs no network.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/DoyleJ11/vote-reveal/internal/config"
	"github.com/DoyleJ11/vote-reveal/internal/logging"
	"github.com/DoyleJ11/vote-reveal/internal/theme"
	"github.com/DoyleJ11/vote-reveal/internal/tui"
	"github.com/DoyleJ11/vote-reveal/internal/view"
	"github.com/DoyleJ11/vote-reveal/internal/votes"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("reveal", os.Args[1:], ".env")
	if err != nil {
		return err
	}

	// The terminal belongs to the show, so logs go to a file or nowhere.
	log := zap.NewNop()
	if cfg.LogFile != "" {
		log, err = logging.New(cfg.LogLevel, cfg.Dev, cfg.LogFile)
		if err != nil {
			return err
		}
		defer log.Sync()
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	th := theme.Load(theme.Options{
		BackgroundFile: cfg.BackgroundFile,
		HeaderImage:    cfg.HeaderImage,
		ThemeFile:      cfg.ThemeFile,
		Language:       cfg.Language,
	}, log)

	records, loadErr := votes.Load(cfg.VotesFile, votes.Options{Location: loc})
	if loadErr != nil {
		log.Warn("vote file not loaded", zap.String("path", cfg.VotesFile), zap.Error(loadErr))
	}

	model := tui.NewModel(records, loadErr, cfg.VotesFile, th.ViewOptions(view.Options{
		Location:        loc,
		TimestampFormat: cfg.TimestampFormat,
		Locale:          cfg.LocaleTag(),
	}), log)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

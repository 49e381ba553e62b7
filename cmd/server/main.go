package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/vote-reveal/internal/config"
	"github.com/DoyleJ11/vote-reveal/internal/httpapi"
	"github.com/DoyleJ11/vote-reveal/internal/hub"
	"github.com/DoyleJ11/vote-reveal/internal/logging"
	"github.com/DoyleJ11/vote-reveal/internal/presenter"
	"github.com/DoyleJ11/vote-reveal/internal/theme"
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
	cfg, err := config.Load("vote-reveal-server", os.Args[1:], ".env")
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.Dev, cfg.LogFile)
	if err != nil {
		return err
	}
	defer log.Sync()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	th := theme.Load(theme.Options{
		BackgroundFile: cfg.BackgroundFile,
		HeaderImage:    cfg.HeaderImage,
		ThemeFile:      cfg.ThemeFile,
		Language:       cfg.Language,
	}, log)

	h := hub.NewHub(ctx, cfg.SessionTTL)
	cache := votes.NewCache(cfg.VotesFile, votes.Options{Location: loc})
	if _, err := cache.Get(); err != nil {
		// Sessions show the failure; the server still starts.
		log.Warn("vote file not loaded yet", zap.String("path", cfg.VotesFile), zap.Error(err))
	}

	p := presenter.New(h, cache, th.ViewOptions(view.Options{
		Location:        loc,
		TimestampFormat: cfg.TimestampFormat,
		Locale:          cfg.LocaleTag(),
	}), log)

	// Build the router *with* the presenter injected
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.SetupRoutes(p),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("votes", cfg.VotesFile))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return h.RunSweeper(gctx, time.Minute)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.Shutdown()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info("server closed", zap.Error(err))
	return err
}

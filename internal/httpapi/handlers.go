package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/vote-reveal/internal/engine"
	"github.com/DoyleJ11/vote-reveal/internal/presenter"
	"github.com/DoyleJ11/vote-reveal/internal/session"
	"github.com/DoyleJ11/vote-reveal/internal/view"
	"github.com/DoyleJ11/vote-reveal/pkg/types"
)

var actions = map[string]engine.CommandType{
	"reveal":  engine.CmdReveal,
	"advance": engine.CmdAdvance,
	"reset":   engine.CmdReset,
}

// Index renders the full page for the caller's session.
func Index(p *presenter.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := presenter.EnsureSessionID(w, r)

		screen, _, status := current(p, r, id)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		if err := view.Page(w, screen); err != nil {
			p.Log.Error("rendering page", zap.Error(err))
		}
	}
}

// Screen returns the caller's current screen as JSON.
func Screen(p *presenter.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := presenter.EnsureSessionID(w, r)

		screen, snap, status := current(p, r, id)
		writeJSON(w, status, view.Wire(screen, snap.State))
	}
}

// Action applies one command to the caller's session and sends the
// browser back to the page.
func Action(p *presenter.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmdType, ok := actions[chi.URLParam(r, "action")]
		if !ok {
			http.Error(w, "unknown action", http.StatusNotFound)
			return
		}

		id, err := presenter.SessionID(r)
		if err != nil {
			// No session yet: the page will start one.
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		s, halted, err := p.Open(r.Context(), id)
		if halted != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if err != nil {
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}

		if err := p.Apply(r.Context(), id, s, engine.Command{Type: cmdType}); err != nil {
			switch {
			case errors.Is(err, engine.ErrWrongPhase):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, session.ErrClosed):
				http.Redirect(w, r, "/", http.StatusSeeOther)
			default:
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
			}
			return
		}

		p.Log.Info("command applied", zap.String("session", id), zap.String("command", string(cmdType)))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// History returns the caller's event log. The position is rebuilt from the
// events, and a mismatch with the live session is reported as an error.
func History(p *presenter.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := presenter.EnsureSessionID(w, r)

		s, halted, err := p.Open(r.Context(), id)
		if halted != nil || err != nil {
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}
		v, err := s.State(r.Context())
		if err != nil {
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}

		replayed := engine.Reduce(v.State.Total, v.Events)
		status := http.StatusOK
		if replayed != v.State {
			p.Log.Error("event history diverged from session state",
				zap.String("session", id),
				zap.Any("state", v.State),
				zap.Any("replayed", replayed),
			)
			status = http.StatusInternalServerError
		}

		h := types.History{
			Version:  v.Version,
			Index:    replayed.Index,
			Revealed: replayed.Revealed,
			Total:    replayed.Total,
			Events:   make([]types.HistoryEvent, 0, len(v.Events)),
		}
		for _, e := range v.Events {
			h.Events = append(h.Events, types.HistoryEvent{Type: string(e.Type), Index: e.Index})
		}
		writeJSON(w, status, h)
	}
}

func Healthz(p *presenter.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := p.Hub.Count(r.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "stopping"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": n})
	}
}

func current(p *presenter.Presenter, r *http.Request, id string) (view.Screen, session.Snapshot, int) {
	s, halted, err := p.Open(r.Context(), id)
	if halted != nil {
		return *halted, session.Snapshot{}, http.StatusServiceUnavailable
	}
	if err != nil {
		return view.Halted(err.Error(), p.View), session.Snapshot{}, http.StatusServiceUnavailable
	}

	v, err := s.State(r.Context())
	if err != nil {
		return view.Halted(err.Error(), p.View), session.Snapshot{}, http.StatusServiceUnavailable
	}
	snap := v.Snapshot()
	return p.Screen(snap), snap, http.StatusOK
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

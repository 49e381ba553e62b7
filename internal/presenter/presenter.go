// Package presenter ties the vote data, the session registry and the
// renderer together for the web transports.
package presenter

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/vote-reveal/internal/engine"
	"github.com/DoyleJ11/vote-reveal/internal/hub"
	"github.com/DoyleJ11/vote-reveal/internal/session"
	"github.com/DoyleJ11/vote-reveal/internal/view"
	"github.com/DoyleJ11/vote-reveal/internal/votes"
	"github.com/DoyleJ11/vote-reveal/pkg/types"
)

const CookieName = "reveal_session"

var ErrNoSession = errors.New("no session cookie")

type Presenter struct {
	Hub   *hub.Hub
	Votes *votes.Cache
	View  view.Options
	Log   *zap.Logger
}

func New(h *hub.Hub, cache *votes.Cache, opts view.Options, log *zap.Logger) *Presenter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Presenter{Hub: h, Votes: cache, View: opts, Log: log}
}

// Open returns the caller's session, starting it over the cached vote
// sequence if needed. When the votes cannot be loaded it returns the
// halted screen to show instead.
func (p *Presenter) Open(ctx context.Context, id string) (*session.Session, *view.Screen, error) {
	records, err := p.Votes.Get()
	if err != nil {
		halted := p.halted(err)
		return nil, &halted, err
	}

	s, err := p.Hub.Ensure(ctx, id, records)
	if err != nil {
		return nil, nil, err
	}
	return s, nil, nil
}

// Apply runs cmd on s, the session opened for id, and marks the session as
// in use so an ongoing show is never swept as idle.
func (p *Presenter) Apply(ctx context.Context, id string, s *session.Session, cmd engine.Command) error {
	if err := s.Apply(ctx, cmd); err != nil {
		return err
	}
	if err := p.Hub.Touch(ctx, id); err != nil {
		p.Log.Debug("touching session", zap.String("session", id), zap.Error(err))
	}
	return nil
}

func (p *Presenter) halted(err error) view.Screen {
	if errors.Is(err, votes.ErrMissingDataFile) {
		p.Log.Warn("vote file missing, session halted", zap.String("path", p.Votes.Path()))
		return view.MissingData(filepath.Base(p.Votes.Path()), p.View)
	}
	p.Log.Error("vote file unusable, session halted", zap.String("path", p.Votes.Path()), zap.Error(err))
	return view.Halted(err.Error(), p.View)
}

func (p *Presenter) Screen(snap session.Snapshot) view.Screen {
	return view.Render(snap.State, snap.Records, p.View)
}

// Message builds the websocket payload for a snapshot, including the
// stage fragment rendered to HTML.
func (p *Presenter) Message(snap session.Snapshot) (types.ServerMessage, error) {
	screen := p.Screen(snap)
	wire := view.Wire(screen, snap.State)

	var buf bytes.Buffer
	if err := view.Stage(&buf, screen); err != nil {
		return types.ServerMessage{}, err
	}
	return types.ServerMessage{
		Type:    types.MsgStateSnapshot,
		Version: snap.Version,
		Screen:  &wire,
		HTML:    buf.String(),
	}, nil
}

// SessionID reads the caller's session cookie.
func SessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", ErrNoSession
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", ErrNoSession
	}
	return c.Value, nil
}

// EnsureSessionID returns the caller's session id, issuing a new cookie
// when the request has none.
func EnsureSessionID(w http.ResponseWriter, r *http.Request) string {
	if id, err := SessionID(r); err == nil {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

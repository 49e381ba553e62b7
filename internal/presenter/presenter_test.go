package presenter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/vote-reveal/internal/engine"
	"github.com/DoyleJ11/vote-reveal/internal/hub"
	"github.com/DoyleJ11/vote-reveal/internal/view"
	"github.com/DoyleJ11/vote-reveal/internal/votes"
	"github.com/DoyleJ11/vote-reveal/pkg/types"
)

func newPresenter(t *testing.T, body string) *Presenter {
	t.Helper()
	return newPresenterWithTTL(t, body, time.Hour)
}

func newPresenterWithTTL(t *testing.T, body string, ttl time.Duration) *Presenter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "votes.json")
	if body != "" {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return New(hub.NewHub(ctx, ttl), votes.NewCache(path, votes.Options{Location: time.UTC}),
		view.Options{Labels: view.English, Location: time.UTC}, nil)
}

func TestOpenMissingFileHalts(t *testing.T) {
	p := newPresenter(t, "")

	s, halted, err := p.Open(context.Background(), "id")
	require.ErrorIs(t, err, votes.ErrMissingDataFile)
	assert.Nil(t, s)
	require.NotNil(t, halted)
	assert.Equal(t, view.KindHalted, halted.Kind)
	assert.Equal(t, "File 'votes.json' not found!", halted.Error)
}

func TestOpenMalformedFileHalts(t *testing.T) {
	p := newPresenter(t, `[{"candidate": "A"}]`)

	_, halted, err := p.Open(context.Background(), "id")
	require.ErrorIs(t, err, votes.ErrMalformedRecord)
	require.NotNil(t, halted)
	assert.Contains(t, halted.Error, "missing timestamp")
}

func TestMessageCarriesStage(t *testing.T) {
	p := newPresenter(t, `[{"candidate": "A", "timestamp": "2025-01-01T00:00:00"}]`)
	ctx := context.Background()

	s, halted, err := p.Open(ctx, "id")
	require.NoError(t, err)
	require.Nil(t, halted)

	v, err := s.State(ctx)
	require.NoError(t, err)

	msg, err := p.Message(v.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, types.MsgStateSnapshot, msg.Type)
	require.NotNil(t, msg.Screen)
	assert.Equal(t, "sealed", msg.Screen.Kind)
	assert.Contains(t, msg.HTML, "ONLINE VOTE #1")
}

func TestEnsureSessionID(t *testing.T) {
	rec := httptest.NewRecorder()
	id := EnsureSessionID(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, id)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, id, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	again := httptest.NewRecorder()
	assert.Equal(t, id, EnsureSessionID(again, req))
	assert.Empty(t, again.Result().Cookies(), "existing session must not be reissued")
}

func TestSessionIDRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc"})

	_, err := SessionID(req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestApplyMarksSessionActive(t *testing.T) {
	p := newPresenterWithTTL(t, `[{"candidate": "A", "timestamp": "2025-01-01T00:00:00"}]`, 400*time.Millisecond)
	ctx := context.Background()

	s, _, err := p.Open(ctx, "show")
	require.NoError(t, err)

	time.Sleep(300 * time.Millisecond)
	require.NoError(t, p.Apply(ctx, "show", s, engine.Command{Type: engine.CmdReveal}))

	// Idle for 500ms since Open, 200ms since the command.
	reply := make(chan int, 1)
	p.Hub.Inbox() <- hub.Sweep{Now: time.Now().Add(200 * time.Millisecond), Reply: reply}
	assert.Equal(t, 0, <-reply)

	v, err := s.State(ctx)
	require.NoError(t, err)
	assert.True(t, v.State.Revealed)
}

func TestApplyRejectedCommandKeepsState(t *testing.T) {
	p := newPresenter(t, `[{"candidate": "A", "timestamp": "2025-01-01T00:00:00"}]`)
	ctx := context.Background()

	s, _, err := p.Open(ctx, "show")
	require.NoError(t, err)

	err = p.Apply(ctx, "show", s, engine.Command{Type: engine.CmdAdvance})
	require.ErrorIs(t, err, engine.ErrWrongPhase)
}

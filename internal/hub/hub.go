package hub

import (
	"context"
	"time"

	"github.com/DoyleJ11/vote-reveal/internal/session"
	"github.com/DoyleJ11/vote-reveal/internal/votes"
)

type HubMsg interface{ isHubMsg() }

type EnsureSession struct {
	ID      string
	Records []votes.Record // only used if creation happens
	Reply   chan *session.Session
}

// Touch marks a session as in use, for commands that reach the session
// without going through the hub.
type Touch struct {
	ID string
}

// Sweep closes every session not touched since Now minus the hub TTL.
// Sessions with a display still connected are kept.
type Sweep struct {
	Now   time.Time
	Reply chan int // number of sessions removed, may be nil
}

type Stats struct {
	Reply chan int
}

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	lastSeen map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
	ctx      context.Context
	cancel   context.CancelFunc
}

type ShutdownHub struct{}

func (EnsureSession) isHubMsg() {}
func (Touch) isHubMsg()         {}
func (Sweep) isHubMsg()         {}
func (Stats) isHubMsg()         {}
func (ShutdownHub) isHubMsg()   {}

func NewHub(parent context.Context, ttl time.Duration) *Hub {
	return newHub(parent, ttl, time.Now)
}

func newHub(parent context.Context, ttl time.Duration, now func() time.Time) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		lastSeen: make(map[string]time.Time),
		ttl:      ttl,
		now:      now,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) Done() <-chan struct{} { return h.ctx.Done() }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case EnsureSession:
				if s := h.sessions[msg.ID]; s != nil {
					h.touch(msg.ID)
					msg.Reply <- s
					break
				}
				msg.Reply <- h.create(msg.ID, msg.Records)

			case Touch:
				if h.sessions[msg.ID] != nil {
					h.touch(msg.ID)
				}

			case Sweep:
				removed := 0
				for id, seen := range h.lastSeen {
					if h.sessions[id].Displays() > 0 {
						continue
					}
					if msg.Now.Sub(seen) > h.ttl {
						h.remove(id)
						removed++
					}
				}
				if msg.Reply != nil {
					msg.Reply <- removed
				}

			case Stats:
				msg.Reply <- len(h.sessions)

			case ShutdownHub:
				h.closeAll()
				h.cancel()
				return
			}
		}
	}
}

func (h *Hub) create(id string, records []votes.Record) *session.Session {
	s := session.NewSession(h.ctx, records)
	h.sessions[id] = s
	h.touch(id)
	return s
}

func (h *Hub) touch(id string) {
	h.lastSeen[id] = h.now()
}

func (h *Hub) remove(id string) {
	if s := h.sessions[id]; s != nil {
		s.Close()
	}
	delete(h.sessions, id)
	delete(h.lastSeen, id)
}

func (h *Hub) closeAll() {
	for id := range h.sessions {
		h.remove(id)
	}
}

// Ensure returns the session for id, starting one over records when none
// exists yet.
func (h *Hub) Ensure(ctx context.Context, id string, records []votes.Record) (*session.Session, error) {
	reply := make(chan *session.Session, 1)
	if err := h.send(ctx, EnsureSession{ID: id, Records: records, Reply: reply}); err != nil {
		return nil, err
	}
	return h.await(ctx, reply)
}

// Touch records activity on the session for id so the sweeper keeps it.
func (h *Hub) Touch(ctx context.Context, id string) error {
	return h.send(ctx, Touch{ID: id})
}

// Count reports how many sessions are live.
func (h *Hub) Count(ctx context.Context) (int, error) {
	reply := make(chan int, 1)
	if err := h.send(ctx, Stats{Reply: reply}); err != nil {
		return 0, err
	}
	select {
	case n := <-reply:
		return n, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-h.ctx.Done():
		return 0, context.Canceled
	}
}

// Shutdown closes every session and stops the hub.
func (h *Hub) Shutdown() {
	select {
	case h.inbox <- ShutdownHub{}:
	case <-h.ctx.Done():
	}
}

// RunSweeper sweeps idle sessions every interval until ctx is done.
func (h *Hub) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.ctx.Done():
			return nil
		case t := <-ticker.C:
			if err := h.send(ctx, Sweep{Now: t}); err != nil {
				return nil
			}
		}
	}
}

func (h *Hub) send(ctx context.Context, m HubMsg) error {
	select {
	case h.inbox <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.ctx.Done():
		return context.Canceled
	}
}

func (h *Hub) await(ctx context.Context, reply chan *session.Session) (*session.Session, error) {
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-h.ctx.Done():
		return nil, context.Canceled
	}
}

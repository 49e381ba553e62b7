package session

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"

	"github.com/DoyleJ11/vote-reveal/internal/engine"
	"github.com/DoyleJ11/vote-reveal/internal/votes"
)

var ErrClosed = errors.New("session closed")

type Msg interface{ isSessionMsg() }

// FromClient asks the session to apply a command. Reply, when set,
// receives the result once the command has been applied or rejected.
type FromClient struct {
	Cmd   engine.Command
	Reply chan error
}

func (FromClient) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this display wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

// Snapshot is what a display needs to draw itself. Records is shared and
// must not be modified.
type Snapshot struct {
	Version int
	State   engine.State
	Records []votes.Record
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
	Records    []votes.Record
	Events     []engine.Event
}

func (v View) Snapshot() Snapshot {
	return Snapshot{Version: v.Version, State: v.State, Records: v.Records}
}

type Session struct {
	inbox   chan Msg
	state   engine.State
	records []votes.Record
	version int
	events  []engine.Event
	clients map[string]chan Snapshot
	ctx     context.Context
	cancel  context.CancelFunc

	// displays mirrors len(clients) for readers outside the loop.
	displays atomic.Int32
}

func NewSession(parent context.Context, records []votes.Record) *Session {
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		inbox:   make(chan Msg, 64), // Small buffer
		state:   engine.NewState(len(records)),
		records: records,
		version: 0,
		clients: make(map[string]chan Snapshot),
		ctx:     ctx,
		cancel:  cancel,
	}

	go s.loop()
	return s
}

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				// Register display + send current snapshot immediately
				s.clients[msg.ClientID] = msg.Outbox
				s.displays.Store(int32(len(s.clients)))
				msg.Outbox <- s.snapshot()

			case Leave:
				if ch, ok := s.clients[msg.ClientID]; ok {
					close(ch)
					delete(s.clients, msg.ClientID)
					s.displays.Store(int32(len(s.clients)))
				}

			case FromClient:
				events, newState, err := engine.Apply(s.state, msg.Cmd)
				if err == nil {
					s.state = newState
					s.events = append(s.events, events...)
					s.version++
					s.broadcast(s.snapshot())
				}
				if msg.Reply != nil {
					msg.Reply <- err
				}

			case GetState:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					State:      s.state,
					Records:    s.records,
					Events:     slices.Clone(s.events),
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{Version: s.version, State: s.state, Records: s.records}
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch) // Tell display no more snapshots
		delete(s.clients, id)
	}
	s.displays.Store(0)
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Display is slow/full - drop it.
			close(ch)
			delete(s.clients, id)
		}
	}
	s.displays.Store(int32(len(s.clients)))
}

// Expose the inbox so tests or the transport layers can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Close stops the session from any goroutine. Joined displays have their
// outboxes closed by the session loop.
func (s *Session) Close() { s.cancel() }

// Displays reports how many displays are joined. It may lag the session
// loop by one message.
func (s *Session) Displays() int { return int(s.displays.Load()) }

// Done is closed once the session loop has stopped.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// Apply sends cmd to the session and waits until it has been applied or
// rejected.
func (s *Session) Apply(ctx context.Context, cmd engine.Command) error {
	reply := make(chan error, 1)
	if err := s.send(ctx, FromClient{Cmd: cmd, Reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		select {
		case err := <-reply:
			return err
		default:
			return ErrClosed
		}
	}
}

func (s *Session) State(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := s.send(ctx, GetState{Reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-s.ctx.Done():
		select {
		case v := <-reply:
			return v, nil
		default:
			return View{}, ErrClosed
		}
	}
}

func (s *Session) send(ctx context.Context, m Msg) error {
	select {
	case s.inbox <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrClosed
	}
}

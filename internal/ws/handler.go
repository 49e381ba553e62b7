package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/vote-reveal/internal/engine"
	"github.com/DoyleJ11/vote-reveal/internal/presenter"
	"github.com/DoyleJ11/vote-reveal/internal/session"
	"github.com/DoyleJ11/vote-reveal/pkg/types"
)

func Handler(p *presenter.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := presenter.SessionID(r)
		if err != nil {
			http.Error(w, "missing session", http.StatusBadRequest)
			return
		}

		s, halted, err := p.Open(r.Context(), id)
		if halted != nil {
			http.Error(w, halted.Error, http.StatusServiceUnavailable)
			return
		}
		if err != nil {
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		log := p.Log.With(zap.String("session", id))
		out := make(chan session.Snapshot, 8)
		clientID := uuid.NewString()

		select {
		case s.Inbox() <- session.Join{ClientID: clientID, Outbox: out}:
		case <-s.Done():
			return
		}
		defer func() {
			select {
			case s.Inbox() <- session.Leave{ClientID: clientID}:
			case <-s.Done():
			}
		}()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg, err := p.Message(snap)
				if err != nil {
					log.Error("rendering snapshot", zap.Error(err))
					continue
				}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		go func() {
			select {
			case <-s.Done():
				conn.Close(websocket.StatusGoingAway, "session closed")
			case <-writeCtx.Done():
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("display disconnected", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := toEngineCommand(cm)
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}

			if err := p.Apply(r.Context(), id, s, cmd); err != nil {
				if errors.Is(err, session.ErrClosed) {
					return
				}
				writeError(r.Context(), conn, err.Error())
				continue
			}
			log.Info("command applied", zap.String("command", string(cmd.Type)))
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: types.MsgError, Error: msg})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func toEngineCommand(m types.ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case "Reveal":
		return engine.Command{Type: engine.CmdReveal}, true
	case "Advance":
		return engine.Command{Type: engine.CmdAdvance}, true
	case "Reset":
		return engine.Command{Type: engine.CmdReset}, true
	default:
		return engine.Command{}, false
	}
}

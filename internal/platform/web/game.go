package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/hopper/internal/core"
	"github.com/vovakirdan/hopper/internal/games/runner"
	"github.com/vovakirdan/hopper/internal/logging"
	"github.com/vovakirdan/hopper/internal/replay"
)

const (
	writeWait   = 5 * time.Second
	inboxSize   = 32
	maxMsgBytes = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// clientMsg is the incoming websocket message format.
type clientMsg struct {
	Type   string  `json:"type"`             // "action" or "resize"
	Action string  `json:"action,omitempty"` // core.Action name
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// serverMsg is the outgoing websocket message format.
type serverMsg struct {
	Type     string           `json:"type"` // "snapshot", "event" or "error"
	Snapshot *runner.Snapshot `json:"snapshot,omitempty"`
	Event    *eventMsg        `json:"event,omitempty"`
	Best     int              `json:"best,omitempty"`
	Message  string           `json:"message,omitempty"`
}

type eventMsg struct {
	From   runner.State `json:"from"`
	To     runner.State `json:"to"`
	Reason string       `json:"reason"`
	Score  int          `json:"score"`
}

// handleWebSocket starts a game for one connection. The initial playfield
// size comes from the width and height query parameters.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	width, err1 := strconv.ParseFloat(r.URL.Query().Get("width"), 64)
	height, err2 := strconv.ParseFloat(r.URL.Query().Get("height"), 64)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "width and height are required")
		return
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var pending []runner.Event
	collect := runner.NotifierFunc(func(ev runner.Event) {
		pending = append(pending, ev)
	})

	rec, err := replay.NewRecorder(s.cfg.Runner, seed, width, height,
		runner.WithNotifier(runner.Notifiers{
			collect,
			logging.Lifecycle(s.logger, "remote", r.RemoteAddr),
		}),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.store != nil {
		rec.SaveTo(s.store, func(err error) {
			s.logger.Warn("could not save replay", "remote", r.RemoteAddr, "error", err)
		})
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("game connected", "remote", r.RemoteAddr, "journal", rec.Journal().ID)

	g := &game{
		conn:     conn,
		ctrl:     rec,
		pending:  &pending,
		tickRate: s.cfg.TickRate,
	}
	g.run(r.Context(), readLoop(r.Context(), conn))

	if err := rec.Flush(); err != nil {
		s.logger.Warn("could not save replay", "remote", r.RemoteAddr, "error", err)
	}
	s.logger.Info("game disconnected", "remote", r.RemoteAddr, "best", g.best)
}

// readLoop decodes client messages until the connection fails or ctx is
// done, then closes the returned channel.
func readLoop(ctx context.Context, conn *websocket.Conn) <-chan clientMsg {
	inbox := make(chan clientMsg, inboxSize)
	conn.SetReadLimit(maxMsgBytes)

	go func() {
		defer close(inbox)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg clientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				msg = clientMsg{Type: "invalid"}
			}
			select {
			case inbox <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return inbox
}

// game is the state of one connection's loop. Only run's goroutine touches
// it, which also makes it the only writer on conn.
type game struct {
	conn     *websocket.Conn
	ctrl     runner.Controller
	pending  *[]runner.Event
	tickRate int
	best     int

	ticker   *time.Ticker
	lastTick time.Time
}

func (g *game) run(ctx context.Context, inbox <-chan clientMsg) {
	defer g.stopTicker()

	if !g.send(serverMsg{Type: "snapshot", Snapshot: ptr(g.ctrl.Snapshot())}) {
		return
	}

	for {
		var tick <-chan time.Time
		if g.ticker != nil {
			tick = g.ticker.C
		}

		select {
		case <-ctx.Done():
			return

		case msg, ok := <-inbox:
			if !ok {
				return
			}
			if errMsg := g.apply(msg); errMsg != "" {
				if !g.send(serverMsg{Type: "error", Message: errMsg}) {
					return
				}
				continue
			}

		case t := <-tick:
			dt := float64(t.Sub(g.lastTick)) / float64(time.Millisecond)
			g.lastTick = t
			g.ctrl.Advance(dt)
		}

		if !g.flush() {
			return
		}
	}
}

// apply feeds one client message to the controller. It returns a message
// for the client when the input was rejected.
func (g *game) apply(msg clientMsg) string {
	switch msg.Type {
	case "action":
		a := core.ParseAction(msg.Action)
		if a == core.ActionNone {
			return "unknown action: " + msg.Action
		}
		runner.Dispatch(g.ctrl, a)
	case "resize":
		if err := g.ctrl.HandleResize(msg.Width, msg.Height); err != nil {
			return err.Error()
		}
	default:
		return "unknown message type: " + msg.Type
	}
	return ""
}

// flush sends pending lifecycle events and the current snapshot, and starts
// or stops the ticker to match the state.
func (g *game) flush() bool {
	snap := g.ctrl.Snapshot()

	for _, ev := range *g.pending {
		if ev.To == runner.StateRunning && ev.From != runner.StateRunning {
			g.stopTicker()
		}
		if ev.To == runner.StateEnded {
			g.best = max(g.best, ev.Score)
		}
		msg := serverMsg{Type: "event", Event: &eventMsg{
			From:   ev.From,
			To:     ev.To,
			Reason: ev.Reason.String(),
			Score:  ev.Score,
		}}
		if !g.send(msg) {
			return false
		}
	}
	*g.pending = (*g.pending)[:0]

	switch {
	case snap.State == runner.StateRunning && g.ticker == nil:
		g.ticker = time.NewTicker(time.Second / time.Duration(g.tickRate))
		g.lastTick = time.Now()
	case snap.State != runner.StateRunning:
		g.stopTicker()
	}

	return g.send(serverMsg{Type: "snapshot", Snapshot: &snap, Best: g.best})
}

func (g *game) stopTicker() {
	if g.ticker != nil {
		g.ticker.Stop()
		g.ticker = nil
	}
}

func (g *game) send(msg serverMsg) bool {
	g.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // checked by the write
	return g.conn.WriteJSON(msg) == nil
}

func ptr[T any](v T) *T {
	return &v
}

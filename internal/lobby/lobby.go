package lobby

import (
	"context"

	"go.uber.org/zap"

	"github.com/akoikkara/adu-shertu-backend/internal/engine"
	"github.com/akoikkara/adu-shertu-backend/internal/store"
)

type Msg interface{ isLobbyMsg() }

// Join seats a new player. Reply carries the outcome; on success the outbox
// starts receiving per-viewer snapshots.
type Join struct {
	ClientID string
	Name     string
	Outbox   chan Outbound
	Reply    chan JoinResult
}

func (Join) isLobbyMsg() {}

type JoinResult struct {
	PlayerID string
	Err      error
}

// Leave marks the seat disconnected and stops delivery. The seat keeps its
// place in turn order; the rules never skip a disconnected player.
type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

// FromClient carries one action from an already-seated player.
type FromClient struct {
	ClientID string
	Cmd      engine.Command
}

func (FromClient) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

// GetState reflects internal state without data races; used by tests and the
// HTTP layer.
type GetState struct {
	Reply chan StateView
}

func (GetState) isLobbyMsg() {}

type StateView struct {
	Version    int
	NumClients int
	View       engine.View
}

// Snapshot is one recipient's versioned view of the session.
type Snapshot struct {
	Version int
	View    engine.View
}

// Outbound is one delivery to a single client: a snapshot with the events
// that produced it, or a rejection meant for that client alone.
type Outbound struct {
	Snapshot *Snapshot
	Events   []engine.Event
	Err      error
}

// Lobby owns one game session. All mutation happens on the loop goroutine,
// one inbound message at a time, so the engine never needs a lock.
type Lobby struct {
	inbox   chan Msg
	game    *engine.Game
	version int
	clients map[string]chan Outbound
	ledger  *store.Ledger
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewLobby(parent context.Context, code string, dev bool, ledger *store.Ledger, log *zap.Logger) *Lobby {
	ctx, cancel := context.WithCancel(parent)

	l := &Lobby{
		inbox:   make(chan Msg, 64),
		game:    engine.NewGame(code, dev),
		clients: make(map[string]chan Outbound),
		ledger:  ledger,
		log:     log.With(zap.String("game", code)),
		ctx:     ctx,
		cancel:  cancel,
	}
	if okalu, ok, err := ledger.Load(ctx, code); err != nil {
		l.log.Warn("okalu ledger load failed", zap.Error(err))
	} else if ok {
		l.game.TeamOkalu = okalu
	}

	go l.loop()
	return l
}

// Inbox exposes the message channel to the transport layer and tests.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				l.handleJoin(msg)

			case Leave:
				delete(l.clients, msg.ClientID)
				if l.game.SetConnected(msg.ClientID, false) {
					l.version++
					l.broadcast(nil)
				}

			case FromClient:
				cmd := msg.Cmd
				cmd.PlayerID = msg.ClientID
				events, err := l.game.Apply(cmd)
				if err != nil {
					// Rejections go to the offending client only and leave
					// the session untouched.
					l.sendTo(msg.ClientID, Outbound{Err: err})
					break
				}
				l.version++
				l.broadcast(events)
				l.persistOkalu(events)

			case GetState:
				msg.Reply <- StateView{
					Version:    l.version,
					NumClients: len(l.clients),
					View:       l.game.ViewFor(""),
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) handleJoin(msg Join) {
	// A known player coming back keeps their seat; only their connected
	// flag and delivery channel change.
	if l.game.SetConnected(msg.ClientID, true) {
		l.clients[msg.ClientID] = msg.Outbox
		msg.Reply <- JoinResult{PlayerID: msg.ClientID}
		l.version++
		l.broadcast(nil)
		return
	}

	events, err := l.game.AddPlayer(msg.ClientID, msg.Name)
	if err != nil {
		msg.Reply <- JoinResult{Err: err}
		return
	}
	l.clients[msg.ClientID] = msg.Outbox
	msg.Reply <- JoinResult{PlayerID: msg.ClientID}
	l.log.Info("player joined", zap.String("player", msg.ClientID), zap.String("name", msg.Name))
	l.version++
	l.broadcast(events)
}

// broadcast delivers a fresh per-viewer snapshot to every connected client.
// Hands never cross client boundaries: each recipient gets their own view.
func (l *Lobby) broadcast(events []engine.Event) {
	for id, ch := range l.clients {
		out := Outbound{
			Snapshot: &Snapshot{Version: l.version, View: l.game.ViewFor(id)},
			Events:   events,
		}
		select {
		case ch <- out:
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(l.clients, id)
			l.game.SetConnected(id, false)
		}
	}
}

func (l *Lobby) sendTo(id string, out Outbound) {
	ch, ok := l.clients[id]
	if !ok {
		return
	}
	select {
	case ch <- out:
	default:
		close(ch)
		delete(l.clients, id)
		l.game.SetConnected(id, false)
	}
}

// persistOkalu writes the cross-game ledger whenever a game settles.
func (l *Lobby) persistOkalu(events []engine.Event) {
	for _, e := range events {
		if e.Type != engine.EvtGameOver && e.Type != engine.EvtTeamFolded {
			continue
		}
		if err := l.ledger.Save(l.ctx, l.game.Code, l.game.TeamOkalu); err != nil {
			l.log.Warn("okalu ledger save failed", zap.Error(err))
		}
		return
	}
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch)
		delete(l.clients, id)
	}
	l.cancel()
}

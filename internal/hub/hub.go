package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/akoikkara/adu-shertu-backend/internal/lobby"
	"github.com/akoikkara/adu-shertu-backend/internal/store"
)

type HubMsg interface{ isHubMsg() }

type CreateLobby struct {
	Code  string
	Dev   bool
	Reply chan *lobby.Lobby
}

type GetLobby struct {
	Code  string
	Reply chan *lobby.Lobby
}

type RemoveLobby struct {
	Code string
}

type ShutdownHub struct{}

func (CreateLobby) isHubMsg() {}
func (GetLobby) isHubMsg()    {}
func (RemoveLobby) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

// Hub is the registry of live game sessions, keyed by game code. It is the
// only owner of that mapping; everything reaches lobbies through its inbox.
type Hub struct {
	inbox   chan HubMsg
	lobbies map[string]*lobby.Lobby
	ledger  *store.Ledger
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewHub(parent context.Context, ledger *store.Ledger, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		lobbies: make(map[string]*lobby.Lobby),
		ledger:  ledger,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateLobby:
				if lb := h.lobbies[msg.Code]; lb != nil {
					msg.Reply <- lb
					break
				}
				lb := lobby.NewLobby(h.ctx, msg.Code, msg.Dev, h.ledger, h.log)
				h.lobbies[msg.Code] = lb
				h.log.Info("lobby created", zap.String("game", msg.Code), zap.Bool("dev", msg.Dev))
				msg.Reply <- lb

			case GetLobby:
				msg.Reply <- h.lobbies[msg.Code] // may be nil

			case RemoveLobby:
				if lb := h.lobbies[msg.Code]; lb != nil {
					lb.Inbox() <- lobby.Shutdown{}
					delete(h.lobbies, msg.Code)
					h.log.Info("lobby removed", zap.String("game", msg.Code))
				}

			case ShutdownHub:
				for _, lb := range h.lobbies {
					lb.Inbox() <- lobby.Shutdown{}
				}
				clear(h.lobbies)
				h.cancel()
			}
		}
	}
}

package ws

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/akoikkara/adu-shertu-backend/internal/engine"
	"github.com/akoikkara/adu-shertu-backend/internal/hub"
	"github.com/akoikkara/adu-shertu-backend/internal/lobby"
	"github.com/akoikkara/adu-shertu-backend/internal/types"
)

const writeTimeout = 3 * time.Second

// Handler upgrades a client and bridges it onto a lobby: the first frame
// must be a join carrying the player's display name; every later frame is an
// action forwarded to the session actor.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
		lb := <-reply
		if lb == nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		join, err := readJoin(r.Context(), conn)
		if err != nil {
			writeError(r.Context(), conn, "illegal_action", "first message must be a join")
			return
		}

		out := make(chan lobby.Outbound, 8)
		clientID := randID(8)

		joinReply := make(chan lobby.JoinResult, 1)
		lb.Inbox() <- lobby.Join{ClientID: clientID, Name: join.Name, Outbox: out, Reply: joinReply}
		res := <-joinReply
		if res.Err != nil {
			writeError(r.Context(), conn, engine.ErrorKind(res.Err), res.Err.Error())
			return
		}
		defer func() { lb.Inbox() <- lobby.Leave{ClientID: clientID} }()

		if err := writeMessage(r.Context(), conn, types.ServerMessage{Type: "join_success", PlayerID: res.PlayerID}); err != nil {
			return
		}
		log.Info("client joined", zap.String("game", code), zap.String("player", clientID))

		// Writer goroutine: snapshots and rejections for this client only.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for o := range out {
				msg := types.ServerMessage{Type: "state"}
				if o.Err != nil {
					msg = types.ServerMessage{
						Type:  "error",
						Kind:  engine.ErrorKind(o.Err),
						Error: o.Err.Error(),
					}
				} else if o.Snapshot != nil {
					msg.Version = o.Snapshot.Version
					msg.View = &o.Snapshot.View
					msg.Events = o.Events
				}
				_ = writeMessage(writeCtx, conn, msg)
			}
		}()

		// Reader loop.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "illegal_action", "bad json")
				continue
			}

			cmd, ok := toEngineCommand(cm)
			if !ok {
				writeError(r.Context(), conn, "illegal_action", "unknown message type")
				continue
			}
			lb.Inbox() <- lobby.FromClient{ClientID: clientID, Cmd: cmd}
		}
	}
}

func readJoin(ctx context.Context, conn *websocket.Conn) (types.ClientMessage, error) {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return types.ClientMessage{}, err
	}
	var cm types.ClientMessage
	if err := json.Unmarshal(data, &cm); err != nil {
		return types.ClientMessage{}, err
	}
	if cm.Type != "join" {
		return types.ClientMessage{}, errNotJoin
	}
	return cm, nil
}

var errNotJoin = errors.New("expected join message")

func toEngineCommand(m types.ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case "start":
		return engine.Command{Type: engine.CmdStart}, true
	case "call_trump":
		return engine.Command{Type: engine.CmdCallTrump, Suit: engine.Suit(m.Suit)}, true
	case "pass_trump":
		return engine.Command{Type: engine.CmdPassTrump}, true
	case "call_joint":
		return engine.Command{Type: engine.CmdCallJoint}, true
	case "select_trump_joint":
		return engine.Command{Type: engine.CmdSelectTrumpJoint, Suit: engine.Suit(m.Suit)}, true
	case "challenge":
		return engine.Command{Type: engine.CmdChallenge, Word: m.Word}, true
	case "respond_challenge":
		return engine.Command{Type: engine.CmdRespondChallenge, Response: m.Response}, true
	case "ready":
		return engine.Command{Type: engine.CmdReady}, true
	case "play_card":
		return engine.Command{Type: engine.CmdPlayCard, CardIndex: m.CardIndex}, true
	default:
		return engine.Command{}, false
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(wctx, websocket.MessageText, payload)
}

func writeError(ctx context.Context, conn *websocket.Conn, kind, reason string) {
	_ = writeMessage(ctx, conn, types.ServerMessage{Type: "error", Kind: kind, Error: reason})
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

package types

import "github.com/akoikkara/adu-shertu-backend/internal/engine"

// ClientMessage is one inbound websocket frame. Type selects the action;
// the remaining fields are read per action.
type ClientMessage struct {
	Type      string `json:"type"`
	Name      string `json:"name,omitempty"`
	Suit      string `json:"suit,omitempty"`
	Word      string `json:"word,omitempty"`
	Response  string `json:"response,omitempty"`
	CardIndex int    `json:"card_index,omitempty"`
}

// ServerMessage is one outbound websocket frame.
type ServerMessage struct {
	Type     string         `json:"type"` // join_success | state | error
	PlayerID string         `json:"player_id,omitempty"`
	Version  int            `json:"version,omitempty"`
	View     *engine.View   `json:"view,omitempty"`
	Events   []engine.Event `json:"events,omitempty"`
	Kind     string         `json:"kind,omitempty"`
	Error    string         `json:"error,omitempty"`
}

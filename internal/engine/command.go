package engine

import "fmt"

type CommandType string

const (
	CmdStart            CommandType = "start"
	CmdCallTrump        CommandType = "call_trump"
	CmdPassTrump        CommandType = "pass_trump"
	CmdCallJoint        CommandType = "call_joint"
	CmdSelectTrumpJoint CommandType = "select_trump_joint"
	CmdChallenge        CommandType = "challenge"
	CmdRespondChallenge CommandType = "respond_challenge"
	CmdReady            CommandType = "ready"
	CmdPlayCard         CommandType = "play_card"
)

type Command struct {
	Type      CommandType
	PlayerID  string
	Suit      Suit
	Word      string
	Response  string
	CardIndex int
}

type EventType string

const (
	EvtPlayerJoined       EventType = "player_joined"
	EvtGameStarted        EventType = "game_started"
	EvtTrumpCalled        EventType = "trump_called"
	EvtTrumpPassed        EventType = "trump_passed"
	EvtCardsRedealt       EventType = "cards_redealt"
	EvtJointCalled        EventType = "joint_called"
	EvtCardReplaced       EventType = "card_replaced"
	EvtStage2Started      EventType = "stage2_started"
	EvtTrumpSelectedJoint EventType = "trump_selected_joint"
	EvtChallengeIssued    EventType = "challenge_issued"
	EvtChallengeAccepted  EventType = "challenge_accepted"
	EvtTeamFolded         EventType = "team_folded"
	EvtPlayerReady        EventType = "player_ready"
	EvtCardPlayed         EventType = "card_played"
	EvtHandComplete       EventType = "hand_complete"
	EvtGameOver           EventType = "game_over"
)

// Event is a public fact about the game; every field it carries is safe to
// broadcast to all six players.
type Event struct {
	Type  EventType `json:"type"`
	Seat  int       `json:"seat"`
	Team  int       `json:"team"`
	Name  string    `json:"name,omitempty"`
	Suit  Suit      `json:"suit,omitempty"`
	Word  string    `json:"word,omitempty"`
	Card  *Card     `json:"card,omitempty"`
	Cards []Card    `json:"cards,omitempty"`

	Points int `json:"points,omitempty"`
	Okalu  int `json:"okalu,omitempty"`
}

// Apply dispatches one validated action against the session. Either the
// mutation fully applies and its events are returned, or a typed rejection is
// returned and the session is untouched.
func (g *Game) Apply(cmd Command) ([]Event, error) {
	seat, ok := g.seatOf(cmd.PlayerID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown player", ErrIllegalAction)
	}

	// A pending wager gates everything except the response to it.
	if g.PendingChallenge && cmd.Type != CmdRespondChallenge {
		return nil, fmt.Errorf("%w: challenge pending", ErrIllegalAction)
	}

	var (
		events []Event
		err    error
	)
	switch cmd.Type {
	case CmdStart:
		events, err = g.Start()
	case CmdCallTrump:
		events, err = g.CallTrump(seat, cmd.Suit)
	case CmdPassTrump:
		events, err = g.PassTrump(seat)
	case CmdCallJoint:
		events, err = g.CallJoint(seat)
	case CmdSelectTrumpJoint:
		events, err = g.SelectTrumpJoint(seat, cmd.Suit)
	case CmdChallenge:
		events, err = g.Challenge(seat, cmd.Word)
	case CmdRespondChallenge:
		events, err = g.RespondChallenge(seat, cmd.Response)
	case CmdReady:
		events, err = g.Ready(cmd.PlayerID)
	case CmdPlayCard:
		events, err = g.PlayCard(seat, cmd.CardIndex)
	default:
		return nil, fmt.Errorf("%w: unsupported command %q", ErrIllegalAction, cmd.Type)
	}
	if err != nil {
		return nil, err
	}
	g.checkInvariant()
	return events, nil
}

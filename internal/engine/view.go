package engine

// PlayerView is the public face of a seat. Hand is populated only for the
// viewer's own seat, or for every seat in a dev game.
type PlayerView struct {
	Name      string `json:"name"`
	Team      int    `json:"team"`
	CardCount int    `json:"card_count"`
	Connected bool   `json:"connected"`
	Hand      []Card `json:"hand,omitempty"`
}

// View is one recipient's snapshot of the session: the full public state
// plus that recipient's private hand. Building it never mutates the game.
type View struct {
	Code               string       `json:"code"`
	Phase              Phase        `json:"phase"`
	Players            []PlayerView `json:"players"`
	DealerIndex        int          `json:"dealer_index"`
	TrumpCallingIndex  int          `json:"trump_calling_index"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	TrumpSuit          Suit         `json:"trump_suit,omitempty"`
	TrumpCallerIndex   int          `json:"trump_caller_index"`
	JointCalled        bool         `json:"joint_called"`
	JointCallerIndex   int          `json:"joint_caller_index"`
	BaseOkalu          int          `json:"base_okalu"`
	CurrentGameOkalu   int          `json:"current_game_okalu"`
	TeamOkalu          [2]int       `json:"team_okalu"`
	PendingChallenge   bool         `json:"pending_challenge"`
	ChallengeWord      string       `json:"challenge_word,omitempty"`
	LastChallengerTeam int          `json:"last_challenger_team"`
	CurrentHandNumber  int          `json:"current_hand_number"`
	CurrentHandCards   []PlayedCard `json:"current_hand_cards"`
	LeadingSuit        Suit         `json:"leading_suit,omitempty"`
	PointsScored       [2]int       `json:"points_scored"`
	HandsWon           [2]int       `json:"hands_won"`
	WinningTeam        int          `json:"winning_team"`
	ReadyPlayers       []string     `json:"ready_players"`

	MySeat int `json:"my_seat"`
	MyTeam int `json:"my_team"`
}

// ViewFor builds the snapshot for one viewer. An empty viewerID yields the
// purely public view.
func (g *Game) ViewFor(viewerID string) View {
	v := View{
		Code:               g.Code,
		Phase:              g.Phase,
		DealerIndex:        g.DealerIndex,
		TrumpCallingIndex:  g.TrumpCallingIndex,
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		TrumpSuit:          g.TrumpSuit,
		TrumpCallerIndex:   g.TrumpCallerIndex,
		JointCalled:        g.JointCalled,
		JointCallerIndex:   g.JointCallerIndex,
		BaseOkalu:          g.BaseOkalu,
		CurrentGameOkalu:   g.CurrentGameOkalu,
		TeamOkalu:          g.TeamOkalu,
		PendingChallenge:   g.PendingChallenge,
		ChallengeWord:      g.ChallengeWord,
		LastChallengerTeam: g.LastChallengerTeam,
		CurrentHandNumber:  g.CurrentHandNumber,
		CurrentHandCards:   append([]PlayedCard{}, g.CurrentHandCards...),
		LeadingSuit:        g.LeadingSuit,
		PointsScored:       g.PointsScored,
		HandsWon:           g.HandsWon,
		WinningTeam:        g.WinningTeam,
		ReadyPlayers:       make([]string, 0, len(g.ReadyPlayers)),
		MySeat:             -1,
		MyTeam:             -1,
	}
	for id := range g.ReadyPlayers {
		v.ReadyPlayers = append(v.ReadyPlayers, id)
	}

	v.Players = make([]PlayerView, len(g.Players))
	for i, p := range g.Players {
		pv := PlayerView{
			Name:      p.Name,
			Team:      p.Team,
			CardCount: len(p.Hand),
			Connected: p.Connected,
		}
		if g.Dev || p.ID == viewerID {
			pv.Hand = append([]Card{}, p.Hand...)
		}
		if p.ID == viewerID && viewerID != "" {
			v.MySeat = i
			v.MyTeam = p.Team
		}
		v.Players[i] = pv
	}
	return v
}

package engine

import "fmt"

// Challenge words in ladder order. Stage 1 runs adu then shertu during
// stage-1 challenging; stage 2 runs double then shubble once cards are in
// play. Challenge state belongs to a team, not a player.
const (
	WordAdu     = "adu"
	WordShertu  = "shertu"
	WordDouble  = "double"
	WordShubble = "shubble"
)

// Challenge issues the next wager word for the acting player's team. Each
// accepted raise doubles the current game okalu, hands priority to the other
// team, and re-arms the ready gate.
func (g *Game) Challenge(seat int, word string) ([]Event, error) {
	team := g.Players[seat].Team
	if g.LastChallengerTeam == team {
		return nil, fmt.Errorf("%w: wait for the other team", ErrIllegalChallenge)
	}

	switch word {
	case WordAdu, WordShertu:
		if g.Phase != PhaseStage1Challenging {
			return nil, fmt.Errorf("%w: %s is a stage-1 challenge", ErrIllegalAction, word)
		}
		if word == WordAdu {
			if g.Stage1Level != 0 {
				return nil, fmt.Errorf("%w: adu was already called", ErrIllegalChallenge)
			}
			if team == g.Players[g.TrumpCallerIndex].Team {
				return nil, fmt.Errorf("%w: opponents must initiate adu", ErrIllegalChallenge)
			}
		} else if g.Stage1Level != 1 {
			return nil, fmt.Errorf("%w: shertu must answer adu", ErrIllegalChallenge)
		}
		g.Stage1Level++
	case WordDouble, WordShubble:
		if g.Phase != PhaseStage2Challenging && g.Phase != PhasePlayingHand {
			return nil, fmt.Errorf("%w: %s is a stage-2 challenge", ErrIllegalAction, word)
		}
		if word == WordDouble {
			if g.Stage2Level != 0 {
				return nil, fmt.Errorf("%w: double was already called", ErrIllegalChallenge)
			}
		} else if g.Stage2Level != 1 {
			return nil, fmt.Errorf("%w: shubble must answer double", ErrIllegalChallenge)
		}
		g.Stage2Level++
	default:
		return nil, fmt.Errorf("%w: unknown challenge %q", ErrIllegalChallenge, word)
	}

	g.CurrentGameOkalu *= 2
	g.LastChallengerTeam = team
	g.PendingChallenge = true
	g.ChallengeWord = word
	// Everyone must re-acknowledge the new stake.
	g.ReadyPlayers = map[string]bool{}

	return []Event{{
		Type:  EvtChallengeIssued,
		Seat:  seat,
		Team:  team,
		Name:  g.Players[seat].Name,
		Word:  word,
		Okalu: g.CurrentGameOkalu,
	}}, nil
}

// RespondChallenge answers a pending wager on behalf of the responder's team.
// Accepting clears the wager; folding ends the game at the pre-raise stake,
// charged to the folding team.
func (g *Game) RespondChallenge(seat int, response string) ([]Event, error) {
	if !g.PendingChallenge {
		return nil, fmt.Errorf("%w: no pending challenge", ErrIllegalChallenge)
	}
	team := g.Players[seat].Team
	if team == g.LastChallengerTeam {
		return nil, fmt.Errorf("%w: cannot respond to your own challenge", ErrIllegalChallenge)
	}

	switch response {
	case "accept":
		g.PendingChallenge = false
		g.ChallengeWord = ""
		return []Event{{
			Type:  EvtChallengeAccepted,
			Seat:  seat,
			Team:  team,
			Okalu: g.CurrentGameOkalu,
		}}, nil
	case "fold":
		stake := g.CurrentGameOkalu / 2
		g.TeamOkalu[team] += stake
		g.PendingChallenge = false
		g.ChallengeWord = ""
		g.Phase = PhaseGameOver
		g.WinningTeam = 1 - team
		return []Event{
			{Type: EvtTeamFolded, Seat: seat, Team: team, Okalu: stake},
			{Type: EvtGameOver, Seat: -1, Team: 1 - team, Okalu: g.TeamOkalu[team]},
		}, nil
	default:
		return nil, fmt.Errorf("%w: response must be accept or fold", ErrIllegalChallenge)
	}
}

// Ready records a per-player acknowledgement during stage-1 challenging. Once
// all six players are ready and no wager is pending, the remaining cards are
// dealt and stage 2 begins.
func (g *Game) Ready(playerID string) ([]Event, error) {
	if g.Phase != PhaseStage1Challenging {
		return nil, fmt.Errorf("%w: nothing to acknowledge now", ErrIllegalAction)
	}
	g.ReadyPlayers[playerID] = true

	seat, _ := g.seatOf(playerID)
	events := []Event{{Type: EvtPlayerReady, Seat: seat, Team: g.Players[seat].Team}}
	if len(g.ReadyPlayers) < numPlayers {
		return events, nil
	}

	g.ReadyPlayers = map[string]bool{}
	g.dealStage2()
	g.Phase = PhaseStage2Challenging
	g.CurrentPlayerIndex = (g.DealerIndex + 1) % numPlayers
	return append(events, Event{Type: EvtStage2Started, Seat: g.CurrentPlayerIndex}), nil
}

package engine

import "fmt"

// PlayCard plays the card at cardIndex from the actor's hand into the current
// hand. Legality: the actor is on turn, the card is held, and the led suit is
// followed whenever the hand allows it; a player void in the led suit may
// play anything, trump included.
func (g *Game) PlayCard(seat, cardIndex int) ([]Event, error) {
	if g.Phase != PhasePlayingHand && g.Phase != PhaseStage2Challenging {
		return nil, fmt.Errorf("%w: not in playing phase", ErrIllegalAction)
	}
	if seat != g.CurrentPlayerIndex {
		return nil, fmt.Errorf("%w: not your turn to play", ErrOutOfTurn)
	}
	p := g.Players[seat]
	if cardIndex < 0 || cardIndex >= len(p.Hand) {
		return nil, fmt.Errorf("%w: no such card in hand", ErrIllegalCard)
	}
	card := p.Hand[cardIndex]

	if len(g.CurrentHandCards) > 0 && card.Suit != g.LeadingSuit && g.playerHoldsSuit(seat, g.LeadingSuit) {
		return nil, fmt.Errorf("%w: must follow %s", ErrIllegalCard, g.LeadingSuit)
	}

	p.Hand = append(p.Hand[:cardIndex], p.Hand[cardIndex+1:]...)
	g.CurrentHandCards = append(g.CurrentHandCards, PlayedCard{Seat: seat, Card: card})
	if len(g.CurrentHandCards) == 1 {
		g.LeadingSuit = card.Suit
		g.Phase = PhasePlayingHand
	}

	played := card
	events := []Event{{
		Type: EvtCardPlayed,
		Seat: seat,
		Team: p.Team,
		Card: &played,
	}}

	if len(g.CurrentHandCards) == numPlayers {
		return append(events, g.completeHand()...), nil
	}
	g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % numPlayers
	return events, nil
}

// completeHand resolves a full hand of six plays: highest trump wins if any
// trump was played, otherwise the highest card of the led suit.
func (g *Game) completeHand() []Event {
	winnerSeat := g.handWinner()
	winnerTeam := g.Players[winnerSeat].Team

	points := 0
	for _, pc := range g.CurrentHandCards {
		points += CardPoints(pc.Card, g.TrumpSuit)
	}
	if g.CurrentHandNumber == handsPerGame-1 {
		points += finalHandBonus
	}
	g.PointsScored[winnerTeam] += points
	g.HandsWon[winnerTeam]++

	events := []Event{{
		Type:   EvtHandComplete,
		Seat:   winnerSeat,
		Team:   winnerTeam,
		Points: points,
	}}

	callerTeam := g.Players[g.TrumpCallerIndex].Team
	defenderTeam := 1 - callerTeam

	// Defenders win outright at the early threshold; the calling team has to
	// make the full game by the end of the fourth hand.
	if g.PointsScored[defenderTeam] >= earlyEndPoints {
		return append(events, g.endGame(defenderTeam)...)
	}
	if g.CurrentHandNumber == handsPerGame-1 {
		if g.PointsScored[callerTeam] >= fullGamePoints {
			return append(events, g.endGame(callerTeam)...)
		}
		return append(events, g.endGame(defenderTeam)...)
	}

	g.CurrentHandNumber++
	g.discarded = append(g.discarded, playedCards(g.CurrentHandCards)...)
	g.CurrentHandCards = nil
	g.LeadingSuit = ""
	g.CurrentPlayerIndex = winnerSeat
	return events
}

func (g *Game) handWinner() int {
	best := -1
	bestVal := 0
	for _, pc := range g.CurrentHandCards {
		if pc.Card.Suit != g.TrumpSuit {
			continue
		}
		if v := trumpOrder[pc.Card.Rank]; best < 0 || v > bestVal {
			best, bestVal = pc.Seat, v
		}
	}
	if best >= 0 {
		return best
	}
	for _, pc := range g.CurrentHandCards {
		if pc.Card.Suit != g.LeadingSuit {
			continue
		}
		if v := plainOrder[pc.Card.Rank]; best < 0 || v > bestVal {
			best, bestVal = pc.Seat, v
		}
	}
	return best
}

func playedCards(plays []PlayedCard) []Card {
	out := make([]Card, len(plays))
	for i, pc := range plays {
		out[i] = pc.Card
	}
	return out
}

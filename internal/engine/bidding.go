package engine

import "fmt"

// baseOkaluFor returns the stake base for a trump call, keyed by the caller's
// seat distance from the dealer: the dealer stakes 6, falling to 3 opposite.
func (g *Game) baseOkaluFor(seat int) int {
	okaluByDistance := [numPlayers]int{6, 5, 4, 3, 4, 5}
	return okaluByDistance[(seat-g.DealerIndex+numPlayers)%numPlayers]
}

// CallTrump fixes the trump suit. The caller must be on turn and must hold
// the 9 of the called suit; any other held card of that suit is then forcibly
// replaced in public.
func (g *Game) CallTrump(seat int, suit Suit) ([]Event, error) {
	if g.Phase != PhaseStage1TrumpCalling {
		return nil, fmt.Errorf("%w: not in trump calling phase", ErrIllegalAction)
	}
	if seat != g.TrumpCallingIndex {
		return nil, fmt.Errorf("%w: not your turn to call trump", ErrOutOfTurn)
	}
	if !validSuit(suit) {
		return nil, fmt.Errorf("%w: unknown suit %q", ErrIllegalBid, suit)
	}
	if !g.playerHolds(seat, suit, Nine) {
		return nil, fmt.Errorf("%w: you must hold the 9 of %s", ErrIllegalBid, suit)
	}

	g.TrumpSuit = suit
	g.TrumpCallerIndex = seat
	events := []Event{{
		Type: EvtTrumpCalled,
		Seat: seat,
		Team: g.Players[seat].Team,
		Name: g.Players[seat].Name,
		Suit: suit,
	}}
	events = append(events, g.replaceTrumpSuitCards(seat)...)

	g.BaseOkalu = g.baseOkaluFor(seat)
	g.CurrentGameOkalu = g.BaseOkalu
	g.Phase = PhaseStage1Challenging
	return events, nil
}

// CallJoint is the paired alternative: exactly two 9s of different suits. It
// doubles the stake, deals everyone up to 4 cards, and defers the final trump
// choice to the joint caller.
func (g *Game) CallJoint(seat int) ([]Event, error) {
	if g.Phase != PhaseStage1TrumpCalling {
		return nil, fmt.Errorf("%w: not in trump calling phase", ErrIllegalAction)
	}
	if seat != g.TrumpCallingIndex {
		return nil, fmt.Errorf("%w: not your turn to call trump", ErrOutOfTurn)
	}
	hand := g.Players[seat].Hand
	if len(hand) != 2 || hand[0].Rank != Nine || hand[1].Rank != Nine || hand[0].Suit == hand[1].Suit {
		return nil, fmt.Errorf("%w: joint needs two 9s of different suits", ErrIllegalBid)
	}

	g.JointCalled = true
	g.JointCallerIndex = seat
	g.TrumpCallerIndex = seat
	g.BaseOkalu = g.baseOkaluFor(seat)
	g.CurrentGameOkalu = g.BaseOkalu * 2
	g.Phase = PhaseStage1JointPending

	events := []Event{{
		Type:  EvtJointCalled,
		Seat:  seat,
		Team:  g.Players[seat].Team,
		Name:  g.Players[seat].Name,
		Okalu: g.CurrentGameOkalu,
	}}

	g.dealStage2()
	g.Phase = PhaseStage2TrumpSelection
	events = append(events, Event{Type: EvtStage2Started, Seat: seat})
	return events, nil
}

// PassTrump advances the calling turn. If all six pass, the dealt cards are
// set aside and the reserved half of the deck is dealt; a second full pass
// ends the game with no winner.
func (g *Game) PassTrump(seat int) ([]Event, error) {
	if g.Phase != PhaseStage1TrumpCalling {
		return nil, fmt.Errorf("%w: not in trump calling phase", ErrIllegalAction)
	}
	if seat != g.TrumpCallingIndex {
		return nil, fmt.Errorf("%w: not your turn to call trump", ErrOutOfTurn)
	}

	g.TrumpCallingIndex = (g.TrumpCallingIndex + 1) % numPlayers
	events := []Event{{Type: EvtTrumpPassed, Seat: seat, Team: g.Players[seat].Team}}

	start := (g.DealerIndex + 1) % numPlayers
	if g.TrumpCallingIndex != start {
		return events, nil
	}

	if g.stage1Round == 1 {
		g.stage1Round = 2
		for _, p := range g.Players {
			g.discarded = append(g.discarded, p.Hand...)
			p.Hand = nil
		}
		g.dealStage1()
		g.TrumpCallingIndex = start
		return append(events, Event{Type: EvtCardsRedealt, Seat: g.DealerIndex}), nil
	}

	// Nobody could call on either half of the deck.
	g.Phase = PhaseGameOver
	return append(events, Event{Type: EvtGameOver, Team: -1, Seat: -1}), nil
}

// SelectTrumpJoint finalizes a joint call: the joint caller picks one of
// their two 9 suits, and the replacement rule is re-applied against the
// remaining deck.
func (g *Game) SelectTrumpJoint(seat int, suit Suit) ([]Event, error) {
	if g.Phase != PhaseStage2TrumpSelection {
		return nil, fmt.Errorf("%w: not in trump selection phase", ErrIllegalAction)
	}
	if seat != g.JointCallerIndex {
		return nil, fmt.Errorf("%w: only the joint caller selects trump", ErrOutOfTurn)
	}
	if !g.playerHolds(seat, suit, Nine) {
		return nil, fmt.Errorf("%w: you must hold the 9 of %s", ErrIllegalBid, suit)
	}

	g.TrumpSuit = suit
	events := []Event{{
		Type: EvtTrumpSelectedJoint,
		Seat: seat,
		Team: g.Players[seat].Team,
		Suit: suit,
	}}
	events = append(events, g.replaceTrumpSuitCards(seat)...)

	g.Phase = PhaseStage2Challenging
	g.CurrentPlayerIndex = (g.DealerIndex + 1) % numPlayers
	return events, nil
}

// replaceTrumpSuitCards enforces the forced public replacement: every held
// trump-suit card other than the calling 9 is discarded and redrawn from the
// top of the deck until the draw is off-suit. Every on-suit draw is revealed
// to the whole table; the leak is the rule, not an accident. With an empty
// deck the offending card simply stays in hand.
func (g *Game) replaceTrumpSuitCards(seat int) []Event {
	p := g.Players[seat]
	calling := Card{Suit: g.TrumpSuit, Rank: Nine}
	var events []Event
	for i := 0; i < len(p.Hand); i++ {
		c := p.Hand[i]
		if c.Suit != g.TrumpSuit || c == calling {
			continue
		}
		if len(g.deck) == 0 {
			break
		}
		g.discarded = append(g.discarded, c)
		var shown []Card
		replaced := false
		for len(g.deck) > 0 {
			drawn := g.drawCard()
			shown = append(shown, drawn)
			if drawn.Suit != g.TrumpSuit {
				p.Hand[i] = drawn
				replaced = true
				break
			}
			g.discarded = append(g.discarded, drawn)
		}
		if !replaced {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			i--
		}
		discarded := c
		events = append(events, Event{
			Type:  EvtCardReplaced,
			Seat:  seat,
			Team:  p.Team,
			Card:  &discarded,
			Cards: shown,
		})
	}
	return events
}

func validSuit(s Suit) bool {
	switch s {
	case Hearts, Diamonds, Clubs, Spades:
		return true
	}
	return false
}

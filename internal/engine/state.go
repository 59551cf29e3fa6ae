package engine

import (
	"fmt"
	"math/rand"
)

type Phase string

const (
	PhaseWaiting              Phase = "waiting"
	PhaseStage1Dealing        Phase = "stage1_dealing"
	PhaseStage1TrumpCalling   Phase = "stage1_trump_calling"
	PhaseStage1JointPending   Phase = "stage1_joint_pending"
	PhaseStage1Challenging    Phase = "stage1_challenging"
	PhaseStage2Dealing        Phase = "stage2_dealing"
	PhaseStage2TrumpSelection Phase = "stage2_trump_selection"
	PhaseStage2Challenging    Phase = "stage2_challenging"
	PhasePlayingHand          Phase = "playing_hand"
	PhaseGameOver             Phase = "game_over"
)

const (
	numPlayers = 6

	earlyEndPoints = 47
	fullGamePoints = 100
	finalHandBonus = 5

	handsPerGame = 4
)

type Player struct {
	ID        string
	Name      string
	Team      int
	Hand      []Card
	Connected bool
}

// PlayedCard records one play of the current hand in order.
type PlayedCard struct {
	Seat int  `json:"seat"`
	Card Card `json:"card"`
}

// Game holds the complete authoritative state for one six-player match.
// All mutation goes through Apply; nothing here is safe for concurrent use.
type Game struct {
	Code    string
	Dev     bool
	Phase   Phase
	Players []*Player

	deck      []Card
	discarded []Card

	DealerIndex        int
	TrumpCallingIndex  int
	CurrentPlayerIndex int
	TrumpSuit          Suit // empty until called
	TrumpCallerIndex   int
	JointCalled        bool
	JointCallerIndex   int

	// Okalu: TeamOkalu persists across games; the rest resets per game.
	BaseOkalu        int
	CurrentGameOkalu int
	TeamOkalu        [2]int

	Stage1Level        int // 0 none, 1 adu, 2 shertu
	Stage2Level        int // 0 none, 1 double, 2 shubble
	PendingChallenge   bool
	ChallengeWord      string
	LastChallengerTeam int // -1 until a challenge is issued

	CurrentHandNumber int
	CurrentHandCards  []PlayedCard
	LeadingSuit       Suit
	PointsScored      [2]int
	HandsWon          [2]int
	WinningTeam       int // -1 until game over

	stage1Round  int
	ReadyPlayers map[string]bool
}

func NewGame(code string, dev bool) *Game {
	return &Game{
		Code:               code,
		Dev:                dev,
		Phase:              PhaseWaiting,
		DealerIndex:        -1,
		TrumpCallingIndex:  -1,
		CurrentPlayerIndex: -1,
		TrumpCallerIndex:   -1,
		JointCallerIndex:   -1,
		LastChallengerTeam: -1,
		WinningTeam:        -1,
		ReadyPlayers:       map[string]bool{},
	}
}

// AddPlayer seats a player. Seating alternates teams; the sixth join starts
// the game automatically.
func (g *Game) AddPlayer(id, name string) ([]Event, error) {
	if g.Phase != PhaseWaiting {
		return nil, fmt.Errorf("%w: game already started", ErrIllegalAction)
	}
	if len(g.Players) >= numPlayers {
		return nil, ErrGameFull
	}
	seat := len(g.Players)
	g.Players = append(g.Players, &Player{
		ID:        id,
		Name:      name,
		Team:      seat % 2,
		Connected: true,
	})
	events := []Event{{Type: EvtPlayerJoined, Seat: seat, Name: name}}
	if len(g.Players) == numPlayers {
		events = append(events, g.startGame()...)
	}
	return events, nil
}

// Start begins a new game from game_over, carrying okalu forward. The first
// game of a session starts automatically on the sixth join.
func (g *Game) Start() ([]Event, error) {
	if g.Phase != PhaseGameOver {
		return nil, fmt.Errorf("%w: game not finished", ErrIllegalAction)
	}
	if len(g.Players) != numPlayers {
		return nil, fmt.Errorf("%w: need exactly %d players", ErrIllegalAction, numPlayers)
	}
	return g.startGame(), nil
}

func (g *Game) startGame() []Event {
	g.DealerIndex = g.chooseDealer()

	g.deck = ShuffleDeck(NewDeck())
	g.discarded = nil
	g.TrumpSuit = ""
	g.TrumpCallerIndex = -1
	g.JointCalled = false
	g.JointCallerIndex = -1
	g.BaseOkalu = 0
	g.CurrentGameOkalu = 0
	g.Stage1Level = 0
	g.Stage2Level = 0
	g.PendingChallenge = false
	g.ChallengeWord = ""
	g.LastChallengerTeam = -1
	g.CurrentHandNumber = 0
	g.CurrentHandCards = nil
	g.LeadingSuit = ""
	g.PointsScored = [2]int{}
	g.HandsWon = [2]int{}
	g.WinningTeam = -1
	g.stage1Round = 1
	g.ReadyPlayers = map[string]bool{}
	g.CurrentPlayerIndex = -1
	for _, p := range g.Players {
		p.Hand = nil
	}

	g.Phase = PhaseStage1Dealing
	g.dealStage1()
	g.Phase = PhaseStage1TrumpCalling
	g.TrumpCallingIndex = (g.DealerIndex + 1) % numPlayers

	return []Event{{Type: EvtGameStarted, Seat: g.DealerIndex}}
}

// dealStage1 deals 2 cards to each player starting at the dealer.
func (g *Game) dealStage1() {
	for i := 0; i < numPlayers; i++ {
		seat := (g.DealerIndex + i) % numPlayers
		for n := 0; n < 2; n++ {
			if len(g.deck) == 0 {
				return
			}
			g.Players[seat].Hand = append(g.Players[seat].Hand, g.drawCard())
		}
	}
}

// dealStage2 tops every hand up to 4 cards, starting left of the dealer.
func (g *Game) dealStage2() {
	g.Phase = PhaseStage2Dealing
	for i := 1; i <= numPlayers; i++ {
		seat := (g.DealerIndex + i) % numPlayers
		for len(g.Players[seat].Hand) < 4 && len(g.deck) > 0 {
			g.Players[seat].Hand = append(g.Players[seat].Hand, g.drawCard())
		}
	}
}

func (g *Game) drawCard() Card {
	c := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	return c
}

func (g *Game) seatOf(playerID string) (int, bool) {
	for i, p := range g.Players {
		if p.ID == playerID {
			return i, true
		}
	}
	return -1, false
}

// SetConnected flags a seat as connected or not. Turn order is never skipped
// for a disconnected seat; this is presentation state only.
func (g *Game) SetConnected(playerID string, connected bool) bool {
	seat, ok := g.seatOf(playerID)
	if !ok {
		return false
	}
	g.Players[seat].Connected = connected
	return true
}

func (g *Game) playerHolds(seat int, suit Suit, rank Rank) bool {
	for _, c := range g.Players[seat].Hand {
		if c.Suit == suit && c.Rank == rank {
			return true
		}
	}
	return false
}

func (g *Game) playerHoldsSuit(seat int, suit Suit) bool {
	for _, c := range g.Players[seat].Hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// cardCount totals every card the session can account for. It must equal 24
// after every accepted mutation; anything else is a programming defect.
func (g *Game) cardCount() int {
	n := len(g.deck) + len(g.discarded) + len(g.CurrentHandCards)
	for _, p := range g.Players {
		n += len(p.Hand)
	}
	return n
}

func (g *Game) checkInvariant() {
	if g.DealerIndex < 0 {
		return
	}
	if n := g.cardCount(); n != 24 {
		panic(fmt.Sprintf("engine: card accounting broken, %d cards in game %s", n, g.Code))
	}
}

// chooseDealer seats the dealer on the indebted team: the team holding the
// larger okalu debt deals, ties going to team 0. A debt-free table seats a
// random dealer.
func (g *Game) chooseDealer() int {
	team := -1
	switch {
	case g.TeamOkalu[0] > 0 && g.TeamOkalu[0] >= g.TeamOkalu[1]:
		team = 0
	case g.TeamOkalu[1] > 0:
		team = 1
	}
	if team < 0 {
		return rand.Intn(numPlayers)
	}
	seats := make([]int, 0, 3)
	for i, p := range g.Players {
		if p.Team == team {
			seats = append(seats, i)
		}
	}
	return seats[rand.Intn(len(seats))]
}

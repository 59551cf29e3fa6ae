package engine

import (
	"errors"
	"fmt"
	"testing"
)

// challengingGame returns a game in stage-1 challenging with seat 1 (team 1)
// as the trump caller on spades, base okalu 5.
func challengingGame() *Game {
	g := trumpCallingGame()
	if _, err := g.CallTrump(1, Spades); err != nil {
		panic(err)
	}
	return g
}

func TestChallengeLadderStage1(t *testing.T) {
	cases := []struct {
		name    string
		seat    int
		word    string
		wantErr error
	}{
		{name: "defenders open with adu", seat: 0, word: WordAdu},
		{name: "caller team cannot open adu", seat: 3, word: WordAdu, wantErr: ErrIllegalChallenge},
		{name: "shertu before adu", seat: 0, word: WordShertu, wantErr: ErrIllegalChallenge},
		{name: "double is not a stage-1 word", seat: 0, word: WordDouble, wantErr: ErrIllegalAction},
		{name: "unknown word", seat: 0, word: "banco", wantErr: ErrIllegalChallenge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := challengingGame()
			before := g.CurrentGameOkalu
			events, err := g.Challenge(tc.seat, tc.word)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got %v, want %v", err, tc.wantErr)
				}
				if g.CurrentGameOkalu != before || g.PendingChallenge {
					t.Fatal("rejected challenge mutated state")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if g.CurrentGameOkalu != before*2 {
				t.Fatalf("okalu: got %d, want %d", g.CurrentGameOkalu, before*2)
			}
			if !g.PendingChallenge || g.LastChallengerTeam != g.Players[tc.seat].Team {
				t.Fatal("challenge state not recorded")
			}
			if !containsEvent(events, EvtChallengeIssued) {
				t.Fatal("missing challenge_issued event")
			}
		})
	}
}

func TestChallengeEscalation(t *testing.T) {
	g := challengingGame()

	// Team 0 (defenders) calls adu; stake 5 -> 10.
	if _, err := g.Challenge(0, WordAdu); err != nil {
		t.Fatalf("adu: %v", err)
	}
	// Same team cannot raise against itself, pending or not.
	if _, err := g.Challenge(2, WordShertu); !errors.Is(err, ErrIllegalChallenge) {
		t.Fatalf("same-team raise: got %v", err)
	}
	// Caller team accepts, then answers with shertu; 10 -> 20.
	if _, err := g.RespondChallenge(1, "accept"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := g.Challenge(3, WordShertu); err != nil {
		t.Fatalf("shertu: %v", err)
	}
	if g.CurrentGameOkalu != 20 {
		t.Fatalf("okalu after shertu: got %d, want 20", g.CurrentGameOkalu)
	}
	// Shertu cannot be repeated.
	if _, err := g.RespondChallenge(0, "accept"); err != nil {
		t.Fatalf("accept shertu: %v", err)
	}
	if _, err := g.Challenge(0, WordShertu); !errors.Is(err, ErrIllegalChallenge) {
		t.Fatalf("repeat shertu: got %v", err)
	}
}

func TestPendingChallengeGatesOtherActions(t *testing.T) {
	g := challengingGame()
	if _, err := g.Challenge(0, WordAdu); err != nil {
		t.Fatalf("adu: %v", err)
	}

	blocked := []Command{
		{Type: CmdReady, PlayerID: "p2"},
		{Type: CmdPlayCard, PlayerID: "p1"},
		{Type: CmdChallenge, PlayerID: "p1", Word: WordShertu},
	}
	for _, cmd := range blocked {
		if _, err := g.Apply(cmd); !errors.Is(err, ErrIllegalAction) {
			t.Fatalf("%s during pending challenge: got %v, want ErrIllegalAction", cmd.Type, err)
		}
	}

	// The response itself goes through.
	if _, err := g.Apply(Command{Type: CmdRespondChallenge, PlayerID: "p1", Response: "accept"}); err != nil {
		t.Fatalf("respond: %v", err)
	}
}

func TestRespondChallenge(t *testing.T) {
	t.Run("no pending challenge", func(t *testing.T) {
		g := challengingGame()
		if _, err := g.RespondChallenge(1, "accept"); !errors.Is(err, ErrIllegalChallenge) {
			t.Fatalf("got %v, want ErrIllegalChallenge", err)
		}
	})

	t.Run("own team cannot respond", func(t *testing.T) {
		g := challengingGame()
		if _, err := g.Challenge(0, WordAdu); err != nil {
			t.Fatal(err)
		}
		if _, err := g.RespondChallenge(2, "fold"); !errors.Is(err, ErrIllegalChallenge) {
			t.Fatalf("got %v, want ErrIllegalChallenge", err)
		}
	})

	t.Run("invalid response word", func(t *testing.T) {
		g := challengingGame()
		if _, err := g.Challenge(0, WordAdu); err != nil {
			t.Fatal(err)
		}
		if _, err := g.RespondChallenge(1, "maybe"); !errors.Is(err, ErrIllegalChallenge) {
			t.Fatalf("got %v, want ErrIllegalChallenge", err)
		}
	})
}

func TestFoldEndsGameAtPreRaiseStake(t *testing.T) {
	g := challengingGame()
	// adu: 5 -> 10. Caller team folds at the pre-raise stake of 5.
	if _, err := g.Challenge(0, WordAdu); err != nil {
		t.Fatal(err)
	}
	events, err := g.RespondChallenge(1, "fold")
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	if !containsEvent(events, EvtTeamFolded) || !containsEvent(events, EvtGameOver) {
		t.Fatalf("events: %v", events)
	}
	if g.Phase != PhaseGameOver {
		t.Fatalf("phase: got %s", g.Phase)
	}
	if g.TeamOkalu[1] != 5 {
		t.Fatalf("folding team okalu: got %d, want 5", g.TeamOkalu[1])
	}
	if g.WinningTeam != 0 {
		t.Fatalf("winning team: got %d", g.WinningTeam)
	}

	// Nothing is accepted after game over.
	if _, err := g.Apply(Command{Type: CmdPlayCard, PlayerID: "p0"}); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("play after fold: got %v, want ErrIllegalAction", err)
	}
}

func TestReadyGateAdvancesToStage2(t *testing.T) {
	g := challengingGame()

	for i := 0; i < numPlayers-1; i++ {
		if _, err := g.Ready(fmt.Sprintf("p%d", i)); err != nil {
			t.Fatalf("ready p%d: %v", i, err)
		}
		if g.Phase != PhaseStage1Challenging {
			t.Fatalf("advanced with only %d ready", i+1)
		}
	}

	events, err := g.Ready("p5")
	if err != nil {
		t.Fatalf("final ready: %v", err)
	}
	if !containsEvent(events, EvtStage2Started) {
		t.Fatal("missing stage2_started event")
	}
	if g.Phase != PhaseStage2Challenging {
		t.Fatalf("phase: got %s", g.Phase)
	}
	if want := (g.DealerIndex + 1) % numPlayers; g.CurrentPlayerIndex != want {
		t.Fatalf("lead seat: got %d, want %d", g.CurrentPlayerIndex, want)
	}
	for i, p := range g.Players {
		if len(p.Hand) != 4 {
			t.Fatalf("seat %d hand size: got %d, want 4", i, len(p.Hand))
		}
	}
	if len(g.ReadyPlayers) != 0 {
		t.Fatal("ready set not reset")
	}
	if n := g.cardCount(); n != 24 {
		t.Fatalf("card count: got %d", n)
	}
}

func TestChallengeResetsReadySet(t *testing.T) {
	g := challengingGame()
	if _, err := g.Ready("p0"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Ready("p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Challenge(0, WordAdu); err != nil {
		t.Fatal(err)
	}
	if len(g.ReadyPlayers) != 0 {
		t.Fatal("ready set should reset when the stake changes")
	}
}

func TestStage2Ladder(t *testing.T) {
	g := challengingGame()
	for i := 0; i < numPlayers; i++ {
		if _, err := g.Ready(fmt.Sprintf("p%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	// Stage 2: either team may open double; stake 5 -> 10.
	if _, err := g.Challenge(1, WordShubble); !errors.Is(err, ErrIllegalChallenge) {
		t.Fatalf("shubble before double: got %v", err)
	}
	if _, err := g.Challenge(1, WordDouble); err != nil {
		t.Fatalf("double: %v", err)
	}
	if g.CurrentGameOkalu != 10 {
		t.Fatalf("okalu: got %d, want 10", g.CurrentGameOkalu)
	}
	if _, err := g.RespondChallenge(0, "accept"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Challenge(0, WordAdu); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("adu during stage 2: got %v", err)
	}
	if _, err := g.Challenge(0, WordShubble); err != nil {
		t.Fatalf("shubble: %v", err)
	}
	if g.CurrentGameOkalu != 20 {
		t.Fatalf("okalu: got %d, want 20", g.CurrentGameOkalu)
	}
}

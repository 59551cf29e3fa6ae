package engine

// endGame settles the staked okalu: the full current stake first pays down
// any debt the winning team is carrying, and whatever remains is charged to
// the losing team. TeamOkalu survives into the next game; everything else is
// reset by the next Start.
func (g *Game) endGame(winner int) []Event {
	loser := 1 - winner

	apply := g.CurrentGameOkalu
	if g.TeamOkalu[winner] > 0 {
		reduction := min(g.TeamOkalu[winner], apply)
		g.TeamOkalu[winner] -= reduction
		apply -= reduction
	}
	g.TeamOkalu[loser] += apply

	g.Phase = PhaseGameOver
	g.WinningTeam = winner

	return []Event{{
		Type:   EvtGameOver,
		Seat:   -1,
		Team:   winner,
		Okalu:  g.CurrentGameOkalu,
		Points: g.PointsScored[winner],
	}}
}

package euchre

// scoreHand awards points for a completed hand: 1 point for winning 3 or
// 4 tricks, 2 for a march (sweeping all 5) with a partner in the game, 4
// for a lone march, and 2 to the defenders if the makers are euchred
// (held to fewer than 3 tricks). It then checks for a game-ending score.
func scoreHand(s State, a Action) (State, *Reject) {
	if s.Phase != PhaseScore || s.Maker == nil {
		return reject(RejectInvalidState, "no completed hand to score")
	}

	next := s.Clone()
	makerTeam := next.Maker.Team()
	defenderTeam := makerTeam.Opponent()

	makerTricks := next.TricksWon.TeamA
	if makerTeam == TeamB {
		makerTricks = next.TricksWon.TeamB
	}

	var points int
	var to Team
	switch {
	case makerTricks >= 3 && makerTricks < 5:
		points, to = 1, makerTeam
	case makerTricks == 5 && next.Alone:
		points, to = 4, makerTeam
	case makerTricks == 5:
		points, to = 2, makerTeam
	default:
		points, to = 2, defenderTeam
	}

	if to == TeamA {
		next.Scores.TeamA += points
	} else {
		next.Scores.TeamB += points
	}

	if next.Scores.TeamA >= next.TargetScore || next.Scores.TeamB >= next.TargetScore {
		winner := TeamA
		if next.Scores.TeamB > next.Scores.TeamA {
			winner = TeamB
		}
		next.Phase = PhaseCompleted
		next.Winner = &winner
		next.Trump = nil
		next.Maker = nil
		next.Alone = false
		next.PartnerSitsOut = nil
		return next, nil
	}

	return next, nil
}

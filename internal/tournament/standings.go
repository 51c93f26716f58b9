package tournament

import "slices"

// ComputeStandings folds the completed matches over the roster into a ranked
// table. Each player earns Win points for a strict win and nothing otherwise.
// Rows are ordered by points, then goal average, both descending; remaining
// ties keep the roster order.
//
// Matches referencing ids absent from players are ignored for those ids.
func ComputeStandings(players []Player, matches []Match) []StandingsRow {
	rows := make([]StandingsRow, 0, len(players))
	for _, player := range players {
		rows = append(rows, standingFor(player, matches))
	}

	slices.SortStableFunc(rows, func(a, b StandingsRow) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}
		return b.GoalAverage - a.GoalAverage
	})
	return rows
}

func standingFor(player Player, matches []Match) StandingsRow {
	row := StandingsRow{Player: player}
	for _, m := range matches {
		if !m.Played || !m.Involves(player.ID) {
			continue
		}
		own, opponent := scoreOf(m.ScoreA), scoreOf(m.ScoreB)
		if m.PlayerAID != player.ID {
			own, opponent = opponent, own
		}

		row.MatchesPlayed++
		row.GoalsFor += own
		row.GoalsAgainst += opponent
		if own > opponent {
			row.Points += Win
		}
	}
	row.GoalAverage = row.GoalsFor - row.GoalsAgainst
	return row
}

func scoreOf(score *int) int {
	if score == nil {
		return 0
	}
	return *score
}

package tournament

// identity leaves the order untouched.
type identity struct{}

func (identity) Shuffle(int, func(i, j int)) {}

// reverse flips the order.
type reverse struct{}

func (reverse) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func roster(ids ...int) []Player {
	players := make([]Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, Player{ID: id, DisplayName: "P" + string(rune('A'+id-1)), Active: true})
	}
	return players
}

func played(a, b, scoreA, scoreB int) Match {
	return Match{PlayerAID: a, PlayerBID: b, ScoreA: &scoreA, ScoreB: &scoreB, Played: true}
}

func ids(players []Player) []int {
	out := make([]int, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}

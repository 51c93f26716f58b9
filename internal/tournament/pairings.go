package tournament

import "github.com/dominikbraun/graph"

// PlayedPairs is the undirected "have met" relation between players. Every
// recorded match, pending or completed, adds an edge regardless of order.
type PlayedPairs struct {
	g graph.Graph[int, int]
}

// NewPlayedPairs builds the relation from a match history.
func NewPlayedPairs(matches []Match) *PlayedPairs {
	g := graph.New(graph.IntHash)
	for _, m := range matches {
		_ = g.AddVertex(m.PlayerAID)
		_ = g.AddVertex(m.PlayerBID)
		// Duplicate edges and self-loops only mean the pair is already known.
		_ = g.AddEdge(m.PlayerAID, m.PlayerBID)
	}
	return &PlayedPairs{g: g}
}

// Met reports whether a and b have faced each other in either order.
func (p *PlayedPairs) Met(a, b int) bool {
	_, err := p.g.Edge(a, b)
	return err == nil
}

// Len returns the number of distinct pairs that have met.
func (p *PlayedPairs) Len() int {
	n, err := p.g.Size()
	if err != nil {
		return 0
	}
	return n
}

// GenerateNextPairing returns a new pending match for the first unordered
// pair of active players, in roster order, that has never met.
func GenerateNextPairing(players []Player, matches []Match) (Match, error) {
	active := activeOnly(players)
	if len(active) < 2 {
		return Match{}, ErrInsufficientPlayers
	}

	played := NewPlayedPairs(matches)
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i].ID, active[j].ID
			if a == b || played.Met(a, b) {
				continue
			}
			return pending(a, b), nil
		}
	}
	return Match{}, ErrNoPairingAvailable
}

// GenerateRound pairs as many active players as possible for one round.
// Players are shuffled, then each unpaired player takes the first later
// player they have not met yet, or failing that the first later unpaired
// player. An odd player out sits the round out.
//
// The round is refused while any match in the history is still pending.
func (e *Engine) GenerateRound(players []Player, matches []Match) ([]Match, error) {
	for _, m := range matches {
		if m.Pending() {
			return nil, ErrRoundAlreadyPending
		}
	}

	active := activeOnly(players)
	if len(active) < 2 {
		return nil, ErrInsufficientPlayers
	}

	order := shuffled(active, e.shuffler)
	played := NewPlayedPairs(matches)
	used := make(map[int]bool, len(order))
	round := make([]Match, 0, len(order)/2)

	for i, a := range order {
		if used[a.ID] {
			continue
		}
		opponent := firstOpponent(order, i, used, func(b Player) bool {
			return !played.Met(a.ID, b.ID)
		})
		if opponent < 0 {
			// Everyone left has met a already; a repeat beats sitting out.
			opponent = firstOpponent(order, i, used, func(Player) bool { return true })
		}
		if opponent < 0 {
			continue
		}

		b := order[opponent]
		used[a.ID] = true
		used[b.ID] = true
		round = append(round, pending(a.ID, b.ID))
	}

	if len(round) == 0 {
		return nil, ErrNoRoundPossible
	}
	return round, nil
}

func firstOpponent(order []Player, from int, used map[int]bool, accept func(Player) bool) int {
	a := order[from]
	for j := from + 1; j < len(order); j++ {
		b := order[j]
		if used[b.ID] || b.ID == a.ID {
			continue
		}
		if accept(b) {
			return j
		}
	}
	return -1
}

func pending(a, b int) Match {
	return Match{PlayerAID: a, PlayerBID: b}
}

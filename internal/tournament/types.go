package tournament

// Player is a roster entry. Only active players are eligible for pairing.
type Player struct {
	ID          int    `json:"id" msgpack:"id"`
	DisplayName string `json:"display_name" msgpack:"display_name"`
	Active      bool   `json:"active" msgpack:"active"`
}

// Match is a one-on-one encounter between two players. A match is pending
// until Played is set, at which point both scores are expected.
type Match struct {
	ID        int  `json:"id" msgpack:"id"`
	PlayerAID int  `json:"player_a_id" msgpack:"player_a_id"`
	PlayerBID int  `json:"player_b_id" msgpack:"player_b_id"`
	ScoreA    *int `json:"score_a,omitempty" msgpack:"score_a,omitempty"`
	ScoreB    *int `json:"score_b,omitempty" msgpack:"score_b,omitempty"`
	Played    bool `json:"played" msgpack:"played"`
}

// Pending reports whether the match still awaits a result.
func (m Match) Pending() bool {
	return !m.Played
}

// Involves reports whether the player takes part in the match.
func (m Match) Involves(playerID int) bool {
	return m.PlayerAID == playerID || m.PlayerBID == playerID
}

// StandingsRow is one line of the ranked table. It is derived on demand and never stored.
type StandingsRow struct {
	Player        Player `json:"player"`
	Points        int    `json:"points"`
	MatchesPlayed int    `json:"matches_played"`
	GoalsFor      int    `json:"goals_for"`
	GoalsAgainst  int    `json:"goals_against"`
	GoalAverage   int    `json:"goal_average"`
}

// GroupKind classifies a draw grouping.
type GroupKind string

const (
	KindDoubles       GroupKind = "pair-of-2v2"
	KindDoublesExtra  GroupKind = "2v3"
	KindSingles       GroupKind = "1v1"
	KindThreeWay      GroupKind = "1v1v1"
	KindSoloUnmatched GroupKind = "solo-unmatched"
)

// PairingGroup is one head-to-head grouping produced by a draw.
type PairingGroup struct {
	Kind   GroupKind `json:"kind"`
	GroupA []Player  `json:"group_a"`
	GroupB []Player  `json:"group_b,omitempty"`
	GroupC []Player  `json:"group_c,omitempty"`
}

// Players returns every player in the group, side A first.
func (g PairingGroup) Players() []Player {
	all := make([]Player, 0, len(g.GroupA)+len(g.GroupB)+len(g.GroupC))
	all = append(all, g.GroupA...)
	all = append(all, g.GroupB...)
	return append(all, g.GroupC...)
}

// Win is the number of points awarded for a strict win. Draws and losses earn nothing.
const Win = 2

// teamSize is the number of players per side in a full draw group.
const teamSize = 2

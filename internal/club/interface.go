package club

import "github.com/mauv0809/clubhouse/internal/tournament"

// ClubStore defines the interface for interacting with the club's roster and tournament history.
type ClubStore interface {
	AddPlayer(name string) (tournament.Player, error)
	TogglePlayer(playerID int) (tournament.Player, error)
	DeletePlayer(playerID int) error
	GetPlayer(playerID int) (tournament.Player, error)
	GetAllPlayers() ([]tournament.Player, error)
	GetActivePlayers() ([]tournament.Player, error)
	GetPlayers(playerIDs []int) ([]tournament.Player, error)

	GetMatches() ([]tournament.Match, error)
	GetPendingMatches() ([]tournament.Match, error)
	GetMatch(matchID int) (tournament.Match, error)
	InsertMatches(matches []tournament.Match) ([]tournament.Match, error)
	RecordScore(matchID, scoreA, scoreB int) (tournament.Match, error)
	ClearMatches() (int64, error)
}

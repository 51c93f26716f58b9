package processor

import (
	"github.com/mauv0809/clubhouse/internal/notifier"
	"github.com/mauv0809/clubhouse/internal/tournament"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetAllPlayers() ([]tournament.Player, error)
	GetActivePlayers() ([]tournament.Player, error)
	GetPlayers(playerIDs []int) ([]tournament.Player, error)
	GetMatches() ([]tournament.Match, error)
	GetPendingMatches() ([]tournament.Match, error)
	InsertMatches(matches []tournament.Match) ([]tournament.Match, error)
	RecordScore(matchID, scoreA, scoreB int) (tournament.Match, error)
	GetMatch(matchID int) (tournament.Match, error)
	ClearMatches() (int64, error)
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}

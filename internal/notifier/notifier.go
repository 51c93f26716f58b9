package notifier

import "github.com/mauv0809/clubhouse/internal/tournament"

// Notifier defines a high-level interface for sending notifications about tournament events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For newly generated rounds and single matches
	SendRoundNotification(matches []tournament.Match, players map[int]tournament.Player, dryRun bool) error
	// For recorded results
	SendResultNotification(match tournament.Match, playerA, playerB tournament.Player, dryRun bool) error
	SendStandings(rows []tournament.StandingsRow, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(rows []tournament.StandingsRow) (any, error)
	FormatDrawResponse(groups []tournament.PairingGroup) (any, error)
	FormatErrorResponse(text string) (any, error)
}

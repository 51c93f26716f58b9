package notifier

import (
	"sync"

	"github.com/mauv0809/clubhouse/internal/tournament"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendRoundNotificationCalls []struct {
		Matches []tournament.Match
		Players map[int]tournament.Player
		DryRun  bool
	}
	SendResultNotificationCalls []struct {
		Match   tournament.Match
		PlayerA tournament.Player
		PlayerB tournament.Player
		DryRun  bool
	}
	SendStandingsCalls [][]tournament.StandingsRow
	FormatErrorCalls   []string

	// Spies
	SendRoundNotificationFunc   func(matches []tournament.Match, players map[int]tournament.Player, dryRun bool) error
	SendResultNotificationFunc  func(match tournament.Match, playerA, playerB tournament.Player, dryRun bool) error
	SendStandingsFunc           func(rows []tournament.StandingsRow, dryRun bool) error
	FormatStandingsResponseFunc func(rows []tournament.StandingsRow) (any, error)
	FormatDrawResponseFunc      func(groups []tournament.PairingGroup) (any, error)

	// Last formatted responses
	LastStandingsResponse any
	LastDrawResponse      any
	LastDrawGroups        []tournament.PairingGroup
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundNotificationCalls = nil
	m.SendResultNotificationCalls = nil
	m.SendStandingsCalls = nil
	m.FormatErrorCalls = nil
	m.LastStandingsResponse = nil
	m.LastDrawResponse = nil
	m.LastDrawGroups = nil
}

func (m *Mock) SendRoundNotification(matches []tournament.Match, players map[int]tournament.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundNotificationCalls = append(m.SendRoundNotificationCalls, struct {
		Matches []tournament.Match
		Players map[int]tournament.Player
		DryRun  bool
	}{matches, players, dryRun})
	if m.SendRoundNotificationFunc != nil {
		return m.SendRoundNotificationFunc(matches, players, dryRun)
	}
	return nil
}

func (m *Mock) SendResultNotification(match tournament.Match, playerA, playerB tournament.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Match   tournament.Match
		PlayerA tournament.Player
		PlayerB tournament.Player
		DryRun  bool
	}{match, playerA, playerB, dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(match, playerA, playerB, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(rows []tournament.StandingsRow, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, rows)
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(rows, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingsResponse(rows []tournament.StandingsRow) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStandingsResponseFunc != nil {
		resp, err := m.FormatStandingsResponseFunc(rows)
		m.LastStandingsResponse = resp
		return resp, err
	}
	m.LastStandingsResponse = "formatted_standings"
	return "formatted_standings", nil
}

func (m *Mock) FormatDrawResponse(groups []tournament.PairingGroup) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastDrawGroups = groups
	if m.FormatDrawResponseFunc != nil {
		resp, err := m.FormatDrawResponseFunc(groups)
		m.LastDrawResponse = resp
		return resp, err
	}
	m.LastDrawResponse = "formatted_draw"
	return "formatted_draw", nil
}

func (m *Mock) FormatErrorResponse(text string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatErrorCalls = append(m.FormatErrorCalls, text)
	return "formatted_error", nil
}

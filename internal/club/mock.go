package club

import (
	"sync"

	"github.com/mauv0809/clubhouse/internal/tournament"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	AddPlayerFunc         func(name string) (tournament.Player, error)
	TogglePlayerFunc      func(playerID int) (tournament.Player, error)
	DeletePlayerFunc      func(playerID int) error
	GetPlayerFunc         func(playerID int) (tournament.Player, error)
	GetAllPlayersFunc     func() ([]tournament.Player, error)
	GetActivePlayersFunc  func() ([]tournament.Player, error)
	GetPlayersFunc        func(playerIDs []int) ([]tournament.Player, error)
	GetMatchesFunc        func() ([]tournament.Match, error)
	GetPendingMatchesFunc func() ([]tournament.Match, error)
	GetMatchFunc          func(matchID int) (tournament.Match, error)
	InsertMatchesFunc     func(matches []tournament.Match) ([]tournament.Match, error)
	RecordScoreFunc       func(matchID, scoreA, scoreB int) (tournament.Match, error)
	ClearMatchesFunc      func() (int64, error)

	// Call records
	AddPlayerCalls     []string
	TogglePlayerCalls  []int
	DeletePlayerCalls  []int
	GetPlayersCalls    [][]int
	InsertMatchesCalls [][]tournament.Match
	RecordScoreCalls   []struct {
		MatchID int
		ScoreA  int
		ScoreB  int
	}
	ClearMatchesCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = nil
	m.TogglePlayerCalls = nil
	m.DeletePlayerCalls = nil
	m.GetPlayersCalls = nil
	m.InsertMatchesCalls = nil
	m.RecordScoreCalls = nil
	m.ClearMatchesCalls = 0
}

func (m *MockStore) AddPlayer(name string) (tournament.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, name)
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(name)
	}
	return tournament.Player{ID: len(m.AddPlayerCalls), DisplayName: name, Active: true}, nil
}

func (m *MockStore) TogglePlayer(playerID int) (tournament.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TogglePlayerCalls = append(m.TogglePlayerCalls, playerID)
	if m.TogglePlayerFunc != nil {
		return m.TogglePlayerFunc(playerID)
	}
	return tournament.Player{ID: playerID}, nil
}

func (m *MockStore) DeletePlayer(playerID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, playerID)
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(playerID)
	}
	return nil
}

func (m *MockStore) GetPlayer(playerID int) (tournament.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return tournament.Player{}, ErrPlayerNotFound
}

func (m *MockStore) GetAllPlayers() ([]tournament.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return []tournament.Player{}, nil
}

func (m *MockStore) GetActivePlayers() ([]tournament.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetActivePlayersFunc != nil {
		return m.GetActivePlayersFunc()
	}
	return []tournament.Player{}, nil
}

func (m *MockStore) GetPlayers(playerIDs []int) ([]tournament.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, playerIDs)
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return []tournament.Player{}, nil
}

func (m *MockStore) GetMatches() ([]tournament.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesFunc != nil {
		return m.GetMatchesFunc()
	}
	return []tournament.Match{}, nil
}

func (m *MockStore) GetPendingMatches() ([]tournament.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPendingMatchesFunc != nil {
		return m.GetPendingMatchesFunc()
	}
	return []tournament.Match{}, nil
}

func (m *MockStore) GetMatch(matchID int) (tournament.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return tournament.Match{}, ErrMatchNotFound
}

func (m *MockStore) InsertMatches(matches []tournament.Match) ([]tournament.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertMatchesCalls = append(m.InsertMatchesCalls, matches)
	if m.InsertMatchesFunc != nil {
		return m.InsertMatchesFunc(matches)
	}
	stored := make([]tournament.Match, len(matches))
	for i, match := range matches {
		match.ID = i + 1
		stored[i] = match
	}
	return stored, nil
}

func (m *MockStore) RecordScore(matchID, scoreA, scoreB int) (tournament.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordScoreCalls = append(m.RecordScoreCalls, struct {
		MatchID int
		ScoreA  int
		ScoreB  int
	}{matchID, scoreA, scoreB})
	if m.RecordScoreFunc != nil {
		return m.RecordScoreFunc(matchID, scoreA, scoreB)
	}
	return tournament.Match{ID: matchID, ScoreA: &scoreA, ScoreB: &scoreB, Played: true}, nil
}

func (m *MockStore) ClearMatches() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearMatchesCalls++
	if m.ClearMatchesFunc != nil {
		return m.ClearMatchesFunc()
	}
	return 0, nil
}

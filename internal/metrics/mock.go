package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	roundsGenerated  int
	matchesGenerated int
	scoresRecorded   int
	drawsPerformed   int
	engineDurations  map[string][]float64
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		engineDurations: make(map[string][]float64),
	}
}

func (m *Mock) IncRoundsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsGenerated++
}

func (m *Mock) IncMatchesGenerated(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesGenerated += count
}

func (m *Mock) IncScoresRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoresRecorded++
}

func (m *Mock) IncDrawsPerformed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drawsPerformed++
}

func (m *Mock) ObserveEngineDuration(operation string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engineDurations[operation] = append(m.engineDurations[operation], duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RoundsGenerated returns the number of times IncRoundsGenerated was called.
func (m *Mock) RoundsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsGenerated
}

// MatchesGenerated returns the sum of all IncMatchesGenerated counts.
func (m *Mock) MatchesGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesGenerated
}

// ScoresRecorded returns the number of times IncScoresRecorded was called.
func (m *Mock) ScoresRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoresRecorded
}

// DrawsPerformed returns the number of times IncDrawsPerformed was called.
func (m *Mock) DrawsPerformed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drawsPerformed
}

// EngineDurations returns how many durations were observed for the operation.
func (m *Mock) EngineDurations(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.engineDurations[operation])
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// MockStore is an in-memory MetricsStore for testing.
type MockStore struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewMockStore creates an empty counter store.
func NewMockStore() *MockStore {
	return &MockStore{counters: make(map[string]int)}
}

func (m *MockStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out, nil
}

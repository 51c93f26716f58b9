package processor

import (
	"sync"
	"time"

	"github.com/mauv0809/clubhouse/internal/metrics"
	"github.com/mauv0809/clubhouse/internal/pubsub"
	"github.com/mauv0809/clubhouse/internal/tournament"
)

// Processor runs every tournament operation as one read, compute, write cycle.
// Cycles that touch the match history are serialized so two concurrent
// requests can never both see "no pending match" and each store a round.
type Processor struct {
	store    Store
	engine   *tournament.Engine
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	counters metrics.MetricsStore

	mu sync.Mutex
}

// Draw is the outcome of one team draw. Draws are never stored.
type Draw struct {
	ID        string                    `json:"id"`
	CreatedAt time.Time                 `json:"created_at"`
	Groups    []tournament.PairingGroup `json:"groups"`
}

// snapshot is the tournament state an engine call works on.
type snapshot struct {
	players []tournament.Player
	matches []tournament.Match
}

const (
	opStandings     = "standings"
	opGenerateRound = "generate_round"
	opNextMatch     = "next_match"
	opDraw          = "draw"
)

package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/clubhouse/internal/tournament"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// logClient is used when no GCP project is configured. Messages are encoded
// and logged but never leave the process.
type logClient struct{}

// EventType represents the type of event/message sent via pubsub.
// The value doubles as the topic name.
type EventType string

const (
	EventRoundGenerated EventType = "round-generated"
	EventScoreRecorded  EventType = "score-recorded"
)

// RoundGeneratedEvent is published after a round or a single next match has been stored.
type RoundGeneratedEvent struct {
	EventID    string             `msgpack:"event_id"`
	OccurredAt time.Time          `msgpack:"occurred_at"`
	Matches    []tournament.Match `msgpack:"matches"`
	// Players holds the participants of Matches, keyed by id, so consumers can render names.
	Players map[int]tournament.Player `msgpack:"players"`
}

// ScoreRecordedEvent is published after a match result has been stored.
type ScoreRecordedEvent struct {
	EventID    string            `msgpack:"event_id"`
	OccurredAt time.Time         `msgpack:"occurred_at"`
	Match      tournament.Match  `msgpack:"match"`
	PlayerA    tournament.Player `msgpack:"player_a"`
	PlayerB    tournament.Player `msgpack:"player_b"`
}

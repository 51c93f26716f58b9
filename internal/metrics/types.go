package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	RoundsGenerated    prometheus.Counter
	MatchesGenerated   prometheus.Counter
	ScoresRecorded     prometheus.Counter
	DrawsPerformed     prometheus.Counter
	EngineDuration     *prometheus.HistogramVec
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// Keys of the persisted lifetime counters.
const (
	KeyRoundsGenerated = "rounds_generated"
	KeyMatchesCreated  = "matches_created"
	KeyScoresRecorded  = "scores_recorded"
	KeyDrawsPerformed  = "draws_performed"
	KeyTournamentReset = "tournament_resets"
)

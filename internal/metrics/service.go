package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RoundsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_rounds_generated_total",
			Help: "The total number of rounds generated.",
		}),
		MatchesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_matches_generated_total",
			Help: "The total number of pending matches created by the pairing engine.",
		}),
		ScoresRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_scores_recorded_total",
			Help: "The total number of match results recorded.",
		}),
		DrawsPerformed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_draws_performed_total",
			Help: "The total number of team draws performed.",
		}),
		EngineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tournament_engine_duration_seconds",
			Help:    "The duration of engine operations, including loading the tournament snapshot.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tournament_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RoundsGenerated,
		s.MatchesGenerated,
		s.ScoresRecorded,
		s.DrawsPerformed,
		s.EngineDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRoundsGenerated() {
	s.RoundsGenerated.Inc()
}

func (s *Service) IncMatchesGenerated(count int) {
	s.MatchesGenerated.Add(float64(count))
}

func (s *Service) IncScoresRecorded() {
	s.ScoresRecorded.Inc()
}

func (s *Service) IncDrawsPerformed() {
	s.DrawsPerformed.Inc()
}

func (s *Service) ObserveEngineDuration(operation string, duration float64) {
	s.EngineDuration.WithLabelValues(operation).Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}

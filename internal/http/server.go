package http

import (
	"net/http"

	"github.com/mauv0809/clubhouse/internal/club"
	"github.com/mauv0809/clubhouse/internal/config"
	"github.com/mauv0809/clubhouse/internal/http/handlers"
	"github.com/mauv0809/clubhouse/internal/metrics"
	"github.com/mauv0809/clubhouse/internal/notifier"
	"github.com/mauv0809/clubhouse/internal/processor"
	"github.com/mauv0809/clubhouse/internal/pubsub"
)

func NewServer(store club.ClubStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Slack endpoints additionally verify the request signature.
	slackVerified := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(handlers.StatsHandler(s.Processor), paramsMiddleware))

	// Roster
	s.Router.Handle("GET /players", Chain(handlers.ListPlayersHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(handlers.AddPlayerHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /players/{id}/toggle", Chain(handlers.TogglePlayerHandler(s.Store), paramsMiddleware))
	s.Router.Handle("DELETE /players/{id}", Chain(handlers.DeletePlayerHandler(s.Store), paramsMiddleware))

	// Tournament
	s.Router.Handle("GET /standings", Chain(handlers.StandingsHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(handlers.ListMatchesHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /matches/pending", Chain(handlers.PendingMatchesHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /rounds", Chain(handlers.GenerateRoundHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /matches/next", Chain(handlers.NextMatchHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(handlers.AddMatchHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/score", Chain(handlers.RecordScoreHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /tournament/reset", Chain(handlers.ResetTournamentHandler(s.Processor), paramsMiddleware))
	s.Router.Handle("POST /draws", Chain(handlers.DrawHandler(s.Processor), paramsMiddleware))

	// Slack slash commands
	s.Router.Handle("POST /slack/command/standings", Chain(handlers.StandingsCommandHandler(s.Processor, s.Notifier), paramsMiddleware, slackVerified))
	s.Router.Handle("POST /slack/command/draw", Chain(handlers.DrawCommandHandler(s.Store, s.Processor, s.Notifier), paramsMiddleware, slackVerified))

	// Pub/Sub push subscriptions
	s.Router.Handle("POST /pubsub/round-generated", Chain(handlers.RoundGeneratedHandler(s.Processor, s.pubsub), paramsMiddleware))
	s.Router.Handle("POST /pubsub/score-recorded", Chain(handlers.ScoreRecordedHandler(s.Processor, s.pubsub), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

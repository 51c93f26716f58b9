package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/clubhouse/internal/club"
	"github.com/mauv0809/clubhouse/internal/metrics"
	"github.com/mauv0809/clubhouse/internal/pubsub"
	"github.com/mauv0809/clubhouse/internal/tournament"
	"golang.org/x/sync/errgroup"
)

// New creates a new Processor.
func New(store Store, engine *tournament.Engine, notifier Notifier, metrics metrics.Metrics, counters metrics.MetricsStore, pubsub pubsub.PubSubClient) *Processor {
	if engine == nil {
		engine = tournament.New(nil)
	}
	return &Processor{
		store:    store,
		engine:   engine,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		counters: counters,
	}
}

// loadSnapshot reads the roster and the full match history concurrently.
func (p *Processor) loadSnapshot(ctx context.Context, activeOnly bool) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		if activeOnly {
			snap.players, err = p.store.GetActivePlayers()
		} else {
			snap.players, err = p.store.GetAllPlayers()
		}
		if err != nil {
			return fmt.Errorf("failed to load players: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		snap.matches, err = p.store.GetMatches()
		if err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func (p *Processor) observe(operation string, start time.Time) {
	p.metrics.ObserveEngineDuration(operation, time.Since(start).Seconds())
}

// Standings returns the ranked table of the active players.
func (p *Processor) Standings(ctx context.Context) ([]tournament.StandingsRow, error) {
	defer p.observe(opStandings, time.Now())

	snap, err := p.loadSnapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	return tournament.ComputeStandings(snap.players, snap.matches), nil
}

// PendingMatches returns the matches still waiting for a score.
func (p *Processor) PendingMatches(ctx context.Context) ([]tournament.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.store.GetPendingMatches()
}

// GenerateRound pairs the active players for a new round and stores the
// resulting pending matches.
func (p *Processor) GenerateRound(ctx context.Context, dryRun bool) ([]tournament.Match, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.observe(opGenerateRound, time.Now())

	snap, err := p.loadSnapshot(ctx, false)
	if err != nil {
		return nil, err
	}

	round, err := p.engine.GenerateRound(snap.players, snap.matches)
	if err != nil {
		log.Warn("No round generated", "reason", err, "players", len(snap.players), "pairs_met", tournament.NewPlayedPairs(snap.matches).Len())
		return nil, err
	}

	if dryRun {
		log.Info("[Dry Run] Would have stored round", "matches", len(round))
		return round, nil
	}

	stored, err := p.store.InsertMatches(round)
	if err != nil {
		return nil, fmt.Errorf("failed to store round: %w", err)
	}

	p.metrics.IncRoundsGenerated()
	p.metrics.IncMatchesGenerated(len(stored))
	p.counters.Increment(metrics.KeyRoundsGenerated)
	for range stored {
		p.counters.Increment(metrics.KeyMatchesCreated)
	}
	log.Info("Generated round", "matches", len(stored))

	p.publishRound(stored, snap.players)
	return stored, nil
}

// GenerateNextMatch stores a single pending match for the first pair of
// active players, in roster order, that has never met.
func (p *Processor) GenerateNextMatch(ctx context.Context, dryRun bool) (tournament.Match, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.observe(opNextMatch, time.Now())

	snap, err := p.loadSnapshot(ctx, false)
	if err != nil {
		return tournament.Match{}, err
	}

	match, err := tournament.GenerateNextPairing(snap.players, snap.matches)
	if err != nil {
		log.Warn("No next match generated", "reason", err)
		return tournament.Match{}, err
	}

	if dryRun {
		log.Info("[Dry Run] Would have stored next match", "player_a", match.PlayerAID, "player_b", match.PlayerBID)
		return match, nil
	}

	stored, err := p.store.InsertMatches([]tournament.Match{match})
	if err != nil {
		return tournament.Match{}, fmt.Errorf("failed to store match: %w", err)
	}

	p.metrics.IncMatchesGenerated(1)
	p.counters.Increment(metrics.KeyMatchesCreated)
	log.Info("Generated next match", "matchID", stored[0].ID, "player_a", match.PlayerAID, "player_b", match.PlayerBID)

	p.publishRound(stored, snap.players)
	return stored[0], nil
}

// RecordScore stores the result of a match. A played match may be scored again;
// the new result replaces the old one and standings follow on the next read.
func (p *Processor) RecordScore(ctx context.Context, matchID, scoreA, scoreB int, dryRun bool) (tournament.Match, error) {
	if scoreA < 0 || scoreB < 0 {
		return tournament.Match{}, fmt.Errorf("%w: scores must not be negative", club.ErrInvalidMatch)
	}
	if err := ctx.Err(); err != nil {
		return tournament.Match{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if dryRun {
		match, err := p.store.GetMatch(matchID)
		if err != nil {
			return tournament.Match{}, err
		}
		match.ScoreA, match.ScoreB, match.Played = &scoreA, &scoreB, true
		log.Info("[Dry Run] Would have recorded score", "matchID", matchID, "score_a", scoreA, "score_b", scoreB)
		return match, nil
	}

	match, err := p.store.RecordScore(matchID, scoreA, scoreB)
	if err != nil {
		return tournament.Match{}, err
	}

	p.metrics.IncScoresRecorded()
	p.counters.Increment(metrics.KeyScoresRecorded)
	p.publishScore(match)
	return match, nil
}

// AddManualMatch stores an already played match between two players.
func (p *Processor) AddManualMatch(ctx context.Context, playerA, playerB, scoreA, scoreB int, dryRun bool) (tournament.Match, error) {
	match := tournament.Match{PlayerAID: playerA, PlayerBID: playerB, ScoreA: &scoreA, ScoreB: &scoreB, Played: true}
	if playerA == playerB {
		return tournament.Match{}, fmt.Errorf("%w: a player cannot face themselves", club.ErrInvalidMatch)
	}
	if scoreA < 0 || scoreB < 0 {
		return tournament.Match{}, fmt.Errorf("%w: scores must not be negative", club.ErrInvalidMatch)
	}
	if err := ctx.Err(); err != nil {
		return tournament.Match{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	players, err := p.store.GetPlayers([]int{playerA, playerB})
	if err != nil {
		return tournament.Match{}, fmt.Errorf("failed to load players: %w", err)
	}
	if len(players) != 2 {
		return tournament.Match{}, club.ErrPlayerNotFound
	}

	if dryRun {
		log.Info("[Dry Run] Would have stored manual match", "player_a", playerA, "player_b", playerB, "score_a", scoreA, "score_b", scoreB)
		return match, nil
	}

	stored, err := p.store.InsertMatches([]tournament.Match{match})
	if err != nil {
		return tournament.Match{}, err
	}

	p.metrics.IncScoresRecorded()
	p.counters.Increment(metrics.KeyMatchesCreated)
	p.counters.Increment(metrics.KeyScoresRecorded)
	p.publishScore(stored[0])
	return stored[0], nil
}

// ResetTournament deletes the whole match history. The roster is kept.
func (p *Processor) ResetTournament(ctx context.Context, dryRun bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if dryRun {
		matches, err := p.store.GetMatches()
		if err != nil {
			return 0, err
		}
		log.Info("[Dry Run] Would have cleared tournament", "matches", len(matches))
		return int64(len(matches)), nil
	}

	n, err := p.store.ClearMatches()
	if err != nil {
		return 0, err
	}
	p.counters.Increment(metrics.KeyTournamentReset)
	log.Info("Tournament reset", "deleted_matches", n)
	return n, nil
}

// Draw splits the selected players into head-to-head groups. Unknown,
// inactive and repeated ids are ignored; no ids means every active player.
func (p *Processor) Draw(ctx context.Context, playerIDs []int) (Draw, error) {
	defer p.observe(opDraw, time.Now())
	if err := ctx.Err(); err != nil {
		return Draw{}, err
	}

	var (
		players []tournament.Player
		err     error
	)
	if len(playerIDs) == 0 {
		players, err = p.store.GetActivePlayers()
	} else {
		players, err = p.store.GetPlayers(uniqueIDs(playerIDs))
	}
	if err != nil {
		return Draw{}, fmt.Errorf("failed to load players: %w", err)
	}

	selected := make([]tournament.Player, 0, len(players))
	for _, player := range players {
		if player.Active {
			selected = append(selected, player)
		}
	}

	groups, err := p.engine.PartitionDraw(selected)
	if err != nil {
		return Draw{}, err
	}

	draw := Draw{ID: uuid.NewString(), CreatedAt: time.Now(), Groups: groups}
	p.metrics.IncDrawsPerformed()
	p.counters.Increment(metrics.KeyDrawsPerformed)
	log.Info("Performed draw", "drawID", draw.ID, "players", len(selected), "groups", len(groups))
	return draw, nil
}

// Counters returns the lifetime activity counters.
func (p *Processor) Counters() (map[string]int, error) {
	return p.counters.GetAll()
}

// NotifyRound announces newly stored matches.
func (p *Processor) NotifyRound(event pubsub.RoundGeneratedEvent, dryRun bool) error {
	if len(event.Matches) == 0 {
		log.Warn("Round event without matches", "eventID", event.EventID)
		return nil
	}
	log.Info("Sending round notification", "eventID", event.EventID, "matches", len(event.Matches))
	if err := p.notifier.SendRoundNotification(event.Matches, event.Players, dryRun); err != nil {
		return fmt.Errorf("failed to send round notification: %w", err)
	}
	return nil
}

// NotifyResult announces a recorded score followed by the updated standings.
func (p *Processor) NotifyResult(ctx context.Context, event pubsub.ScoreRecordedEvent, dryRun bool) error {
	log.Info("Sending result notification", "eventID", event.EventID, "matchID", event.Match.ID)
	if err := p.notifier.SendResultNotification(event.Match, event.PlayerA, event.PlayerB, dryRun); err != nil {
		return fmt.Errorf("failed to send result notification: %w", err)
	}

	rows, err := p.Standings(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute standings: %w", err)
	}
	if err := p.notifier.SendStandings(rows, dryRun); err != nil {
		return fmt.Errorf("failed to send standings: %w", err)
	}
	return nil
}

func (p *Processor) publishRound(matches []tournament.Match, roster []tournament.Player) {
	involved := make(map[int]tournament.Player, 2*len(matches))
	for _, player := range roster {
		for _, m := range matches {
			if m.Involves(player.ID) {
				involved[player.ID] = player
				break
			}
		}
	}
	event := pubsub.RoundGeneratedEvent{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now(),
		Matches:    matches,
		Players:    involved,
	}
	if err := p.pubsub.SendMessage(pubsub.EventRoundGenerated, event); err != nil {
		log.Error("Failed to publish round event", "error", err, "eventID", event.EventID)
	}
}

func (p *Processor) publishScore(match tournament.Match) {
	players, err := p.store.GetPlayers([]int{match.PlayerAID, match.PlayerBID})
	if err != nil {
		log.Error("Failed to load players for score event", "error", err, "matchID", match.ID)
		return
	}
	event := pubsub.ScoreRecordedEvent{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now(),
		Match:      match,
	}
	for _, player := range players {
		switch player.ID {
		case match.PlayerAID:
			event.PlayerA = player
		case match.PlayerBID:
			event.PlayerB = player
		}
	}
	if err := p.pubsub.SendMessage(pubsub.EventScoreRecorded, event); err != nil {
		log.Error("Failed to publish score event", "error", err, "eventID", event.EventID)
	}
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// IsEngineSignal reports whether err is one of the engine's expected refusals
// rather than a failure.
func IsEngineSignal(err error) bool {
	return errors.Is(err, tournament.ErrInsufficientPlayers) ||
		errors.Is(err, tournament.ErrNoPairingAvailable) ||
		errors.Is(err, tournament.ErrRoundAlreadyPending) ||
		errors.Is(err, tournament.ErrNoRoundPossible)
}

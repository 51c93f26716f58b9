package club

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/clubhouse/internal/tournament"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

const playerColumns = "id, name, active"

const matchColumns = "id, player_a_id, player_b_id, score_a, score_b, played"

// AddPlayer registers a new active player. Only a first name is kept; it doubles as display name.
func (s *store) AddPlayer(name string) (tournament.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return tournament.Player{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("INSERT INTO players (name, active, created_at) VALUES (?, 1, ?)", name, time.Now().Unix())
	if err != nil {
		return tournament.Player{}, fmt.Errorf("failed to add player: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return tournament.Player{}, fmt.Errorf("failed to read player id: %w", err)
	}

	log.Info("Added player to the roster", "playerID", id, "name", name)
	return tournament.Player{ID: int(id), DisplayName: name, Active: true}, nil
}

// TogglePlayer flips the active flag of a player and returns the updated player.
func (s *store) TogglePlayer(playerID int) (tournament.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE players SET active = 1 - active WHERE id = ?", playerID)
	if err != nil {
		return tournament.Player{}, fmt.Errorf("failed to toggle player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return tournament.Player{}, ErrPlayerNotFound
	}

	player, err := s.getPlayerLocked(playerID)
	if err != nil {
		return tournament.Player{}, err
	}
	log.Info("Toggled player", "playerID", playerID, "active", player.Active)
	return player, nil
}

// DeletePlayer removes a player. Their tournament matches are removed with them.
func (s *store) DeletePlayer(playerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrPlayerNotFound
	}
	log.Info("Deleted player", "playerID", playerID)
	return nil
}

func (s *store) GetPlayer(playerID int) (tournament.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPlayerLocked(playerID)
}

func (s *store) getPlayerLocked(playerID int) (tournament.Player, error) {
	row := s.db.QueryRow("SELECT "+playerColumns+" FROM players WHERE id = ?", playerID)
	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tournament.Player{}, ErrPlayerNotFound
		}
		return tournament.Player{}, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// GetAllPlayers returns the whole roster ordered by name.
func (s *store) GetAllPlayers() ([]tournament.Player, error) {
	return s.queryPlayers("SELECT " + playerColumns + " FROM players ORDER BY name COLLATE NOCASE, id")
}

// GetActivePlayers returns the players eligible for pairing, ordered by name.
func (s *store) GetActivePlayers() ([]tournament.Player, error) {
	return s.queryPlayers("SELECT " + playerColumns + " FROM players WHERE active = 1 ORDER BY name COLLATE NOCASE, id")
}

// GetPlayers returns the players with the given ids, ordered by name. Unknown ids are skipped.
func (s *store) GetPlayers(playerIDs []int) ([]tournament.Player, error) {
	if len(playerIDs) == 0 {
		return []tournament.Player{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(playerIDs)), ",")
	query := "SELECT " + playerColumns + " FROM players WHERE id IN (" + placeholders + ") ORDER BY name COLLATE NOCASE, id"
	return s.queryPlayers(query, ToAnySlice(playerIDs)...)
}

func (s *store) queryPlayers(query string, args ...any) ([]tournament.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := []tournament.Player{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

// GetMatches returns the full tournament history in creation order.
func (s *store) GetMatches() ([]tournament.Match, error) {
	return s.queryMatches("SELECT " + matchColumns + " FROM tournament_matches ORDER BY created_at, id")
}

// GetPendingMatches returns the matches still awaiting a score.
func (s *store) GetPendingMatches() ([]tournament.Match, error) {
	return s.queryMatches("SELECT " + matchColumns + " FROM tournament_matches WHERE played = 0 ORDER BY created_at, id")
}

func (s *store) GetMatch(matchID int) (tournament.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getMatchLocked(matchID)
}

func (s *store) getMatchLocked(matchID int) (tournament.Match, error) {
	row := s.db.QueryRow("SELECT "+matchColumns+" FROM tournament_matches WHERE id = ?", matchID)
	match, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tournament.Match{}, ErrMatchNotFound
		}
		return tournament.Match{}, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

func (s *store) queryMatches(query string, args ...any) ([]tournament.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []tournament.Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

// InsertMatches stores new matches in a single transaction and returns them with their ids.
// Pending matches are stored without scores; played ones must carry both.
func (s *store) InsertMatches(matches []tournament.Match) ([]tournament.Match, error) {
	for _, m := range matches {
		if err := validateMatch(m); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO tournament_matches (player_a_id, player_b_id, score_a, score_b, played, created_at, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	stored := make([]tournament.Match, 0, len(matches))
	for _, m := range matches {
		var scoreA, scoreB, playedAt any
		if m.Played {
			scoreA, scoreB, playedAt = *m.ScoreA, *m.ScoreB, now
		} else {
			m.ScoreA, m.ScoreB = nil, nil
		}

		res, err := stmt.Exec(m.PlayerAID, m.PlayerBID, scoreA, scoreB, m.Played, now, playedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert match %d-%d: %w", m.PlayerAID, m.PlayerBID, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read match id: %w", err)
		}
		m.ID = int(id)
		stored = append(stored, m)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit matches: %w", err)
	}
	log.Info("Inserted tournament matches", "count", len(stored))
	return stored, nil
}

// RecordScore sets both scores of a match and marks it played. Scoring an
// already played match overwrites its previous result.
func (s *store) RecordScore(matchID, scoreA, scoreB int) (tournament.Match, error) {
	if scoreA < 0 || scoreB < 0 {
		return tournament.Match{}, fmt.Errorf("%w: scores must not be negative", ErrInvalidMatch)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.getMatchLocked(matchID)
	if err != nil {
		return tournament.Match{}, err
	}
	if existing.Played {
		log.Warn("Overwriting the score of a played match", "matchID", matchID,
			"previous_a", *existing.ScoreA, "previous_b", *existing.ScoreB)
	}

	_, err = s.db.Exec(
		"UPDATE tournament_matches SET score_a = ?, score_b = ?, played = 1, played_at = ? WHERE id = ?",
		scoreA, scoreB, time.Now().Unix(), matchID,
	)
	if err != nil {
		return tournament.Match{}, fmt.Errorf("failed to record score: %w", err)
	}

	existing.ScoreA, existing.ScoreB, existing.Played = &scoreA, &scoreB, true
	log.Info("Recorded score", "matchID", matchID, "score_a", scoreA, "score_b", scoreB)
	return existing, nil
}

// ClearMatches deletes the whole tournament history and returns how many matches were removed.
func (s *store) ClearMatches() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM tournament_matches")
	if err != nil {
		return 0, fmt.Errorf("failed to clear matches: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	log.Info("Cleared tournament matches", "count", n)
	return n, nil
}

func validateMatch(m tournament.Match) error {
	if m.PlayerAID == m.PlayerBID {
		return fmt.Errorf("%w: a player cannot face themselves", ErrInvalidMatch)
	}
	if !m.Played {
		return nil
	}
	if m.ScoreA == nil || m.ScoreB == nil {
		return fmt.Errorf("%w: a played match needs both scores", ErrInvalidMatch)
	}
	if *m.ScoreA < 0 || *m.ScoreB < 0 {
		return fmt.Errorf("%w: scores must not be negative", ErrInvalidMatch)
	}
	return nil
}

type scanner interface{ Scan(...any) error }

func scanPlayer(row scanner) (tournament.Player, error) {
	var p tournament.Player
	var name sql.NullString
	if err := row.Scan(&p.ID, &name, &p.Active); err != nil {
		return tournament.Player{}, err
	}
	p.DisplayName = name.String
	return p, nil
}

func scanMatch(row scanner) (tournament.Match, error) {
	var m tournament.Match
	var scoreA, scoreB sql.NullInt64
	if err := row.Scan(&m.ID, &m.PlayerAID, &m.PlayerBID, &scoreA, &scoreB, &m.Played); err != nil {
		return tournament.Match{}, err
	}
	if scoreA.Valid {
		a := int(scoreA.Int64)
		m.ScoreA = &a
	}
	if scoreB.Valid {
		b := int(scoreB.Int64)
		m.ScoreB = &b
	}
	return m, nil
}

func ToAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}

package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/clubhouse/internal/club"
	"github.com/mauv0809/clubhouse/internal/config"
	"github.com/mauv0809/clubhouse/internal/database"
	"github.com/mauv0809/clubhouse/internal/metrics"
	"github.com/mauv0809/clubhouse/internal/notifier"
	"github.com/mauv0809/clubhouse/internal/processor"
	"github.com/mauv0809/clubhouse/internal/pubsub"
	"github.com/mauv0809/clubhouse/internal/tournament"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testSlackSigningSecret = "test-signing-secret"

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, notifier notifier.Notifier, slackSigningSecret string) (*Server, *pubsub.MockPubSubClient, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	clubStore := club.New(db)
	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: slackSigningSecret}}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	pubsubClient := pubsub.NewMock()
	engine := tournament.New(tournament.NewSeededShuffler(7))
	proc := processor.New(clubStore, engine, notifier, metricsSvc, metrics.New(db), pubsubClient)
	server := NewServer(clubStore, metricsSvc, metricsHandler, cfg, notifier, proc, pubsubClient)

	return server, pubsubClient, dbTeardown
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := form.Encode()
	req, err := http.NewRequest("POST", targetURL, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

func serve(s *Server, method, target string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func addPlayers(t *testing.T, s *Server, names ...string) []tournament.Player {
	t.Helper()
	out := make([]tournament.Player, 0, len(names))
	for _, name := range names {
		p, err := s.Store.AddPlayer(name)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	rr := serve(server, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestRosterHandlers(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	rr := serve(server, "POST", "/players", map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var alice tournament.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &alice))
	assert.True(t, alice.Active)

	rr = serve(server, "POST", "/players", map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(server, "POST", "/players", map[string]string{"nom": "Bob"})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unknown fields are rejected")

	rr = serve(server, "POST", fmt.Sprintf("/players/%d/toggle", alice.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"active":false`)

	rr = serve(server, "GET", "/players?active=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = serve(server, "GET", "/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")

	rr = serve(server, "DELETE", fmt.Sprintf("/players/%d?dry_run=true", alice.ID), nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	_, err := server.Store.GetPlayer(alice.ID)
	require.NoError(t, err, "dry run keeps the player")

	rr = serve(server, "DELETE", fmt.Sprintf("/players/%d", alice.ID), nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(server, "DELETE", fmt.Sprintf("/players/%d", alice.ID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(server, "POST", "/players/abc/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTournamentFlow(t *testing.T) {
	server, pubsubClient, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	t.Run("a round needs two active players", func(t *testing.T) {
		addPlayers(t, server, "Alice")
		rr := serve(server, "POST", "/rounds", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	addPlayers(t, server, "Bob", "Chloé", "Dan")

	t.Run("dry run stores nothing", func(t *testing.T) {
		rr := serve(server, "POST", "/rounds?dry_run=true", nil)
		require.Equal(t, http.StatusCreated, rr.Code)
		matches, err := server.Store.GetMatches()
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	rr := serve(server, "POST", "/rounds", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var round []tournament.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &round))
	require.Len(t, round, 2)
	assert.Len(t, pubsubClient.Calls(), 1)

	rr = serve(server, "POST", "/rounds", nil)
	assert.Equal(t, http.StatusConflict, rr.Code, "a second round waits for the pending matches")

	rr = serve(server, "GET", "/matches/pending", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"count":2`)

	for i, m := range round {
		rr = serve(server, "POST", fmt.Sprintf("/matches/%d/score", m.ID), map[string]int{"score_a": 3 + i, "score_b": 1})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr = serve(server, "POST", fmt.Sprintf("/matches/%d/score", round[0].ID), map[string]int{"score_a": 3})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "both scores are required")

	rr = serve(server, "POST", "/matches/999/score", map[string]int{"score_a": 1, "score_b": 0})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(server, "GET", "/standings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var rows []tournament.StandingsRow
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, tournament.Win, rows[0].Points)
	assert.Equal(t, 3, rows[0].GoalAverage)

	rr = serve(server, "POST", "/matches/next", nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(server, "POST", "/tournament/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"deleted":3}`, rr.Body.String())

	rr = serve(server, "GET", "/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"rounds_generated":1`)
}

func TestAddMatchHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()
	ps := addPlayers(t, server, "Alice", "Bob")

	rr := serve(server, "POST", "/matches", map[string]int{"player_a_id": ps[0].ID, "player_b_id": ps[0].ID, "score_a": 1, "score_b": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(server, "POST", "/matches", map[string]int{"player_a_id": ps[0].ID, "player_b_id": 999, "score_a": 1, "score_b": 0})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(server, "POST", "/matches", map[string]int{"player_a_id": ps[0].ID, "player_b_id": ps[1].ID, "score_a": 2, "score_b": 5})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(server, "GET", "/matches", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var matches []tournament.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Played)
}

func TestDrawHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()
	ps := addPlayers(t, server, "Alice", "Bob", "Chloé", "Dan", "Eve")

	rr := serve(server, "POST", "/draws", map[string][]int{"player_ids": {ps[0].ID, ps[1].ID, ps[2].ID}})
	require.Equal(t, http.StatusOK, rr.Code)
	var draw processor.Draw
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &draw))
	assert.NotEmpty(t, draw.ID)
	require.Len(t, draw.Groups, 1)
	assert.Equal(t, tournament.KindThreeWay, draw.Groups[0].Kind)

	rr = serve(server, "POST", "/draws", nil)
	require.Equal(t, http.StatusOK, rr.Code, "an empty body draws every active player")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &draw))
	assert.Equal(t, tournament.KindDoublesExtra, draw.Groups[0].Kind)

	rr = serve(server, "POST", "/draws", map[string][]int{"player_ids": {ps[0].ID}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestStandingsCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatStandingsResponseFunc = func(rows []tournament.StandingsRow) (any, error) {
		return slack.Message{}, nil
	}
	server, _, teardown := setupTestServer(t, mockNotifier, testSlackSigningSecret)
	defer teardown()
	addPlayers(t, server, "Alice", "Bob")

	t.Run("valid signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{"command": {"/standings"}}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	})

	t.Run("wrong signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/standings", url.Values{"command": {"/standings"}}, "another-secret")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing headers", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/slack/command/standings", strings.NewReader("command=%2Fstandings"))
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestDrawCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatDrawResponseFunc = func(groups []tournament.PairingGroup) (any, error) {
		return slack.Message{}, nil
	}
	server, _, teardown := setupTestServer(t, mockNotifier, testSlackSigningSecret)
	defer teardown()
	addPlayers(t, server, "Alice", "Bob", "Chloé", "Dan")

	t.Run("names resolve case-insensitively", func(t *testing.T) {
		form := url.Values{"text": {"alice, BOB chloé"}}
		req := createSlackCommandRequest(t, "/slack/command/draw", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.LastDrawGroups, 1)
		assert.Equal(t, tournament.KindThreeWay, mockNotifier.LastDrawGroups[0].Kind)
	})

	t.Run("unknown names are reported", func(t *testing.T) {
		form := url.Values{"text": {"alice zed"}}
		req := createSlackCommandRequest(t, "/slack/command/draw", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Len(t, mockNotifier.FormatErrorCalls, 1)
		assert.Contains(t, mockNotifier.FormatErrorCalls[0], "zed")
	})

	t.Run("empty text draws every active player", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/draw", url.Values{"text": {""}}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.LastDrawGroups, 1)
		assert.Equal(t, tournament.KindDoubles, mockNotifier.LastDrawGroups[0].Kind)
	})
}

func pushBody(t *testing.T, event any) map[string]any {
	t.Helper()
	data, err := msgpack.Marshal(event)
	require.NoError(t, err)
	return map[string]any{
		"subscription": "projects/club/subscriptions/round-generated-push",
		"message": map[string]string{
			"messageId": "1",
			"data":      base64.StdEncoding.EncodeToString(data),
		},
	}
}

func TestPubSubHandlers(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, _, teardown := setupTestServer(t, mockNotifier, "")
	defer teardown()

	round := pubsub.RoundGeneratedEvent{
		EventID: "evt-round",
		Matches: []tournament.Match{{ID: 1, PlayerAID: 1, PlayerBID: 2}},
		Players: map[int]tournament.Player{1: {ID: 1, DisplayName: "Alice"}, 2: {ID: 2, DisplayName: "Bob"}},
	}
	rr := serve(server, "POST", "/pubsub/round-generated?dry_run=true", pushBody(t, round))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mockNotifier.SendRoundNotificationCalls, 1)
	assert.True(t, mockNotifier.SendRoundNotificationCalls[0].DryRun)
	assert.Equal(t, "Bob", mockNotifier.SendRoundNotificationCalls[0].Players[2].DisplayName)

	a, b := 2, 2
	score := pubsub.ScoreRecordedEvent{
		EventID: "evt-score",
		Match:   tournament.Match{ID: 1, PlayerAID: 1, PlayerBID: 2, ScoreA: &a, ScoreB: &b, Played: true},
		PlayerA: tournament.Player{ID: 1, DisplayName: "Alice"},
		PlayerB: tournament.Player{ID: 2, DisplayName: "Bob"},
	}
	rr = serve(server, "POST", "/pubsub/score-recorded", pushBody(t, score))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mockNotifier.SendResultNotificationCalls, 1)
	assert.Equal(t, 2, *mockNotifier.SendResultNotificationCalls[0].Match.ScoreB)
	assert.Len(t, mockNotifier.SendStandingsCalls, 1)

	rr = serve(server, "POST", "/pubsub/score-recorded", map[string]any{"message": map[string]string{"data": "%%%"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()
	addPlayers(t, server, "Alice", "Bob")

	rr := serve(server, "POST", "/draws", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(server, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "tournament_draws_performed_total 1")
}

package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/clubhouse/internal/metrics"
	"github.com/mauv0809/clubhouse/internal/notifier"
	"github.com/mauv0809/clubhouse/internal/tournament"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendRoundNotification(matches []tournament.Match, players map[int]tournament.Player, dryRun bool) error {
	msg := s.formatRoundNotification(matches, players)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendResultNotification(match tournament.Match, playerA, playerB tournament.Player, dryRun bool) error {
	msg := s.formatResultNotification(match, playerA, playerB)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStandings(rows []tournament.StandingsRow, dryRun bool) error {
	msg := s.formatStandings(rows)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse formats the standings table for a slash command response.
func (s *Notifier) FormatStandingsResponse(rows []tournament.StandingsRow) (any, error) {
	msg := s.formatStandings(rows)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg, nil
}

// FormatDrawResponse formats a team draw for a slash command response.
func (s *Notifier) FormatDrawResponse(groups []tournament.PairingGroup) (any, error) {
	msg := s.formatDraw(groups)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg, nil
}

// FormatErrorResponse formats a message only the caller of a slash command sees.
func (s *Notifier) FormatErrorResponse(text string) (any, error) {
	msg := slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
	msg.ResponseType = slack.ResponseTypeEphemeral
	return msg, nil
}

// formatRoundNotification creates the Slack message announcing new pending matches using Block Kit.
func (s *Notifier) formatRoundNotification(matches []tournament.Match, players map[int]tournament.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	title := "🎲 New round drawn! 🎲"
	if len(matches) == 1 {
		title = "🎲 Next match drawn! 🎲"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("• %s vs %s", nameOf(players, m.PlayerAID), nameOf(players, m.PlayerBID)))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", "Report your score once the match is played.", true, false),
	))

	return slack.NewBlockMessage(blocks...)
}

// formatResultNotification creates the Slack message for a scored match using Block Kit.
func (s *Notifier) formatResultNotification(match tournament.Match, playerA, playerB tournament.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🏁 Match finished! 🏁", true, false)))

	if match.ScoreA == nil || match.ScoreB == nil {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Result: No scores reported.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	scoreA, scoreB := *match.ScoreA, *match.ScoreB
	scoreText := fmt.Sprintf("%s %d - %d %s", playerA.DisplayName, scoreA, scoreB, playerB.DisplayName)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	var outcome string
	switch {
	case scoreA > scoreB:
		outcome = fmt.Sprintf("%s won! 🏆", playerA.DisplayName)
	case scoreB > scoreA:
		outcome = fmt.Sprintf("%s won! 🏆", playerB.DisplayName)
	default:
		outcome = "It's a draw. No points awarded."
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", outcome, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates a Slack message to display the tournament table.
func (s *Notifier) formatStandings(rows []tournament.StandingsRow) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🏆 Tournament Standings 🏆", true, false)))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No active players yet. Add some to the roster!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, row := range rows {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		rowText := fmt.Sprintf("%d. %s %s\n> Points: %d | Played: %d | Goals: %d-%d | Average: %+d",
			rank,
			medal,
			row.Player.DisplayName,
			row.Points,
			row.MatchesPlayed,
			row.GoalsFor,
			row.GoalsAgainst,
			row.GoalAverage,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", rowText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatDraw creates a Slack message listing the drawn groups, one section per court.
func (s *Notifier) formatDraw(groups []tournament.PairingGroup) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🎲 Team Draw 🎲", true, false)))

	if len(groups) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Nobody to draw.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, g := range groups {
		var line string
		switch g.Kind {
		case tournament.KindThreeWay:
			line = fmt.Sprintf("%s vs %s vs %s", teamName(g.GroupA), teamName(g.GroupB), teamName(g.GroupC))
		case tournament.KindSoloUnmatched:
			line = fmt.Sprintf("%s sits this one out", teamName(g.GroupA))
		default:
			line = fmt.Sprintf("%s vs %s", teamName(g.GroupA), teamName(g.GroupB))
		}
		text := fmt.Sprintf("*Court %d* (%s)\n%s", i+1, g.Kind, line)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func teamName(players []tournament.Player) string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.DisplayName
	}
	return strings.Join(names, " & ")
}

func nameOf(players map[int]tournament.Player, id int) string {
	if p, ok := players[id]; ok && p.DisplayName != "" {
		return p.DisplayName
	}
	return fmt.Sprintf("Player #%d", id)
}

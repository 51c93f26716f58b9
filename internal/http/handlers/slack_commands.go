package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/clubhouse/internal/club"
	"github.com/mauv0809/clubhouse/internal/notifier"
	"github.com/mauv0809/clubhouse/internal/processor"
	"github.com/mauv0809/clubhouse/internal/tournament"
)

func StandingsCommandHandler(proc *processor.Processor, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := proc.Standings(r.Context())
		if err != nil {
			http.Error(w, "Failed to compute standings", http.StatusInternalServerError)
			log.Error("Failed to compute standings", "error", err)
			return
		}

		msg, err := notifier.FormatStandingsResponse(rows)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// DrawCommandHandler draws teams from the players named in the command text.
// Names match the roster case-insensitively; numeric tokens are player ids.
// Without text every active player is drawn.
func DrawCommandHandler(store club.ClubStore, proc *processor.Processor, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}

		tokens := parseDrawText(r.FormValue("text"))
		log.Info("Received draw command", "tokens", len(tokens), "user", r.FormValue("user_name"))

		var ids []int
		if len(tokens) > 0 {
			roster, err := store.GetAllPlayers()
			if err != nil {
				http.Error(w, "Failed to get players", http.StatusInternalServerError)
				log.Error("Failed to get players from store", "error", err)
				return
			}
			var unknown []string
			ids, unknown = resolvePlayers(tokens, roster)
			if len(unknown) > 0 {
				respondWithSlackText(w, notifier, fmt.Sprintf("Sorry, I couldn't find *%s* in the roster.", strings.Join(unknown, ", ")))
				return
			}
		}

		draw, err := proc.Draw(r.Context(), ids)
		if err != nil {
			if processor.IsEngineSignal(err) {
				respondWithSlackText(w, notifier, "I need at least two active players to draw teams.")
				return
			}
			http.Error(w, "Failed to draw teams", http.StatusInternalServerError)
			log.Error("Failed to draw teams", "error", err)
			return
		}

		msg, err := notifier.FormatDrawResponse(draw.Groups)
		if err != nil {
			http.Error(w, "Failed to format draw", http.StatusInternalServerError)
			log.Error("Failed to format draw", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func respondWithSlackText(w http.ResponseWriter, notifier notifier.Notifier, text string) {
	msg, err := notifier.FormatErrorResponse(text)
	if err != nil {
		http.Error(w, text, http.StatusOK)
		return
	}
	respondWithSlackMsg(w, msg)
}

// parseDrawText splits slash command text on commas and whitespace.
func parseDrawText(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func resolvePlayers(tokens []string, roster []tournament.Player) (ids []int, unknown []string) {
	for _, token := range tokens {
		if id, err := strconv.Atoi(token); err == nil {
			ids = append(ids, id)
			continue
		}
		found := false
		for _, player := range roster {
			if strings.EqualFold(player.DisplayName, token) {
				ids = append(ids, player.ID)
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, token)
		}
	}
	return ids, unknown
}

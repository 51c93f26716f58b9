package handlers

import (
	"net/http"

	"github.com/mauv0809/clubhouse/internal/club"
	"github.com/mauv0809/clubhouse/internal/processor"
)

func StandingsHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := proc.Standings(r.Context())
		if err != nil {
			respondWithError(w, err, "Failed to compute standings")
			return
		}
		respondWithJSON(w, http.StatusOK, rows)
	}
}

func ListMatchesHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.GetMatches()
		if err != nil {
			respondWithError(w, err, "Failed to get matches")
			return
		}
		respondWithJSON(w, http.StatusOK, matches)
	}
}

type pendingResponse struct {
	Count   int `json:"count"`
	Matches any `json:"matches"`
}

func PendingMatchesHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := proc.PendingMatches(r.Context())
		if err != nil {
			respondWithError(w, err, "Failed to get pending matches")
			return
		}
		respondWithJSON(w, http.StatusOK, pendingResponse{Count: len(matches), Matches: matches})
	}
}

func GenerateRoundHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, err := proc.GenerateRound(r.Context(), IsDryRunFromContext(r))
		if err != nil {
			respondWithError(w, err, "Failed to generate round")
			return
		}
		respondWithJSON(w, http.StatusCreated, round)
	}
}

func NextMatchHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := proc.GenerateNextMatch(r.Context(), IsDryRunFromContext(r))
		if err != nil {
			respondWithError(w, err, "Failed to generate next match")
			return
		}
		respondWithJSON(w, http.StatusCreated, match)
	}
}

type manualMatchRequest struct {
	PlayerAID int `json:"player_a_id"`
	PlayerBID int `json:"player_b_id"`
	ScoreA    int `json:"score_a"`
	ScoreB    int `json:"score_b"`
}

func AddMatchHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req manualMatchRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		match, err := proc.AddManualMatch(r.Context(), req.PlayerAID, req.PlayerBID, req.ScoreA, req.ScoreB, IsDryRunFromContext(r))
		if err != nil {
			respondWithError(w, err, "Failed to add match")
			return
		}
		respondWithJSON(w, http.StatusCreated, match)
	}
}

type scoreRequest struct {
	ScoreA *int `json:"score_a"`
	ScoreB *int `json:"score_b"`
}

func RecordScoreHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var req scoreRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.ScoreA == nil || req.ScoreB == nil {
			http.Error(w, "both score_a and score_b are required", http.StatusBadRequest)
			return
		}
		match, err := proc.RecordScore(r.Context(), id, *req.ScoreA, *req.ScoreB, IsDryRunFromContext(r))
		if err != nil {
			respondWithError(w, err, "Failed to record score")
			return
		}
		respondWithJSON(w, http.StatusOK, match)
	}
}

type resetResponse struct {
	Deleted int64 `json:"deleted"`
}

func ResetTournamentHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := proc.ResetTournament(r.Context(), IsDryRunFromContext(r))
		if err != nil {
			respondWithError(w, err, "Failed to reset tournament")
			return
		}
		respondWithJSON(w, http.StatusOK, resetResponse{Deleted: n})
	}
}

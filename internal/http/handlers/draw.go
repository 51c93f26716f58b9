package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/mauv0809/clubhouse/internal/processor"
)

type drawRequest struct {
	PlayerIDs []int `json:"player_ids"`
}

// DrawHandler splits the posted players into groups. An empty body draws every active player.
func DrawHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req drawRequest
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		draw, err := proc.Draw(r.Context(), req.PlayerIDs)
		if err != nil {
			respondWithError(w, err, "Failed to draw teams")
			return
		}
		respondWithJSON(w, http.StatusOK, draw)
	}
}

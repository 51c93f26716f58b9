package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/clubhouse/internal/club"
)

func ListPlayersHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			players any
			err     error
		)
		if r.URL.Query().Get("active") == "true" {
			players, err = store.GetActivePlayers()
		} else {
			players, err = store.GetAllPlayers()
		}
		if err != nil {
			respondWithError(w, err, "Failed to get players")
			return
		}
		respondWithJSON(w, http.StatusOK, players)
	}
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

func AddPlayerHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPlayerRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would have added player", "name", req.Name)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		player, err := store.AddPlayer(req.Name)
		if err != nil {
			respondWithError(w, err, "Failed to add player")
			return
		}
		respondWithJSON(w, http.StatusCreated, player)
	}
}

func TogglePlayerHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if IsDryRunFromContext(r) {
			player, err := store.GetPlayer(id)
			if err != nil {
				respondWithError(w, err, "Failed to get player")
				return
			}
			player.Active = !player.Active
			log.Info("[Dry Run] Would have toggled player", "playerID", id, "active", player.Active)
			respondWithJSON(w, http.StatusOK, player)
			return
		}
		player, err := store.TogglePlayer(id)
		if err != nil {
			respondWithError(w, err, "Failed to toggle player")
			return
		}
		respondWithJSON(w, http.StatusOK, player)
	}
}

func DeletePlayerHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would have deleted player", "playerID", id)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := store.DeletePlayer(id); err != nil {
			respondWithError(w, err, "Failed to delete player")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/clubhouse/internal/processor"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler returns the lifetime activity counters.
func StatsHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := proc.Counters()
		if err != nil {
			respondWithError(w, err, "Failed to get counters")
			return
		}
		respondWithJSON(w, http.StatusOK, counters)
	}
}

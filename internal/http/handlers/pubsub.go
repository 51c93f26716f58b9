package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/clubhouse/internal/processor"
	"github.com/mauv0809/clubhouse/internal/pubsub"
)

// RoundGeneratedHandler receives round-generated pushes and announces the matches.
func RoundGeneratedHandler(proc *processor.Processor, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, ok := readPushPayload(w, r)
		if !ok {
			return
		}

		event := pubsub.RoundGeneratedEvent{}
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			// Acked so the undecodable payload is not redelivered.
			log.Error("Dropping undecodable round event", "error", err)
			w.Write([]byte("OK"))
			return
		}

		if err := proc.NotifyRound(event, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify round", "error", err, "eventID", event.EventID)
			http.Error(w, "Failed to notify round", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// ScoreRecordedHandler receives score-recorded pushes and announces the result
// and the updated standings.
func ScoreRecordedHandler(proc *processor.Processor, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, ok := readPushPayload(w, r)
		if !ok {
			return
		}

		event := pubsub.ScoreRecordedEvent{}
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			log.Error("Dropping undecodable score event", "error", err)
			w.Write([]byte("OK"))
			return
		}

		if err := proc.NotifyResult(r.Context(), event, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify result", "error", err, "eventID", event.EventID)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

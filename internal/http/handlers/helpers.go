package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/clubhouse/internal/club"
	"github.com/mauv0809/clubhouse/internal/processor"
	"github.com/mauv0809/clubhouse/internal/tournament"
	"github.com/slack-go/slack"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// respondWithJSON writes v as the JSON response body.
func respondWithJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondWithError maps domain errors to status codes. Engine refusals are
// expected outcomes and only logged at warn level.
func respondWithError(w http.ResponseWriter, err error, msg string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	if processor.IsEngineSignal(err) {
		log.Warn(msg, "reason", err)
	} else {
		log.Info(msg, "reason", err)
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tournament.ErrRoundAlreadyPending),
		errors.Is(err, tournament.ErrNoPairingAvailable),
		errors.Is(err, tournament.ErrNoRoundPossible):
		return http.StatusConflict
	case errors.Is(err, tournament.ErrInsufficientPlayers):
		return http.StatusUnprocessableEntity
	case errors.Is(err, club.ErrPlayerNotFound), errors.Is(err, club.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, club.ErrInvalidMatch), errors.Is(err, club.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	respondWithJSON(w, http.StatusOK, slackMsg)
}

// pathID reads a positive integer path parameter.
func pathID(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// decodeJSON reads a JSON request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// pushEnvelope is the JSON body of a Pub/Sub push delivery.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"` // base64-encoded message payload
	} `json:"message"`
}

// readPushPayload unwraps a Pub/Sub push request into the raw MessagePack bytes.
func readPushPayload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return nil, false
	}

	var envelope pushEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		log.Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return nil, false
	}
	log.Debug("Received push message", "subscription", envelope.Subscription, "messageID", envelope.Message.ID)

	rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		log.Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return nil, false
	}
	return rawData, true
}

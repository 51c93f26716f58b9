package tournament

import "errors"

// Signals returned by the engine. None of them indicate a defect; callers
// branch on them with errors.Is to produce a user-facing message.
var (
	ErrInsufficientPlayers = errors.New("at least 2 players are required")
	ErrNoPairingAvailable  = errors.New("every pair of active players has already met")
	ErrRoundAlreadyPending = errors.New("a round is still pending")
	ErrNoRoundPossible     = errors.New("no pairing could be formed for a new round")
)

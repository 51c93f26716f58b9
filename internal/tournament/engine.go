// Package tournament holds the pairing and standings rules of the club's
// internal one-on-one tournament and of ad-hoc team draws.
//
// Every function is a pure computation over the records it is given. The
// engine keeps no state between calls apart from its shuffle source; callers
// own persistence and must serialize their read-compute-write cycles.
package tournament

// Engine bundles the randomized operations with their shuffle source.
type Engine struct {
	shuffler Shuffler
}

// New returns an Engine. A nil shuffler falls back to the process-wide random source.
func New(shuffler Shuffler) *Engine {
	if shuffler == nil {
		shuffler = globalShuffler{}
	}
	return &Engine{shuffler: shuffler}
}

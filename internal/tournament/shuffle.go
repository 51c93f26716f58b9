package tournament

import (
	"math/rand/v2"
	"sync"
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// lockedShuffler serializes access to a seeded *rand.Rand, which is not safe for concurrent use.
type lockedShuffler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedShuffler) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rnd.Shuffle(n, swap)
}

// NewSeededShuffler returns a deterministic shuffler. The same seed always
// yields the same sequence of permutations.
func NewSeededShuffler(seed uint64) Shuffler {
	return &lockedShuffler{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func shuffled(players []Player, s Shuffler) []Player {
	out := make([]Player, len(players))
	copy(out, players)
	s.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func activeOnly(players []Player) []Player {
	active := make([]Player, 0, len(players))
	for _, p := range players {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

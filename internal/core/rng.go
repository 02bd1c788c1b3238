package core

import (
	"math/rand/v2"
	"sync"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// Seeder hands out one independent RandomSource per render. A seeded Seeder
// uses seed, seed+1, ... so a whole session can be replayed; an unseeded one
// draws fresh entropy every time.
type Seeder struct {
	mu     sync.Mutex
	seeded bool
	next   int64
}

// NewSeeder returns a Seeder. A zero seed means unseeded.
func NewSeeder(seed int64) *Seeder {
	return &Seeder{seeded: seed != 0, next: seed}
}

// Next returns a fresh source for one render. Safe for concurrent use.
func (s *Seeder) Next() RandomSource {
	if !s.seeded {
		return NewRNG(rand.Int64())
	}
	s.mu.Lock()
	seed := s.next
	s.next++
	s.mu.Unlock()
	return NewRNG(seed)
}

// Sequence replays a fixed list of draws, cycling when exhausted. An empty
// Sequence always yields 0.
type Sequence struct {
	values []float64
	n      int
}

// NewSequence returns a Sequence over values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next value.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		s.n++
		return 0
	}
	v := s.values[s.n%len(s.values)]
	s.n++
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int { return s.n }

package render

import (
	"log/slog"
	"sync"
	"time"

	"csca/internal/core"
)

// RenderFunc produces a buffer of the given size.
type RenderFunc func(p core.Params, size core.Size, rng core.RandomSource) *core.PixelBuffer

// Scheduler runs renders in the background and delivers only the newest
// request's result to the sink. Results of superseded requests are dropped.
type Scheduler struct {
	render RenderFunc
	sink   core.Sink
	seeder *core.Seeder
	log    *slog.Logger

	mu        sync.Mutex
	size      core.Size
	requested uint64
	delivered uint64

	wg sync.WaitGroup
}

// NewScheduler wires a render function to a sink. The sink is called with the
// scheduler's lock held and must not call back into the scheduler.
func NewScheduler(fn RenderFunc, sink core.Sink, seeder *core.Seeder, size core.Size, log *slog.Logger) *Scheduler {
	if seeder == nil {
		seeder = core.NewSeeder(0)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{render: fn, sink: sink, seeder: seeder, size: size, log: log}
}

// SetSize changes the canvas size used by later requests.
func (s *Scheduler) SetSize(size core.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = size
}

// Size returns the canvas size used for new requests.
func (s *Scheduler) Size() core.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Request starts a render of p and returns its generation number. p should
// be a snapshot taken by the caller; the scheduler never rereads parameters.
func (s *Scheduler) Request(p core.Params) uint64 {
	s.mu.Lock()
	s.requested++
	gen := s.requested
	size := s.size
	s.mu.Unlock()

	rng := s.seeder.Next()
	s.log.Debug("render requested", "gen", gen, "w", size.W, "h", size.H,
		"a", p.A, "b", p.B, "c", p.C, "d", p.D)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		start := time.Now()
		buf := s.render(p, size, rng)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.requested {
			s.log.Debug("render superseded", "gen", gen, "latest", s.requested)
			return
		}
		s.delivered = gen
		s.sink.Present(buf)
		s.log.Debug("render delivered", "gen", gen, "elapsed", time.Since(start))
	}()
	return gen
}

// Delivered returns the generation of the last buffer handed to the sink.
func (s *Scheduler) Delivered() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered
}

// Wait blocks until every started render has finished.
func (s *Scheduler) Wait() { s.wg.Wait() }

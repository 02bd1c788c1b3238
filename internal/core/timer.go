package core

import "time"

// FixedStep paces a repeated action at a steady rate, optionally after an
// initial delay. The HUD uses it for auto-repeat on held buttons.
type FixedStep struct {
	step        time.Duration
	delay       time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given rate.
// The first call to ShouldStep reports true.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// SetDelay sets how long Reset holds off the first step.
func (f *FixedStep) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	f.delay = d
}

// Reset restarts pacing; the next step fires after delay plus one period.
func (f *FixedStep) Reset() {
	f.last = time.Time{}
	f.accumulator = -f.delay
}

// ShouldStep reports whether the action should run now.
func (f *FixedStep) ShouldStep() bool { return f.ShouldStepAt(time.Now()) }

// ShouldStepAt is ShouldStep with an explicit clock reading.
func (f *FixedStep) ShouldStepAt(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

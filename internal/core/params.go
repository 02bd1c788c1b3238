package core

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// ParameterControl describes how a parameter should be exposed on a control
// panel. Bounds apply to stepped adjustments only; typed values may leave
// them.
type ParameterControl struct {
	Key   string
	Label string

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// Clamp limits v to the control's bounds.
func (c ParameterControl) Clamp(v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

// Nudge moves v by n steps, clamps it to the bounds and snaps it to the step
// grid.
func (c ParameterControl) Nudge(v float64, n int) float64 {
	v = c.Clamp(v + float64(n)*c.Step)
	if c.Step <= 0 {
		return v
	}
	inv := 1 / c.Step
	return math.Round(v*inv) / inv
}

// Parameter is an observable real-valued scalar. Writes of non-finite values
// are ignored. Observers run synchronously, in registration order, on the
// writing goroutine.
type Parameter struct {
	key string
	mu  *sync.RWMutex

	value     float64
	observers []func(float64)
}

// NewParameter returns a standalone parameter holding initial.
func NewParameter(key string, initial float64) *Parameter {
	return &Parameter{key: key, mu: &sync.RWMutex{}, value: initial}
}

// Key returns the parameter name.
func (p *Parameter) Key() string { return p.key }

// Get returns the current value.
func (p *Parameter) Get() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set stores v and notifies observers. It reports false, leaving the value
// untouched and notifying nobody, when v is NaN or infinite.
func (p *Parameter) Set(v float64) bool {
	if !isFinite(v) {
		return false
	}
	p.mu.Lock()
	p.value = v
	observers := slices.Clone(p.observers)
	p.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
	return true
}

// SetString parses s as a real number and stores it. Text that does not
// parse is ignored.
func (p *Parameter) SetString(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false
	}
	return p.Set(v)
}

// Subscribe registers fn and immediately calls it with the current value so
// late subscribers can initialize their state. A nil fn is ignored.
func (p *Parameter) Subscribe(fn func(float64)) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	p.observers = append(p.observers, fn)
	v := p.value
	p.mu.Unlock()
	fn(v)
}

var parameterKeys = [...]string{"a", "b", "c", "d"}

// ParameterSet owns the four recurrence coefficients. All parameters share
// one lock so Snapshot observes a consistent state.
type ParameterSet struct {
	mu     sync.RWMutex
	params [len(parameterKeys)]*Parameter
}

// NewParameterSet creates the a, b, c, d parameters with the given initial
// values.
func NewParameterSet(initial Params) *ParameterSet {
	s := &ParameterSet{}
	for i, key := range parameterKeys {
		v, _ := initial.Get(key)
		s.params[i] = &Parameter{key: key, mu: &s.mu, value: v}
	}
	return s
}

// Names lists the parameter keys in display order.
func (s *ParameterSet) Names() []string { return parameterKeys[:] }

// Parameters returns the parameters in display order.
func (s *ParameterSet) Parameters() []*Parameter { return s.params[:] }

// Lookup finds a parameter by key (case-insensitive).
func (s *ParameterSet) Lookup(name string) (*Parameter, bool) {
	name = strings.ToLower(name)
	for _, p := range s.params {
		if p.key == name {
			return p, true
		}
	}
	return nil, false
}

// Get returns the current value of the named parameter.
func (s *ParameterSet) Get(name string) (float64, bool) {
	p, ok := s.Lookup(name)
	if !ok {
		return 0, false
	}
	return p.Get(), true
}

// Snapshot reads all four values atomically.
func (s *ParameterSet) Snapshot() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out Params
	for _, p := range s.params {
		out.Set(p.key, p.value)
	}
	return out
}

// Apply writes every coefficient of v, notifying observers of each accepted
// write. It reports whether all four writes were accepted.
func (s *ParameterSet) Apply(v Params) bool {
	ok := true
	for _, p := range s.params {
		val, _ := v.Get(p.key)
		ok = p.Set(val) && ok
	}
	return ok
}

// OnChange subscribes fn to every parameter. Like Subscribe, fn fires once
// per parameter right away.
func (s *ParameterSet) OnChange(fn func(key string, v float64)) {
	if fn == nil {
		return
	}
	for _, p := range s.params {
		key := p.key
		p.Subscribe(func(v float64) { fn(key, v) })
	}
}

// Controls describes the parameters for control panels: a slider-like range
// of [0, 1] with a 1/1000 step.
func (s *ParameterSet) Controls() []ParameterControl {
	controls := make([]ParameterControl, 0, len(s.params))
	for _, p := range s.params {
		controls = append(controls, ParameterControl{
			Key:    p.key,
			Label:  "Parameter " + strings.ToUpper(p.key),
			Step:   0.001,
			Min:    0,
			Max:    1,
			HasMin: true,
			HasMax: true,
		})
	}
	return controls
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

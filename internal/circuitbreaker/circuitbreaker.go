// README: Per-provider circuit breaker state machine (§4.11). Grounded on
// order.AllowedTransitions/CanTransition: a closed transition table plus a
// small checker function, generalized from an order-status enum to a
// three-state breaker.
package circuitbreaker

import (
	"sync"
	"time"
)

// State is one of the three breaker states.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// allowedTransitions mirrors order.AllowedTransitions's role: the
// authoritative table of which state changes are reachable, kept as data
// next to the checker that consults it.
var allowedTransitions = map[State][]State{
	StateClosed:   {StateOpen},
	StateOpen:     {StateHalfOpen},
	StateHalfOpen: {StateClosed, StateOpen},
}

// CanTransition reports whether from->to is a reachable edge in the
// breaker's state diagram.
func CanTransition(from, to State) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

const (
	openAfterConsecutiveFailures  = 5
	halfOpenAfterAge              = 60 * time.Second
	closeAfterConsecutiveSuccesses = 2
)

// Breaker guards a single named dependency (one per provider).
type Breaker struct {
	mu                  sync.Mutex
	state               State
	consecutiveFailures int
	consecutiveSuccess  int
	lastFailureAt       time.Time
}

// New returns a breaker starting in the closed state.
func New() *Breaker {
	return &Breaker{state: StateClosed}
}

// Allow reports whether a call should be attempted right now, transitioning
// open -> half_open when the failure window has aged out.
func (b *Breaker) Allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if now.Sub(b.lastFailureAt) > halfOpenAfterAge {
			b.transition(StateHalfOpen)
			return true
		}
		return false
	default:
		return true
	}
}

// RecordSuccess updates the breaker on a successful call outcome.
func (b *Breaker) RecordSuccess(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if b.consecutiveFailures > 0 {
			b.consecutiveFailures--
		}
	case StateHalfOpen:
		b.consecutiveSuccess++
		if b.consecutiveSuccess >= closeAfterConsecutiveSuccesses {
			b.transition(StateClosed)
		}
	}
}

// RecordFailure updates the breaker on a failed call outcome (provider
// timeout, non-2xx, or transport error per §4.11).
func (b *Breaker) RecordFailure(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastFailureAt = now

	switch b.state {
	case StateClosed:
		b.consecutiveFailures++
		if b.consecutiveFailures >= openAfterConsecutiveFailures {
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		b.transition(StateOpen)
	}
}

// State returns the current state for observability.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// transition moves the breaker to a new state, resetting the counters that
// belong to the state being entered. Caller must hold b.mu.
func (b *Breaker) transition(to State) {
	if !CanTransition(b.state, to) {
		return
	}
	b.state = to
	switch to {
	case StateOpen:
		b.consecutiveSuccess = 0
	case StateHalfOpen:
		b.consecutiveSuccess = 0
	case StateClosed:
		b.consecutiveFailures = 0
		b.consecutiveSuccess = 0
	}
}

// Registry holds one Breaker per named provider, created lazily.
type Registry struct {
	mu       sync.Mutex
	breakers map[string]*Breaker
}

// NewRegistry returns an empty provider-keyed breaker registry.
func NewRegistry() *Registry {
	return &Registry{breakers: map[string]*Breaker{}}
}

// Get returns the breaker for name, creating one in the closed state if
// this is the first call for that name.
func (r *Registry) Get(name string) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.breakers[name]
	if !ok {
		b = New()
		r.breakers[name] = b
	}
	return b
}

// Snapshot returns the current state of every breaker known to the
// registry, keyed by provider name, for the diagnostics endpoint (§6.4).
func (r *Registry) Snapshot() map[string]State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]State, len(r.breakers))
	for name, b := range r.breakers {
		out[name] = b.State()
	}
	return out
}

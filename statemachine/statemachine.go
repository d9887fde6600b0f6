package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// State represents a state in the machine.
type State interface {
	Name() string
}

// Event represents an event that can trigger a transition.
type Event interface {
	Name() string
}

// StringState is a string-based State for simple machines.
type StringState string

func (s StringState) Name() string { return string(s) }

// StringEvent is a string-based Event for simple machines.
type StringEvent string

func (e StringEvent) Name() string { return string(e) }

// Guard evaluates whether a transition is allowed under runtime conditions.
type Guard func(ctx context.Context, from State, event Event) bool

// Action executes side effects during a transition. Returning an error
// prevents the state change.
type Action func(ctx context.Context, from, to State, event Event) error

// Transition defines a state change triggered by an event. All guards must
// pass; actions run in order before the state changes.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	Actions []Action
}

// Machine is a finite state machine. It is safe for concurrent use, although
// callers typically serialize access per owning object.
type Machine struct {
	mu          sync.Mutex
	initial     State
	current     State
	transitions map[string][]Transition // keyed by from-state name + "/" + event name
}

// New creates a machine in the given initial state with the given transitions.
func New(initial State, transitions ...Transition) (*Machine, error) {
	if initial == nil {
		return nil, fmt.Errorf("statemachine: %w", ErrNilState)
	}

	m := &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[string][]Transition, len(transitions)),
	}
	for i, t := range transitions {
		if t.From == nil || t.To == nil || t.Event == nil {
			return nil, fmt.Errorf("statemachine: transition[%d]: %w", i, ErrNilState)
		}
		key := transitionKey(t.From, t.Event)
		m.transitions[key] = append(m.transitions[key], t)
	}
	return m, nil
}

// MustNew is like New but panics on error, for static transition tables.
func MustNew(initial State, transitions ...Transition) *Machine {
	m, err := New(initial, transitions...)
	if err != nil {
		panic(err)
	}
	return m
}

// Current returns the machine's current state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Is reports whether the machine is currently in the given state.
func (m *Machine) Is(s State) bool {
	return m.Current().Name() == s.Name()
}

// Fire attempts to apply the event. It returns a NoTransitionError if no
// transition is defined for the current state and event, a RejectedError if
// all candidate transitions were blocked by guards, or the first action error.
func (m *Machine) Fire(ctx context.Context, event Event) error {
	if event == nil {
		return fmt.Errorf("statemachine: %w", ErrNilEvent)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	candidates, ok := m.transitions[transitionKey(m.current, event)]
	if !ok {
		return &NoTransitionError{StateName: m.current.Name(), EventName: event.Name()}
	}

next:
	for _, t := range candidates {
		for _, guard := range t.Guards {
			if !guard(ctx, m.current, event) {
				continue next
			}
		}
		for _, action := range t.Actions {
			if err := action(ctx, m.current, t.To, event); err != nil {
				return err
			}
		}
		m.current = t.To
		return nil
	}

	return &RejectedError{StateName: m.current.Name(), EventName: event.Name()}
}

// CanFire reports whether the event would cause a transition, evaluating
// guards but running no actions.
func (m *Machine) CanFire(ctx context.Context, event Event) bool {
	if event == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	candidates, ok := m.transitions[transitionKey(m.current, event)]
	if !ok {
		return false
	}

next:
	for _, t := range candidates {
		for _, guard := range t.Guards {
			if !guard(ctx, m.current, event) {
				continue next
			}
		}
		return true
	}
	return false
}

// Reset returns the machine to its initial state without running actions.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

// SetState forces the machine into the given state without running actions.
// Intended for rehydrating a machine from externally persisted state.
func (m *Machine) SetState(s State) error {
	if s == nil {
		return fmt.Errorf("statemachine: %w", ErrNilState)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
	return nil
}

func transitionKey(from State, event Event) string {
	return from.Name() + "/" + event.Name()
}

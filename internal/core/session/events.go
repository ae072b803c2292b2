package session

import "time"

// EventType defines the type of Controller event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
)

// Status is a consistent view of the session at one instant.
type Status struct {
	Phase                 Phase
	PreviousPhase         Phase
	Remaining             time.Duration
	Cycles                int
	CyclesBeforeLongBreak int
	WorkProgress          int
	Progress              float64
	Resumed               bool
	Paused                bool
}

// RemainingSeconds returns the remaining time in whole seconds.
func (status Status) RemainingSeconds() int {
	return int(status.Remaining / time.Second)
}

// Event represents a Controller update for observers.
type Event struct {
	Status
	Type EventType
	At   time.Time
}

// Observer receives Controller notifications. Callbacks run without the
// Controller's lock held, so they may query it or issue commands; events those
// commands produce are delivered after the current callback returns.
type Observer interface {
	StateChanged(event Event)
	Tick(event Event)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnStateChanged func(Event)
	OnTick         func(Event)
}

// StateChanged implements Observer.
func (funcs ObserverFuncs) StateChanged(event Event) {
	if funcs.OnStateChanged != nil {
		funcs.OnStateChanged(event)
	}
}

// Tick implements Observer.
func (funcs ObserverFuncs) Tick(event Event) {
	if funcs.OnTick != nil {
		funcs.OnTick(event)
	}
}

// Intent is a discrete user request delivered by the UI.
type Intent string

const (
	IntentStart  Intent = "start"
	IntentPause  Intent = "pause"
	IntentResume Intent = "resume"
	IntentReset  Intent = "reset"
	IntentToggle Intent = "toggle"
)

package view

import "pomodoro/internal/core/session"

// Sink receives display state.
type Sink func(State)

// Presenter turns Controller notifications into display updates. Run hands
// the update to the UI goroutine; with fyne this is fyne.Do.
type Presenter struct {
	run   func(func())
	sinks []Sink
}

// NewPresenter creates a Presenter. A nil run executes updates inline.
func NewPresenter(run func(func()), sinks ...Sink) *Presenter {
	if run == nil {
		run = func(update func()) { update() }
	}
	return &Presenter{run: run, sinks: sinks}
}

// Show pushes a status to every sink.
func (presenter *Presenter) Show(status session.Status) {
	state := FromStatus(status)
	presenter.run(func() {
		for _, sink := range presenter.sinks {
			sink(state)
		}
	})
}

// StateChanged implements session.Observer.
func (presenter *Presenter) StateChanged(event session.Event) {
	presenter.Show(event.Status)
}

// Tick implements session.Observer.
func (presenter *Presenter) Tick(event session.Event) {
	presenter.Show(event.Status)
}

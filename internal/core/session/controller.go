package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pomodoro/internal/core/model"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for transition and diagnostic output.
func WithLogger(logger zerolog.Logger) Option {
	return func(controller *Controller) {
		controller.logger = logger
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(observer Observer) Option {
	return func(controller *Controller) {
		if observer != nil {
			controller.observers = append(controller.observers, observer)
		}
	}
}

// WithClock overrides the clock used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(controller *Controller) {
		if now != nil {
			controller.now = now
		}
	}
}

// Controller is the Pomodoro session state machine.
//
// Commands issued in a phase where they do not apply are ignored.
type Controller struct {
	mu    sync.Mutex
	subMu sync.Mutex

	id          string
	logger      zerolog.Logger
	now         func() time.Time
	timer       Timer
	observers   []Observer
	subscribers []chan Event
	queue       []Event
	delivering  bool

	durations     model.Durations
	phase         Phase
	previousPhase Phase
	remaining     time.Duration
	cycles        int
	epoch         uint64
}

// New creates an idle Controller with the given durations.
func New(durations model.Durations, timer Timer, options ...Option) *Controller {
	controller := &Controller{
		id:            uuid.NewString(),
		logger:        zerolog.Nop(),
		now:           time.Now,
		timer:         timer,
		durations:     durations,
		phase:         PhaseIdle,
		previousPhase: PhaseIdle,
		remaining:     durations.Work,
	}
	for _, option := range options {
		option(controller)
	}
	controller.logger = controller.logger.With().Str("session_id", controller.id).Logger()
	return controller
}

// ID returns the identifier used to correlate this session's log lines.
func (controller *Controller) ID() string {
	return controller.id
}

// AddObserver registers an observer for subsequent notifications.
func (controller *Controller) AddObserver(observer Observer) {
	if observer == nil {
		return
	}
	controller.mu.Lock()
	controller.observers = append(controller.observers, observer)
	controller.mu.Unlock()
}

// Subscribe registers a new observer channel. Sends never block; events are
// dropped when the channel buffer is full.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.subMu.Lock()
	controller.subscribers = append(controller.subscribers, ch)
	controller.subMu.Unlock()
	return ch
}

// Close stops the timer and closes subscriber channels.
func (controller *Controller) Close() {
	controller.mu.Lock()
	controller.epoch++
	controller.timer.Stop()
	controller.mu.Unlock()

	controller.subMu.Lock()
	defer controller.subMu.Unlock()
	for _, ch := range controller.subscribers {
		close(ch)
	}
	controller.subscribers = nil
}

// Init reinitializes the session: Idle, zero cycles, remaining set to the
// work duration. Any running countdown is stopped.
func (controller *Controller) Init(durations model.Durations) {
	controller.mu.Lock()
	controller.epoch++
	controller.timer.Stop()
	controller.durations = durations
	controller.cycles = 0
	event := controller.changeStateLocked(PhaseIdle, durations.Work)
	controller.unlockAndNotify(event)
}

// Start begins a work phase. It only applies from Idle.
func (controller *Controller) Start() {
	controller.mu.Lock()
	if controller.phase != PhaseIdle {
		controller.ignoredLocked(IntentStart)
		controller.mu.Unlock()
		return
	}
	event := controller.changeStateLocked(PhaseWork, controller.durations.Work)
	controller.startTimerLocked(controller.durations.Work)
	controller.unlockAndNotify(event)
}

// Pause freezes a running work or break phase.
func (controller *Controller) Pause() {
	controller.mu.Lock()
	var next Phase
	switch controller.phase {
	case PhaseWork:
		next = PhasePausedWork
	case PhaseShortBreak, PhaseLongBreak:
		next = PhasePausedBreak
	default:
		controller.ignoredLocked(IntentPause)
		controller.mu.Unlock()
		return
	}
	controller.timer.Pause()
	remaining := controller.clampLocked(controller.timer.Remaining(), controller.phase)
	event := controller.changeStateLocked(next, remaining)
	controller.unlockAndNotify(event)
}

// Resume continues a paused phase from its snapshot.
func (controller *Controller) Resume() {
	controller.mu.Lock()
	var next Phase
	switch controller.phase {
	case PhasePausedWork:
		next = PhaseWork
	case PhasePausedBreak:
		next = controller.breakPhaseLocked()
	default:
		controller.ignoredLocked(IntentResume)
		controller.mu.Unlock()
		return
	}

	if controller.remaining <= 0 {
		// The countdown expired as it was paused; complete the phase instead.
		controller.logger.Debug().Str("phase", string(controller.phase)).Msg("paused countdown already expired")
		var event Event
		if next == PhaseWork {
			event = controller.completeWorkLocked()
		} else {
			event = controller.enterWorkLocked()
		}
		controller.unlockAndNotify(event)
		return
	}

	event := controller.changeStateLocked(next, controller.remaining)
	controller.timer.Resume()
	controller.unlockAndNotify(event)
}

// Reset returns to Idle from any phase and stops the timer.
func (controller *Controller) Reset() {
	controller.mu.Lock()
	controller.epoch++
	controller.timer.Stop()
	controller.cycles = 0
	event := controller.changeStateLocked(PhaseIdle, 0)
	controller.unlockAndNotify(event)
}

// Toggle starts from Idle, pauses a running phase and resumes a paused one.
func (controller *Controller) Toggle() {
	switch controller.Phase() {
	case PhaseIdle:
		controller.Start()
	case PhasePausedWork, PhasePausedBreak:
		controller.Resume()
	default:
		controller.Pause()
	}
}

// Dispatch routes a UI intent to the matching command.
func (controller *Controller) Dispatch(intent Intent) {
	switch intent {
	case IntentStart:
		controller.Start()
	case IntentPause:
		controller.Pause()
	case IntentResume:
		controller.Resume()
	case IntentReset:
		controller.Reset()
	case IntentToggle:
		controller.Toggle()
	default:
		controller.logger.Warn().Str("intent", string(intent)).Msg("unknown intent")
	}
}

// UpdateDurations replaces the configured durations. An idle session picks up
// the new work duration immediately; otherwise changes apply on the next
// phase entry.
func (controller *Controller) UpdateDurations(durations model.Durations) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.durations = durations
	if controller.phase == PhaseIdle {
		controller.remaining = durations.Work
	}
	controller.logger.Debug().
		Dur("work", durations.Work).
		Dur("short_break", durations.ShortBreak).
		Dur("long_break", durations.LongBreak).
		Int("cycles_before_long_break", durations.CyclesBeforeLongBreak).
		Msg("durations updated")
}

// Phase returns the current phase.
func (controller *Controller) Phase() Phase {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.phase
}

// Remaining returns the time left in the current phase.
func (controller *Controller) Remaining() time.Duration {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.remaining
}

// RemainingSeconds returns the time left in whole seconds, rounded down.
func (controller *Controller) RemainingSeconds() int {
	return int(controller.Remaining() / time.Second)
}

// Cycles returns the number of completed work phases since the last reset.
func (controller *Controller) Cycles() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.cycles
}

// CyclesBeforeLongBreak returns the configured long break threshold.
func (controller *Controller) CyclesBeforeLongBreak() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.durations.CyclesBeforeLongBreak
}

// Durations returns the configured durations.
func (controller *Controller) Durations() model.Durations {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.durations
}

func (controller *Controller) WorkDuration() time.Duration {
	return controller.Durations().Work
}

func (controller *Controller) ShortBreakDuration() time.Duration {
	return controller.Durations().ShortBreak
}

func (controller *Controller) LongBreakDuration() time.Duration {
	return controller.Durations().LongBreak
}

// WorkProgressPercent returns how much of the work phase has elapsed, 0..100.
// It is 0 outside of running or paused work.
func (controller *Controller) WorkProgressPercent() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.workProgressLocked()
}

// IsResumeTransition reports whether the last transition resumed a paused phase.
func (controller *Controller) IsResumeTransition() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.isResumeLocked()
}

// IsPaused reports whether the session is paused.
func (controller *Controller) IsPaused() bool {
	return controller.Phase().Paused()
}

// Snapshot returns all query values read under a single lock.
func (controller *Controller) Snapshot() Status {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.statusLocked()
}

func (controller *Controller) handleTick(epoch uint64, remaining time.Duration) {
	controller.mu.Lock()
	if epoch != controller.epoch || !controller.phase.Active() {
		controller.mu.Unlock()
		return
	}
	controller.remaining = controller.clampLocked(remaining, controller.phase)
	event := controller.eventLocked(EventTick)
	controller.unlockAndNotify(event)
}

func (controller *Controller) handleFinished(epoch uint64) {
	controller.mu.Lock()
	if epoch != controller.epoch {
		controller.mu.Unlock()
		return
	}

	var event Event
	switch controller.phase {
	case PhaseWork:
		event = controller.completeWorkLocked()
	case PhaseShortBreak, PhaseLongBreak:
		event = controller.enterWorkLocked()
	default:
		controller.logger.Debug().Str("phase", string(controller.phase)).Msg("ignoring countdown finish")
		controller.mu.Unlock()
		return
	}
	controller.unlockAndNotify(event)
}

func (controller *Controller) completeWorkLocked() Event {
	controller.cycles++
	next := controller.breakPhaseLocked()
	duration := controller.durations.ShortBreak
	if next == PhaseLongBreak {
		duration = controller.durations.LongBreak
	}
	event := controller.changeStateLocked(next, duration)
	controller.startTimerLocked(duration)
	return event
}

func (controller *Controller) enterWorkLocked() Event {
	event := controller.changeStateLocked(PhaseWork, controller.durations.Work)
	controller.startTimerLocked(controller.durations.Work)
	return event
}

func (controller *Controller) breakPhaseLocked() Phase {
	threshold := controller.durations.CyclesBeforeLongBreak
	if threshold <= 0 {
		threshold = 1
	}
	if controller.cycles%threshold == 0 {
		return PhaseLongBreak
	}
	return PhaseShortBreak
}

func (controller *Controller) startTimerLocked(duration time.Duration) {
	controller.epoch++
	epoch := controller.epoch
	controller.timer.Start(duration,
		func(remaining time.Duration) { controller.handleTick(epoch, remaining) },
		func() { controller.handleFinished(epoch) },
	)
}

func (controller *Controller) changeStateLocked(next Phase, remaining time.Duration) Event {
	controller.previousPhase = controller.phase
	controller.phase = next
	controller.remaining = remaining

	controller.logger.Debug().
		Str("from", string(controller.previousPhase)).
		Str("to", string(next)).
		Int("cycles", controller.cycles).
		Dur("remaining", remaining).
		Msg("phase transition")

	return controller.eventLocked(EventStateChange)
}

func (controller *Controller) ignoredLocked(intent Intent) {
	controller.logger.Debug().
		Str("intent", string(intent)).
		Str("phase", string(controller.phase)).
		Msg("command ignored")
}

func (controller *Controller) durationOfLocked(phase Phase) time.Duration {
	switch phase {
	case PhaseWork, PhasePausedWork, PhaseIdle:
		return controller.durations.Work
	case PhaseShortBreak:
		return controller.durations.ShortBreak
	case PhaseLongBreak:
		return controller.durations.LongBreak
	case PhasePausedBreak:
		if controller.breakPhaseLocked() == PhaseLongBreak {
			return controller.durations.LongBreak
		}
		return controller.durations.ShortBreak
	}
	return 0
}

func (controller *Controller) clampLocked(remaining time.Duration, phase Phase) time.Duration {
	if remaining < 0 {
		return 0
	}
	if total := controller.durationOfLocked(phase); total > 0 && remaining > total {
		return total
	}
	return remaining
}

func (controller *Controller) workProgressLocked() int {
	if controller.phase != PhaseWork && controller.phase != PhasePausedWork {
		return 0
	}
	work := controller.durations.Work
	if work <= 0 {
		return 0
	}
	remaining := controller.remaining
	if remaining > work {
		remaining = work
	}
	return int((work - remaining) * 100 / work)
}

func (controller *Controller) progressLocked() float64 {
	if controller.phase == PhaseIdle {
		return 0
	}
	total := controller.durationOfLocked(controller.phase)
	if total <= 0 {
		return 0
	}
	progress := float64(total-controller.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (controller *Controller) isResumeLocked() bool {
	switch controller.previousPhase {
	case PhasePausedWork:
		return controller.phase == PhaseWork
	case PhasePausedBreak:
		return controller.phase.Break()
	}
	return false
}

func (controller *Controller) statusLocked() Status {
	return Status{
		Phase:                 controller.phase,
		PreviousPhase:         controller.previousPhase,
		Remaining:             controller.remaining,
		Cycles:                controller.cycles,
		CyclesBeforeLongBreak: controller.durations.CyclesBeforeLongBreak,
		WorkProgress:          controller.workProgressLocked(),
		Progress:              controller.progressLocked(),
		Resumed:               controller.isResumeLocked(),
		Paused:                controller.phase.Paused(),
	}
}

func (controller *Controller) eventLocked(eventType EventType) Event {
	return Event{
		Status: controller.statusLocked(),
		Type:   eventType,
		At:     controller.now(),
	}
}

// unlockAndNotify queues the event and releases the state lock. Whichever
// goroutine finds the queue idle drains it, so observers run without the state
// lock held and still see events in transition order.
func (controller *Controller) unlockAndNotify(event Event) {
	controller.queue = append(controller.queue, event)
	if controller.delivering {
		controller.mu.Unlock()
		return
	}
	controller.delivering = true
	for len(controller.queue) > 0 {
		batch := controller.queue
		controller.queue = nil
		observers := append([]Observer(nil), controller.observers...)
		controller.mu.Unlock()

		for _, queued := range batch {
			controller.deliver(observers, queued)
		}

		controller.mu.Lock()
	}
	controller.delivering = false
	controller.mu.Unlock()
}

func (controller *Controller) deliver(observers []Observer, event Event) {
	for _, observer := range observers {
		switch event.Type {
		case EventStateChange:
			observer.StateChanged(event)
		case EventTick:
			observer.Tick(event)
		}
	}

	controller.subMu.Lock()
	defer controller.subMu.Unlock()
	for _, ch := range controller.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

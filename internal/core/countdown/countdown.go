package countdown

import (
	"sync"
	"time"
)

// Ticker delivers periodic ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	ticker *time.Ticker
}

func (ticker timeTicker) C() <-chan time.Time { return ticker.ticker.C }
func (ticker timeTicker) Stop()               { ticker.ticker.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(interval time.Duration) Ticker {
	return timeTicker{ticker: time.NewTicker(interval)}
}

// Config contains runtime options for Countdown.
type Config struct {
	TickInterval time.Duration
	NewTicker    func(time.Duration) Ticker
}

type state int

const (
	stateIdle state = iota
	stateRunning
	statePaused
)

// Countdown is a single-instance ticking timer. Each tick subtracts the tick
// interval from the remaining time. Callbacks run on the countdown goroutine
// without the lock held; a callback already in flight when Stop or Start is
// called may still be delivered once.
type Countdown struct {
	mu         sync.Mutex
	options    Config
	state      state
	remaining  time.Duration
	loop       uint64
	stopCh     chan struct{}
	onTick     func(time.Duration)
	onFinished func()
	closed     bool
}

// New creates an idle Countdown.
func New(options Config) *Countdown {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.NewTicker == nil {
		options.NewTicker = NewTimeTicker
	}
	return &Countdown{options: options}
}

// Start begins a new countdown, replacing any previous one.
func (countdown *Countdown) Start(duration time.Duration, onTick func(time.Duration), onFinished func()) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.closed {
		return
	}
	countdown.stopLoopLocked()
	countdown.remaining = duration
	countdown.onTick = onTick
	countdown.onFinished = onFinished
	countdown.state = stateRunning
	countdown.startLoopLocked()
}

// Pause halts ticking and keeps the remaining time.
func (countdown *Countdown) Pause() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.state != stateRunning {
		return
	}
	countdown.stopLoopLocked()
	countdown.state = statePaused
}

// Resume continues a paused countdown.
func (countdown *Countdown) Resume() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.state != statePaused || countdown.closed {
		return
	}
	countdown.state = stateRunning
	countdown.startLoopLocked()
}

// Stop halts the countdown and discards the remaining time.
func (countdown *Countdown) Stop() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.stopLoopLocked()
	countdown.state = stateIdle
	countdown.remaining = 0
}

// Close stops the countdown and ignores later starts.
func (countdown *Countdown) Close() {
	countdown.mu.Lock()
	countdown.closed = true
	countdown.mu.Unlock()
	countdown.Stop()
}

// Remaining returns the time left.
func (countdown *Countdown) Remaining() time.Duration {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.remaining
}

// Running reports whether the countdown is ticking.
func (countdown *Countdown) Running() bool {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.state == stateRunning
}

func (countdown *Countdown) startLoopLocked() {
	countdown.loop++
	stopCh := make(chan struct{})
	countdown.stopCh = stopCh
	ticker := countdown.options.NewTicker(countdown.options.TickInterval)
	go countdown.run(countdown.loop, ticker, stopCh)
}

func (countdown *Countdown) stopLoopLocked() {
	countdown.loop++
	if countdown.stopCh != nil {
		close(countdown.stopCh)
		countdown.stopCh = nil
	}
}

func (countdown *Countdown) run(loop uint64, ticker Ticker, stopCh <-chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			if !countdown.tick(loop) {
				return
			}
		}
	}
}

func (countdown *Countdown) tick(loop uint64) bool {
	countdown.mu.Lock()
	if loop != countdown.loop || countdown.state != stateRunning {
		countdown.mu.Unlock()
		return false
	}

	countdown.remaining -= countdown.options.TickInterval
	if countdown.remaining <= 0 {
		countdown.remaining = 0
		countdown.state = stateIdle
		countdown.stopLoopLocked()
		onFinished := countdown.onFinished
		countdown.mu.Unlock()
		if onFinished != nil {
			onFinished()
		}
		return false
	}

	remaining := countdown.remaining
	onTick := countdown.onTick
	countdown.mu.Unlock()
	if onTick != nil {
		onTick(remaining)
	}
	return true
}

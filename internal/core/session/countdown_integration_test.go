package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
)

type stepTicker struct {
	ch chan time.Time
}

func (ticker *stepTicker) C() <-chan time.Time { return ticker.ch }
func (ticker *stepTicker) Stop()               {}

func TestControllerWithCountdown(t *testing.T) {
	tickers := make(chan *stepTicker, 16)
	timer := countdown.New(countdown.Config{
		TickInterval: time.Minute,
		NewTicker: func(time.Duration) countdown.Ticker {
			ticker := &stepTicker{ch: make(chan time.Time)}
			tickers <- ticker
			return ticker
		},
	})
	defer timer.Close()

	controller := session.New(model.DurationsFromMinutes(2, 1, 3, 2), timer)
	events := controller.Subscribe(16)
	defer controller.Close()

	nextEvent := func() session.Event {
		t.Helper()
		select {
		case event := <-events:
			return event
		case <-time.After(2 * time.Second):
			t.Fatal("no event delivered")
			return session.Event{}
		}
	}
	tick := func() {
		t.Helper()
		var ticker *stepTicker
		select {
		case ticker = <-tickers:
		case <-time.After(2 * time.Second):
			t.Fatal("no ticker created")
		}
		// Re-queue so later ticks reuse the same loop until a new one starts.
		select {
		case ticker.ch <- time.Now():
		case <-time.After(2 * time.Second):
			t.Fatal("tick not accepted")
		}
		select {
		case tickers <- ticker:
		default:
		}
	}

	controller.Start()
	assert.Equal(t, session.PhaseWork, nextEvent().Phase)

	tick()
	event := nextEvent()
	assert.Equal(t, session.EventTick, event.Type)
	assert.Equal(t, time.Minute, event.Remaining)
	assert.Equal(t, 50, event.WorkProgress)

	tick()
	event = nextEvent()
	assert.Equal(t, session.EventStateChange, event.Type)
	assert.Equal(t, session.PhaseShortBreak, event.Phase)
	assert.Equal(t, 1, event.Cycles)

	require.Eventually(t, func() bool { return timer.Running() }, 2*time.Second, 10*time.Millisecond)
	controller.Pause()
	assert.Equal(t, session.PhasePausedBreak, nextEvent().Phase)
	assert.Equal(t, time.Minute, controller.Remaining())

	controller.Reset()
	event = nextEvent()
	assert.Equal(t, session.PhaseIdle, event.Phase)
	assert.Equal(t, time.Duration(0), event.Remaining)
	assert.False(t, timer.Running())
}

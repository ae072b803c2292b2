package session

import "time"

// Timer is the countdown the Controller drives.
//
// Start replaces any previous countdown. onTick is called repeatedly with the
// remaining time while running and onFinished exactly once when it reaches
// zero. Implementations must not invoke callbacks synchronously from Start,
// Pause, Resume or Stop.
type Timer interface {
	Start(duration time.Duration, onTick func(remaining time.Duration), onFinished func())
	Pause()
	Resume()
	Stop()
	Remaining() time.Duration
}

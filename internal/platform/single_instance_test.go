package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	port := portFromName("Pomodoro")
	assert.Equal(t, port, portFromName("Pomodoro"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestSecondInstanceActivatesFirst(t *testing.T) {
	appName := fmt.Sprintf("pomodoro-test-%d", time.Now().UnixNano())
	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	defer func() { _ = guard.Release() }()

	activated := make(chan struct{}, 1)
	go guard.Serve(func() { activated <- struct{}{} })

	second, err := AcquireSingleInstance(appName)
	require.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Nil(t, second)

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}
	assert.Equal(t, instanceAddress(appName), guard.Address())
}

func TestReleaseIsIdempotent(t *testing.T) {
	var nilGuard *InstanceGuard
	assert.NoError(t, nilGuard.Release())
	assert.Empty(t, nilGuard.Address())

	guard, err := AcquireSingleInstance(fmt.Sprintf("pomodoro-release-%d", time.Now().UnixNano()))
	require.NoError(t, err)
	require.NoError(t, guard.Release())
	assert.NoError(t, guard.Release())
}

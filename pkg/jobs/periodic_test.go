package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodicRunsUntilStopped(t *testing.T) {
	var runs int32
	p := NewPeriodic("count", func(context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}, PeriodicConfig{Interval: 10 * time.Millisecond, RunOnStart: true})

	p.Start(context.Background())
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 3 }, time.Second, 5*time.Millisecond)
	p.Stop()

	stopped := atomic.LoadInt32(&runs)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&runs))
}

func TestPeriodicKeepsRunningAfterFailure(t *testing.T) {
	var runs int32
	p := NewPeriodic("flaky", func(context.Context) error {
		atomic.AddInt32(&runs, 1)
		return errors.New("backend down")
	}, PeriodicConfig{Interval: 5 * time.Millisecond})

	p.Start(context.Background())
	defer p.Stop()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 2 }, time.Second, 5*time.Millisecond)
}

func TestPeriodicStopWithoutStart(t *testing.T) {
	p := NewPeriodic("idle", func(context.Context) error { return nil }, PeriodicConfig{})
	p.Stop()
	p.Start(context.Background())
	p.Start(context.Background())
	p.Stop()
	p.Stop()
}

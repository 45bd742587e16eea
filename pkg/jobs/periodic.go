package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is one run of a periodic job.
type Task func(context.Context) error

// PeriodicConfig configures a Periodic runner.
type PeriodicConfig struct {
	Interval time.Duration
	// Timeout bounds a single run. Zero means the interval.
	Timeout time.Duration
	// RunOnStart triggers a run as soon as Start is called.
	RunOnStart bool
	Logger     *zap.Logger
}

// Periodic runs a task on a fixed interval in a single goroutine. Runs never overlap.
type Periodic struct {
	name     string
	task     Task
	interval time.Duration
	timeout  time.Duration
	onStart  bool
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewPeriodic builds a runner. A non-positive interval defaults to one minute.
func NewPeriodic(name string, task Task, cfg PeriodicConfig) *Periodic {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Periodic{
		name:     name,
		task:     task,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		onStart:  cfg.RunOnStart,
		logger:   cfg.Logger,
	}
}

// Start launches the runner. Safe to call once; later calls are ignored.
func (p *Periodic) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	p.started = true
	go p.loop(ctx)
	p.logger.Sugar().Infow("periodic job started", "job", p.name, "interval", p.interval.String())
}

// Stop cancels the runner and waits for an in-flight run to return.
func (p *Periodic) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.cancel()
	done := p.done
	p.started = false
	p.mu.Unlock()
	<-done
	p.logger.Sugar().Infow("periodic job stopped", "job", p.name)
}

func (p *Periodic) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if p.onStart {
		p.run(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.run(ctx)
		}
	}
}

func (p *Periodic) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	if err := p.task(runCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Sugar().Warnw("periodic job failed", "job", p.name, "duration", time.Since(start).String(), "error", err)
	}
}

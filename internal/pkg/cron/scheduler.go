package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type entry struct {
	name  string
	every time.Duration
	run   func(ctx context.Context) error
}

// Scheduler runs named background jobs on fixed intervals. Each job gets its
// own goroutine and ticker; the first run fires as soon as Start is called.
type Scheduler struct {
	mu      sync.Mutex
	entries []entry
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// AddJob registers a job. Must be called before Start.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry{name: name, every: interval, run: fn})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		s.wg.Add(1)
		go s.loop(e)
	}
	slog.Info("Cron scheduler started", "job_count", len(s.entries))
}

// Stop cancels every job and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) loop(e entry) {
	defer s.wg.Done()

	ticker := time.NewTicker(e.every)
	defer ticker.Stop()

	s.execute(e)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", e.name)
			return
		case <-ticker.C:
			s.execute(e)
		}
	}
}

func (s *Scheduler) execute(e entry) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", e.name)

	if err := e.run(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", e.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Cron job completed", "name", e.name, "duration", time.Since(start))
}

// RunOnce executes every registered job a single time. Used in tests.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if err := e.run(ctx); err != nil {
			slog.Error("Cron job failed", "name", e.name, "error", err)
		}
	}
}

// internal/app/system/workers/scheduler.go
package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/tasks"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs maintenance jobs on cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	log     *zap.Logger
	mu      sync.Mutex
	jobs    map[string]tasks.Job
	running bool
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  logger,
		jobs: make(map[string]tasks.Job),
	}
}

// Add registers job. Returns an error for an invalid schedule or a
// duplicate name.
func (s *Scheduler) Add(job tasks.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.jobs[job.Name]; dup {
		return fmt.Errorf("job %q already registered", job.Name)
	}
	if _, err := s.cron.AddFunc(job.Schedule, func() { s.execute(job) }); err != nil {
		return fmt.Errorf("schedule %q for job %q: %w", job.Schedule, job.Name, err)
	}
	s.jobs[job.Name] = job
	return nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.log.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop halts scheduling and waits for in-flight jobs, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out with jobs still running")
	}
}

// RunNow executes a registered job synchronously.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	return s.execute(job)
}

func (s *Scheduler) execute(job tasks.Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), job.RunTimeout())
	defer cancel()

	start := time.Now()
	err := job.Run(ctx)
	if err != nil {
		s.log.Error("job failed", zap.String("job", job.Name), zap.Error(err))
		return err
	}
	s.log.Debug("job finished", zap.String("job", job.Name), zap.Duration("took", time.Since(start)))
	return nil
}

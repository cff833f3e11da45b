// internal/app/system/tasks/tasks.go
package tasks

import (
	"context"
	"time"
)

// Job is a named unit of periodic maintenance work.
type Job struct {
	Name string
	// Schedule is a standard five-field cron expression or a descriptor
	// such as "@hourly" or "@every 10m".
	Schedule string
	// Timeout bounds a single run. Zero means one minute.
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// RunTimeout returns the effective per-run timeout.
func (j Job) RunTimeout() time.Duration {
	if j.Timeout <= 0 {
		return time.Minute
	}
	return j.Timeout
}

package scheduler

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

var ErrInvalidInterval = errors.New("interval must be positive")

// Scheduler runs tasks on timers. Implementations must not run a task
// before its first interval or delay has elapsed.
type Scheduler interface {
	// Every runs task every interval, starting one interval from now.
	Every(interval time.Duration, task func()) error
	// After runs task once, delay from now.
	After(delay time.Duration, task func()) error
}

// Cron is the production Scheduler backed by gocron.
type Cron struct {
	mu        sync.Mutex
	scheduler *gocron.Scheduler
	logger    *log.Logger
}

// New creates a Cron scheduler evaluating jobs in loc.
func New(loc *time.Location, logger *log.Logger) *Cron {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Cron{
		scheduler: gocron.NewScheduler(loc),
		logger:    logger,
	}
}

func (c *Cron) Every(interval time.Duration, task func()) error {
	if interval <= 0 {
		return fmt.Errorf("every %s: %w", interval, ErrInvalidInterval)
	}

	// gocron's builder methods act on the most recently added job.
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.scheduler.Every(interval).WaitForSchedule().Do(task)
	return err
}

func (c *Cron) After(delay time.Duration, task func()) error {
	if delay <= 0 {
		return fmt.Errorf("after %s: %w", delay, ErrInvalidInterval)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.scheduler.Every(delay).WaitForSchedule().LimitRunsTo(1).Do(task)
	return err
}

// Start starts the underlying scheduler without blocking.
func (c *Cron) Start() {
	c.logger.Println("INFO: scheduler: starting")
	c.scheduler.StartAsync()
}

// Stop stops the scheduler and cancels any future jobs.
func (c *Cron) Stop() {
	if c.scheduler != nil {
		c.scheduler.Stop()
		c.logger.Println("INFO: scheduler: stopped")
	}
}

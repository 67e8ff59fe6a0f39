// Package schedulertest provides a deterministic Scheduler for tests.
package schedulertest

import (
	"fmt"
	"sync"
	"time"

	"github.com/i474232898/school-board/internal/scheduler"
)

type task struct {
	at    time.Time
	every time.Duration
	seq   int
	fn    func()
}

// Manual is a scheduler.Scheduler driven by Advance instead of the wall clock.
// Tasks run synchronously on the goroutine calling Advance.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*task
}

var _ scheduler.Scheduler = (*Manual)(nil)

// NewManual starts the fake clock on Monday 2 September 2024, 08:00 UTC.
func NewManual() *Manual {
	return &Manual{now: time.Date(2024, time.September, 2, 8, 0, 0, 0, time.UTC)}
}

// Now returns the fake clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(interval time.Duration, fn func()) error {
	return m.add(interval, interval, fn)
}

func (m *Manual) After(delay time.Duration, fn func()) error {
	return m.add(delay, 0, fn)
}

func (m *Manual) add(delay, every time.Duration, fn func()) error {
	if delay <= 0 {
		return fmt.Errorf("delay %s: %w", delay, scheduler.ErrInvalidInterval)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.tasks = append(m.tasks, &task{at: m.now.Add(delay), every: every, seq: m.seq, fn: fn})
	return nil
}

// Advance moves the clock forward by d, running every task that comes due in
// time order. Tasks scheduled by running tasks also run if they fall due within d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}

		m.now = next.at
		if next.every > 0 {
			next.at = next.at.Add(next.every)
		} else {
			m.remove(next)
		}
		m.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of scheduled tasks, recurring ones included.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) nextDue(target time.Time) *task {
	var best *task
	for _, t := range m.tasks {
		if t.at.After(target) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) remove(target *task) {
	for i, t := range m.tasks {
		if t == target {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

package util

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrStopped can be returned by a task to end Scheduler.Run without reporting a failure.
var ErrStopped = errors.New("scheduler stopped")

type periodicTask struct {
	name     string
	period   time.Duration
	next     time.Duration
	coalesce bool
	fn       func() error
	runs     uint64
}

// Scheduler owns a set of periodic tasks and runs them one at a time, in due order, on the
// goroutine that drives it. Tasks never run concurrently with each other.
type Scheduler struct {
	tasks []*periodicTask
	now   time.Duration
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Every registers fn to run once per period. If the scheduler falls behind, every missed
// occurrence is still run.
func (s *Scheduler) Every(name string, period time.Duration, fn func() error) {
	s.add(name, period, false, fn)
}

// EveryCoalesced registers fn to run once per period. If the scheduler falls behind, the
// missed occurrences collapse into a single run.
func (s *Scheduler) EveryCoalesced(name string, period time.Duration, fn func() error) {
	s.add(name, period, true, fn)
}

func (s *Scheduler) add(name string, period time.Duration, coalesce bool, fn func() error) {
	if period <= 0 {
		panic("scheduler: period must be positive")
	}
	s.tasks = append(s.tasks, &periodicTask{
		name:     name,
		period:   period,
		next:     s.now + period,
		coalesce: coalesce,
		fn:       fn,
	})
}

// Now returns the scheduler's time: how far it has been advanced since it was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Runs returns how often the named task has run.
func (s *Scheduler) Runs(name string) uint64 {
	for _, t := range s.tasks {
		if t.name == name {
			return t.runs
		}
	}
	return 0
}

func (s *Scheduler) nextDue() *periodicTask {
	var due *periodicTask
	for _, t := range s.tasks {
		// ties go to the task registered first
		if due == nil || t.next < due.next {
			due = t
		}
	}
	return due
}

// AdvanceTo runs every task occurrence due at or before target, in time order, and moves the
// scheduler's time to target. The first task error stops the advance and is returned.
func (s *Scheduler) AdvanceTo(target time.Duration) error {
	for {
		t := s.nextDue()
		if t == nil || t.next > target {
			break
		}
		s.now = t.next
		t.next += t.period
		t.runs++
		if err := t.fn(); err != nil {
			return errors.Wrapf(err, "task %s", t.name)
		}
	}
	if target > s.now {
		s.now = target
	}
	return nil
}

func (s *Scheduler) coalesceLate(now time.Duration) {
	for _, t := range s.tasks {
		if !t.coalesce || now-t.next < t.period {
			continue
		}
		// skip to the latest occurrence that is already due
		t.next = now - (now-t.next)%t.period
	}
}

// Run drives the tasks against the wall clock until ctx is done or a task fails. A task
// returning ErrStopped ends the loop with a nil error.
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.tasks) == 0 {
		return nil
	}
	start := time.Now().Add(-s.now)
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		now := time.Since(start)
		s.coalesceLate(now)
		if err := s.AdvanceTo(now); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}

		wait := s.nextDue().next - time.Since(start)
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
	}
}

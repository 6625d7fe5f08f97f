package util

import (
	"fmt"
	"strings"
	"time"
)

// TimerStats summarizes the measurements of one named section since the last Reset.
type TimerStats struct {
	Name  string
	Last  time.Duration
	Total time.Duration
	Count int64
	Min   time.Duration
	Max   time.Duration
}

func (t TimerStats) Average() time.Duration {
	if t.Count == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Count)
}

func (t TimerStats) String() string {
	ms := func(d time.Duration) float64 { return float64(d.Microseconds()) / 1000.0 }
	return fmt.Sprintf("%s last: %.2fms, avg: %.2fms, min: %.2fms, max: %.2fms (%d samples)",
		t.Name, ms(t.Last), ms(t.Average()), ms(t.Min), ms(t.Max), t.Count)
}

// Timer measures how long named sections of a frame take.
type Timer struct {
	states     map[string]*TimerStats
	timerNames []string
	now        func() time.Time
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerStats),
		now:    time.Now,
	}
}

// Stats returns the measurements of a section; ok is false if it was never started.
func (t *Timer) Stats(name string) (TimerStats, bool) {
	state, ok := t.states[name]
	if !ok {
		return TimerStats{Name: name}, false
	}
	return *state, true
}

func (t *Timer) Reset() {
	for _, state := range t.states {
		*state = TimerStats{Name: state.Name}
	}
}

func (t *Timer) String() string {
	lines := make([]string, 0, len(t.timerNames))
	for _, name := range t.timerNames {
		lines = append(lines, t.states[name].String())
	}
	return strings.Join(lines, "\n")
}

// Start begins measuring a section. The returned function ends the measurement and
// returns its duration.
func (t *Timer) Start(name string) func() time.Duration {
	state, ok := t.states[name]
	if !ok {
		t.timerNames = append(t.timerNames, name)
		state = &TimerStats{Name: name}
		t.states[name] = state
	}
	start := t.now()
	return func() time.Duration {
		d := t.now().Sub(start)
		state.Last = d
		state.Total += d
		if state.Count == 0 || d < state.Min {
			state.Min = d
		}
		if d > state.Max {
			state.Max = d
		}
		state.Count++
		return d
	}
}

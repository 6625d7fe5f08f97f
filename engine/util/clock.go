package util

// FrameClock is the simulation time. It only moves forward, by a fixed step per Tick, and is
// driven by its own periodic task so it does not depend on how fast frames are drawn.
type FrameClock struct {
	elapsedMillis int64
	stepMillis    int64
}

// NewFrameClock returns a clock that advances one millisecond per Tick.
func NewFrameClock() *FrameClock {
	return NewSteppedFrameClock(1)
}

// NewSteppedFrameClock returns a clock for a task that ticks every stepMillis milliseconds.
func NewSteppedFrameClock(stepMillis int64) *FrameClock {
	if stepMillis < 1 {
		stepMillis = 1
	}
	return &FrameClock{stepMillis: stepMillis}
}

func (c *FrameClock) Tick() {
	c.elapsedMillis += c.stepMillis
}

func (c *FrameClock) ElapsedMillis() int64 {
	return c.elapsedMillis
}

func (c *FrameClock) ElapsedSeconds() float64 {
	return float64(c.elapsedMillis) / 1000.0
}

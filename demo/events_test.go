package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventQueue(t *testing.T) {
	q := NewEventQueue()
	assert.Empty(t, q.Drain())

	q.Push(ResizeEvent{Width: 1, Height: 2})
	q.Push(KeyEvent{Key: KeyA})
	q.Push(CloseEvent{})
	assert.Equal(t, 3, q.Len())

	assert.Equal(t, []Event{ResizeEvent{Width: 1, Height: 2}, KeyEvent{Key: KeyA}, CloseEvent{}}, q.Drain())
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Drain())
}

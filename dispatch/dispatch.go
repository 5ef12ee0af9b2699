// Package dispatch associates normalized pointer events with the window entity
// they were reported for and hands them to the ECS world in arrival order.
package dispatch

import (
	"github.com/mlange-42/arche/ecs"

	pointers "github.com/doingharm/go-pointer-bus"
	"github.com/doingharm/go-pointer-bus/native"
)

// WindowEvent is a pointer event targeted at a window entity.
type WindowEvent struct {
	Window ecs.Entity
	Event  pointers.Event
}

// Queue buffers window events for one frame.
type Queue struct {
	world   *ecs.World
	pending []WindowEvent
}

func NewQueue(world *ecs.World) *Queue {
	return &Queue{world: world}
}

func (q *Queue) Push(window ecs.Entity, ev pointers.Event) {
	q.pending = append(q.pending, WindowEvent{Window: window, Event: ev})
}

// Convert normalizes a native event with the window's scale factor and queues
// it. It reports whether an event was queued.
func (q *Queue) Convert(window ecs.Entity, ev native.PointerEvent, id native.PointerID, scaleFactor float64) bool {
	e, ok := pointers.Convert(ev, id, scaleFactor)
	if !ok {
		return false
	}
	q.Push(window, e)
	return true
}

func (q *Queue) Len() int {
	return len(q.pending)
}

// Drain returns the queued events and empties the queue. Events of windows
// that were removed from the world in the meantime are dropped.
func (q *Queue) Drain() (events []WindowEvent) {
	for _, e := range q.pending {
		if !q.world.Alive(e.Window) {
			continue
		}
		events = append(events, e)
	}
	q.pending = q.pending[:0]
	return
}

package pointers

import "context"

// MessageChannel represents a message channel that can be used to receive messages from pointer devices.
// Ch is closed once the channel is cancelled or the bus is closed.
type MessageChannel struct {
	Ctx        context.Context
	Ch         chan *Message
	CancelFunc context.CancelFunc

	inbox   chan *Message
	filters []FilterFunc
}

// FilterFunc is a function type used to filter messages before they are sent to the message channel.
type FilterFunc func(m *Message) bool

func (c *MessageChannel) accept(m *Message) bool {
	for _, filter := range c.filters {
		if !filter(m) {
			return false
		}
	}
	return true
}

// PointerEvents accepts only normalized pointer events.
func PointerEvents(m *Message) bool {
	return m.Type == PointerMessage
}

// FromDevice accepts messages of the device with the given id.
func FromDevice(id string) FilterFunc {
	return func(m *Message) bool {
		return m.ID == id
	}
}

// FromPointer accepts pointer events of the given pointer.
func FromPointer(p PointerID) FilterFunc {
	return func(m *Message) bool {
		ev, ok := m.Data.(Event)
		return ok && ev.Pointer == p
	}
}

// Package giobridge feeds Gio pointer events through the pointer normalizer.
//
// Gio reports the set of held buttons with every event instead of the button
// that changed, so a Translator remembers the last set per pointer and emits
// one native Button event for every bit that flipped.
package giobridge

import (
	"gioui.org/io/pointer"

	pointers "github.com/doingharm/go-pointer-bus"
	"github.com/doingharm/go-pointer-bus/native"
)

// Sample is a native event with the pointer that produced it.
type Sample struct {
	ID    native.PointerID
	Event native.PointerEvent
}

type pointerKey struct {
	source pointer.Source
	id     pointer.ID
}

// Translator is not safe for concurrent use; Gio delivers events from a single
// goroutine anyway.
type Translator struct {
	held map[pointerKey]pointer.Buttons
}

func NewTranslator() *Translator {
	return &Translator{held: make(map[pointerKey]pointer.Buttons)}
}

var mouseButtons = []struct {
	gio    pointer.Buttons
	native native.MouseButton
}{
	{pointer.ButtonPrimary, native.MouseButton{Kind: native.MouseLeft}},
	{pointer.ButtonSecondary, native.MouseButton{Kind: native.MouseRight}},
	{pointer.ButtonTertiary, native.MouseButton{Kind: native.MouseMiddle}},
	{pointer.ButtonQuaternary, native.MouseButton{Kind: native.MouseBack}},
	{pointer.ButtonQuinary, native.MouseButton{Kind: native.MouseForward}},
}

// Translate converts a Gio event into native samples. Positions stay in Gio
// pixels, which are physical pixels.
func (t *Translator) Translate(ev pointer.Event) []Sample {

	key := pointerKey{source: ev.Source, id: ev.PointerID}
	id := pointerID(ev)
	position := native.PhysicalPosition{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}

	switch ev.Kind {
	case pointer.Enter:
		return []Sample{{ID: id, Event: native.Entered{}}}
	case pointer.Leave:
		return []Sample{{ID: id, Event: native.Left{}}}
	case pointer.Move, pointer.Drag:
		return []Sample{{ID: id, Event: native.Moved{Position: position}}}
	case pointer.Press, pointer.Release:
		return t.buttons(key, id, ev, position)
	case pointer.Scroll:
		return []Sample{{ID: id, Event: native.Scroll{
			Delta: native.PhysicalPosition{X: float64(ev.Scroll.X), Y: float64(ev.Scroll.Y)},
		}}}
	case pointer.Cancel:
		delete(t.held, key)
		return []Sample{{ID: id, Event: native.Cancel{}}}
	default:
		return nil
	}
}

func (t *Translator) buttons(key pointerKey, id native.PointerID, ev pointer.Event, position native.PhysicalPosition) (samples []Sample) {

	if ev.Source == pointer.Touch {
		state := native.Pressed
		if ev.Kind == pointer.Release {
			state = native.Released
		}
		pos := position
		return []Sample{{ID: id, Event: native.Button{Button: native.TouchContact{}, State: state, Position: &pos}}}
	}

	prev := t.held[key]
	now := ev.Buttons
	if ev.Kind == pointer.Release {
		// a release reports the buttons still held
		now &= prev
	} else {
		now |= prev
	}

	for _, b := range mouseButtons {
		was, is := prev.Contain(b.gio), now.Contain(b.gio)
		if was == is {
			continue
		}
		state := native.Released
		if is {
			state = native.Pressed
		}
		pos := position
		samples = append(samples, Sample{ID: id, Event: native.Button{Button: b.native, State: state, Position: &pos}})
	}

	if now == 0 {
		delete(t.held, key)
	} else {
		t.held[key] = now
	}
	return
}

// Events translates and normalizes a Gio event. scale is the number of pixels
// per logical unit, usually gtx.Metric.PxPerDp.
func (t *Translator) Events(ev pointer.Event, scale float32) (events []pointers.Event) {
	for _, s := range t.Translate(ev) {
		if e, ok := pointers.Convert(s.Event, s.ID, float64(scale)); ok {
			events = append(events, e)
		}
	}
	return
}

func pointerID(ev pointer.Event) native.PointerID {
	if ev.Source == pointer.Touch {
		return native.Touch{Finger: uint64(ev.PointerID)}
	}
	return native.Cursor{}
}

package pointers

import (
	"fmt"
	"strconv"
	"strings"

	"gioui.org/f32"
)

// Event is a normalized pointer event.
type Event struct {
	Pointer PointerID `json:"pointer"`
	Type    EventType `json:"event"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Pointer, e.Type)
}

type PointerKind uint8

const (
	MousePointer PointerKind = iota
	TouchPointer
	PenPointer
)

// PointerID identifies an input source. Finger is only set for touch
// pointers and Tool only for pens, so two ids are equal exactly when they
// describe the same pointer.
type PointerID struct {
	Kind   PointerKind `json:"kind"`
	Finger uint64      `json:"finger,omitempty"`
	Tool   Tool        `json:"tool,omitempty"`
}

// Mouse is the single mouse pointer.
var Mouse = PointerID{Kind: MousePointer}

func Touch(finger uint64) PointerID {
	return PointerID{Kind: TouchPointer, Finger: finger}
}

func Pen(tool Tool) PointerID {
	return PointerID{Kind: PenPointer, Tool: tool}
}

func (p PointerID) String() string {
	switch p.Kind {
	case TouchPointer:
		return fmt.Sprintf("touch(%d)", p.Finger)
	case PenPointer:
		return fmt.Sprintf("pen(%s)", p.Tool)
	default:
		return p.Kind.String()
	}
}

type Tool uint8

const (
	ToolPen Tool = iota
	ToolEraser
)

type EventKind uint8

const (
	KindEntered EventKind = iota
	KindLeft
	KindMoved
	KindButton
)

// EventType is what happened to a pointer. Button and Pressed are only set for
// KindButton. Position is always present for KindMoved and optional for
// KindButton; Force is optional for both.
type EventType struct {
	Kind     EventKind           `json:"kind"`
	Button   Button              `json:"button"`
	Pressed  bool                `json:"pressed,omitempty"`
	Position Optional[f32.Point] `json:"position"`
	Force    Optional[float64]   `json:"force"`
}

func Entered() EventType {
	return EventType{Kind: KindEntered}
}

func Left() EventType {
	return EventType{Kind: KindLeft}
}

func Moved(position f32.Point, force Optional[float64]) EventType {
	return EventType{Kind: KindMoved, Position: Some(position), Force: force}
}

func ButtonChanged(button Button, pressed bool, position Optional[f32.Point], force Optional[float64]) EventType {
	return EventType{
		Kind:     KindButton,
		Button:   button,
		Pressed:  pressed,
		Position: position,
		Force:    force,
	}
}

func (t EventType) String() string {
	var b strings.Builder
	b.WriteString(t.Kind.String())
	if t.Kind == KindButton {
		state := "released"
		if t.Pressed {
			state = "pressed"
		}
		fmt.Fprintf(&b, " %s %s", t.Button, state)
	}
	if p, ok := t.Position.Get(); ok {
		fmt.Fprintf(&b, " (%g, %g)", p.X, p.Y)
	}
	if f, ok := t.Force.Get(); ok {
		fmt.Fprintf(&b, " force=%g", f)
	}
	return b.String()
}

type ButtonKind uint8

const (
	ButtonMouse ButtonKind = iota
	ButtonTouch
	ButtonPen
)

// Button is the button of a KindButton event. Touch has no variants: different
// fingers are different pointers.
type Button struct {
	Kind  ButtonKind  `json:"kind"`
	Mouse MouseButton `json:"mouse,omitempty"`
	Pen   PenButton   `json:"pen,omitempty"`
}

func NewMouseButton(b MouseButton) Button {
	return Button{Kind: ButtonMouse, Mouse: b}
}

func NewTouchButton() Button {
	return Button{Kind: ButtonTouch}
}

func NewPenButton(b PenButton) Button {
	return Button{Kind: ButtonPen, Pen: b}
}

func (b Button) String() string {
	switch b.Kind {
	case ButtonMouse:
		return "mouse(" + b.Mouse.String() + ")"
	case ButtonPen:
		return "pen(" + b.Pen.String() + ")"
	default:
		return b.Kind.String()
	}
}

// MouseButton is one of the named buttons or Other with a backend specific
// code, see MouseOther.
type MouseButton uint32

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseBack
	MouseForward
)

const mouseOtherFlag MouseButton = 1 << 16

// MouseOther returns the button with the given backend code.
func MouseOther(code uint16) MouseButton {
	return mouseOtherFlag | MouseButton(code)
}

// Other returns the backend code of a button built by MouseOther.
func (b MouseButton) Other() (code uint16, ok bool) {
	if b&mouseOtherFlag == 0 {
		return 0, false
	}
	return uint16(b), true
}

func (b MouseButton) String() string {
	if code, ok := b.Other(); ok {
		return "other(" + strconv.Itoa(int(code)) + ")"
	}
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	case MouseBack:
		return "back"
	case MouseForward:
		return "forward"
	default:
		return "unknown(" + strconv.Itoa(int(b)) + ")"
	}
}

type PenButton uint8

const (
	PenTouch PenButton = iota
	PenSide
)

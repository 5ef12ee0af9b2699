// Package native describes pointer input the way a windowing or device backend
// reports it, before it is normalized into pointers.Event.
package native

// PointerID identifies the source of a native event: Cursor, Touch or Pen.
type PointerID interface {
	isPointerID()
}

// Cursor is the system mouse cursor.
type Cursor struct{}

// Touch is a single touch contact.
type Touch struct {
	Finger uint64
}

// Pen is a stylus, identified by the end of the tool in use.
type Pen struct {
	Tool Tool
}

func (Cursor) isPointerID() {}
func (Touch) isPointerID()  {}
func (Pen) isPointerID()    {}

type Tool uint8

const (
	ToolPen Tool = iota
	ToolEraser
)

// PointerEvent is one native pointer sample.
type PointerEvent interface {
	isPointerEvent()
}

type Entered struct{}

type Left struct{}

// Moved is a position update in physical pixels.
type Moved struct {
	Position PhysicalPosition
	Force    Force
	Tilt     *Tilt
}

// Button is a press or release of a mouse button, a touch contact or a pen button.
type Button struct {
	Button   ButtonSource
	State    ElementState
	Position *PhysicalPosition
	Force    Force
	Tilt     *Tilt
}

// Scroll is a wheel or touchpad scroll.
type Scroll struct {
	Delta PhysicalPosition
}

// Cancel reports that the backend aborted the current pointer sequence.
type Cancel struct{}

func (Entered) isPointerEvent() {}
func (Left) isPointerEvent()    {}
func (Moved) isPointerEvent()   {}
func (Button) isPointerEvent()  {}
func (Scroll) isPointerEvent()  {}
func (Cancel) isPointerEvent()  {}

type PhysicalPosition struct {
	X float64
	Y float64
}

// Tilt is the pen angle in degrees along each axis.
type Tilt struct {
	X float64
	Y float64
}

type ElementState uint8

const (
	Pressed ElementState = iota
	Released
)

// ButtonSource is the kind of button carried by a Button event.
type ButtonSource interface {
	isButtonSource()
}

type MouseButtonKind uint8

const (
	MouseLeft MouseButtonKind = iota
	MouseRight
	MouseMiddle
	MouseBack
	MouseForward
	MouseOther
)

// MouseButton is a mouse button. Code is only meaningful for MouseOther.
type MouseButton struct {
	Kind MouseButtonKind
	Code uint16
}

// TouchContact is a finger touching or leaving the surface.
type TouchContact struct{}

type PenButton uint8

const (
	PenTip PenButton = iota
	PenBarrel
)

func (MouseButton) isButtonSource()  {}
func (TouchContact) isButtonSource() {}
func (PenButton) isButtonSource()    {}

package pointers

import (
	"math"

	"gioui.org/f32"

	"github.com/doingharm/go-pointer-bus/native"
)

// Convert normalizes a native pointer event reported for the pointer id.
// Positions are divided by scaleFactor to turn physical pixels into logical
// units; a scale factor that is not a positive finite number is treated as 1.
// ok is false for native events that have no canonical form.
func Convert(ev native.PointerEvent, id native.PointerID, scaleFactor float64) (dest Event, ok bool) {

	if scaleFactor <= 0 || math.IsNaN(scaleFactor) || math.IsInf(scaleFactor, 0) {
		scaleFactor = 1
	}

	pointer, ok := ConvertPointerID(id)
	if !ok {
		return Event{}, false
	}

	var event EventType
	switch e := ev.(type) {
	case native.Entered:
		event = Entered()
	case native.Left:
		event = Left()
	case native.Moved:
		event = Moved(descale(e.Position, scaleFactor), convertForce(e.Force))
	case native.Button:
		button, ok := ConvertButton(e.Button)
		if !ok {
			return Event{}, false
		}
		position := None[f32.Point]()
		if e.Position != nil {
			position = Some(descale(*e.Position, scaleFactor))
		}
		event = ButtonChanged(button, ConvertElementState(e.State), position, convertForce(e.Force))
	case native.Scroll:
		// not supported yet
		return Event{}, false
	case native.Cancel:
		// not supported yet
		return Event{}, false
	default:
		return Event{}, false
	}

	return Event{Pointer: pointer, Type: event}, true
}

// ConvertPointerID maps a native pointer identity. ok is false for nil and
// for a pen tool without a canonical counterpart.
func ConvertPointerID(id native.PointerID) (PointerID, bool) {
	switch p := id.(type) {
	case native.Cursor:
		return Mouse, true
	case native.Touch:
		return Touch(p.Finger), true
	case native.Pen:
		tool, ok := ConvertTool(p.Tool)
		if !ok {
			return PointerID{}, false
		}
		return Pen(tool), true
	default:
		return PointerID{}, false
	}
}

func ConvertTool(tool native.Tool) (Tool, bool) {
	switch tool {
	case native.ToolPen:
		return ToolPen, true
	case native.ToolEraser:
		return ToolEraser, true
	default:
		return 0, false
	}
}

// ConvertButton maps a native button source. ok is false for nil and for
// values outside the native enumerations.
func ConvertButton(source native.ButtonSource) (Button, bool) {
	switch b := source.(type) {
	case native.MouseButton:
		button, ok := ConvertMouseButton(b)
		if !ok {
			return Button{}, false
		}
		return NewMouseButton(button), true
	case native.TouchContact:
		return NewTouchButton(), true
	case native.PenButton:
		button, ok := ConvertPenButton(b)
		if !ok {
			return Button{}, false
		}
		return NewPenButton(button), true
	default:
		return Button{}, false
	}
}

func ConvertMouseButton(b native.MouseButton) (MouseButton, bool) {
	switch b.Kind {
	case native.MouseLeft:
		return MouseLeft, true
	case native.MouseRight:
		return MouseRight, true
	case native.MouseMiddle:
		return MouseMiddle, true
	case native.MouseBack:
		return MouseBack, true
	case native.MouseForward:
		return MouseForward, true
	case native.MouseOther:
		return MouseOther(b.Code), true
	default:
		return 0, false
	}
}

func ConvertPenButton(b native.PenButton) (PenButton, bool) {
	switch b {
	case native.PenTip:
		return PenTouch, true
	case native.PenBarrel:
		return PenSide, true
	default:
		return 0, false
	}
}

// ConvertElementState reports whether the state is native.Pressed.
func ConvertElementState(state native.ElementState) bool {
	return state == native.Pressed
}

func descale(p native.PhysicalPosition, scaleFactor float64) f32.Point {
	return f32.Point{
		X: float32(p.X / scaleFactor),
		Y: float32(p.Y / scaleFactor),
	}
}

func convertForce(f native.Force) Optional[float64] {
	if f == nil {
		return None[float64]()
	}
	return Some(f.Normalized())
}

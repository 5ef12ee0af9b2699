package pointers

import "github.com/doingharm/go-pointer-bus/native"

// inputEvent mirrors struct input_event. The timestamp fields are kernel longs,
// so their width follows the architecture.
type inputEvent struct {
	Sec   kernelLong
	Usec  kernelLong
	Type  uint16
	Code  uint16
	Value int32
}

const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport  = 0x00
	synDropped = 0x03

	relX      = 0x00
	relY      = 0x01
	relHWheel = 0x06
	relWheel  = 0x08

	absX            = 0x00
	absY            = 0x01
	absPressure     = 0x18
	absMtSlot       = 0x2f
	absMtPositionX  = 0x35
	absMtPositionY  = 0x36
	absMtTrackingID = 0x39

	btnMouse      = 0x110
	btnLeft       = 0x110
	btnRight      = 0x111
	btnMiddle     = 0x112
	btnSide       = 0x113
	btnExtra      = 0x114
	btnMouseLast  = 0x117
	btnToolPen    = 0x140
	btnToolRubber = 0x141
	btnToolFinger = 0x145
	btnTouch      = 0x14a
	btnStylus     = 0x14b
	btnStylus2    = 0x14c
)

// sample is a native event ready for Convert.
type sample struct {
	ID    native.PointerID
	Event native.PointerEvent
}

type keyChange struct {
	code    uint16
	pressed bool
}

// maxSlots bounds the slot table of a multitouch device.
const maxSlots = 64

type contact struct {
	finger uint64
	x, y   float64
}

// touchSlot is one ABS_MT_SLOT of a type B multitouch device.
type touchSlot struct {
	contact
	active bool

	began    bool
	moved    bool
	ended    bool
	replaced *contact
}

// frameDecoder turns the evdev events of one device into native samples. It
// keeps the state a frame needs: the current position, tool and finger. Once
// a device reports ABS_MT_* events every slot is tracked as its own finger and
// the single touch emulation (ABS_X, BTN_TOUCH) is ignored.
type frameDecoder struct {
	class    DeviceClass
	pressure AbsRange

	x, y   float64
	tool   native.Tool
	finger uint64
	force  native.Force

	multitouch bool
	slot       int
	slots      []touchSlot

	moved    bool
	entered  bool
	left     bool
	keys     []keyChange
	scroll   native.PhysicalPosition
	scrolled bool
	dropped  bool
}

func newFrameDecoder(d Device) *frameDecoder {
	return &frameDecoder{
		class:    d.Class,
		pressure: d.Pressure,
	}
}

// feed consumes one event and returns the samples of a completed frame.
func (d *frameDecoder) feed(e inputEvent) (samples []sample) {

	switch e.Type {
	case evSyn:
		switch e.Code {
		case synReport:
			if d.dropped {
				d.dropped = false
				d.reset()
				return nil
			}
			samples = d.flush()
			d.reset()
		case synDropped:
			// the kernel buffer overran, discard until the next report
			d.dropped = true
		}
	case evRel:
		switch e.Code {
		case relX:
			d.x += float64(e.Value)
			d.moved = true
		case relY:
			d.y += float64(e.Value)
			d.moved = true
		case relWheel:
			d.scroll.Y -= float64(e.Value)
			d.scrolled = true
		case relHWheel:
			d.scroll.X += float64(e.Value)
			d.scrolled = true
		}
	case evAbs:
		switch e.Code {
		case absX:
			if !d.multitouch {
				d.x = float64(e.Value)
				d.moved = true
			}
		case absY:
			if !d.multitouch {
				d.y = float64(e.Value)
				d.moved = true
			}
		case absMtSlot:
			d.multitouch = true
			d.slot = int(e.Value)
		case absMtTrackingID:
			d.multitouch = true
			if s := d.currentSlot(); s != nil {
				s.track(e.Value)
			}
		case absMtPositionX:
			d.multitouch = true
			if s := d.currentSlot(); s != nil {
				s.x = float64(e.Value)
				s.moved = true
			}
		case absMtPositionY:
			d.multitouch = true
			if s := d.currentSlot(); s != nil {
				s.y = float64(e.Value)
				s.moved = true
			}
		case absPressure:
			if d.pressure.Valid() {
				d.force = native.Calibrated{
					Force:            float64(e.Value - d.pressure.Min),
					MaxPossibleForce: float64(d.pressure.Max - d.pressure.Min),
				}
			}
		}
	case evKey:
		d.key(e.Code, e.Value != 0)
	}

	return
}

// currentSlot returns the selected slot, growing the table as needed, or nil
// for an out of range slot.
func (d *frameDecoder) currentSlot() *touchSlot {
	if d.slot < 0 || d.slot >= maxSlots {
		return nil
	}
	for len(d.slots) <= d.slot {
		d.slots = append(d.slots, touchSlot{})
	}
	return &d.slots[d.slot]
}

// track applies an ABS_MT_TRACKING_ID value. A new id on an active slot ends
// the previous contact first; -1 ends the contact.
func (s *touchSlot) track(id int32) {
	if id < 0 {
		if s.active {
			s.active = false
			s.ended = true
		}
		return
	}
	switch {
	case s.active && s.finger == uint64(id):
		return
	case s.active, s.ended:
		previous := s.contact
		s.replaced = &previous
	}
	s.active = true
	s.began = true
	s.ended = false
	s.moved = false
	s.finger = uint64(id)
}

func (d *frameDecoder) key(code uint16, pressed bool) {
	if d.multitouch && (code == btnTouch || code == btnToolFinger) {
		return
	}
	switch code {
	case btnToolPen, btnToolRubber, btnToolFinger:
		if code == btnToolRubber {
			d.tool = native.ToolEraser
		} else if code == btnToolPen {
			d.tool = native.ToolPen
		}
		if pressed {
			d.entered = true
		} else {
			d.left = true
		}
	default:
		d.keys = append(d.keys, keyChange{code: code, pressed: pressed})
	}
}

func (d *frameDecoder) pointerID() native.PointerID {
	switch d.class {
	case TabletDevice:
		return native.Pen{Tool: d.tool}
	case TouchscreenDevice:
		return native.Touch{Finger: d.finger}
	default:
		return native.Cursor{}
	}
}

// buttonSource maps a key code to the button it stands for on this device.
func (d *frameDecoder) buttonSource(code uint16) (native.ButtonSource, bool) {
	switch code {
	case btnLeft:
		return native.MouseButton{Kind: native.MouseLeft}, true
	case btnRight:
		return native.MouseButton{Kind: native.MouseRight}, true
	case btnMiddle:
		return native.MouseButton{Kind: native.MouseMiddle}, true
	case btnSide:
		return native.MouseButton{Kind: native.MouseBack}, true
	case btnExtra:
		return native.MouseButton{Kind: native.MouseForward}, true
	case btnTouch:
		if d.class == TabletDevice {
			return native.PenTip, true
		}
		return native.TouchContact{}, true
	case btnStylus, btnStylus2:
		return native.PenBarrel, true
	}
	if code >= btnMouse && code <= btnMouseLast {
		return native.MouseButton{Kind: native.MouseOther, Code: code}, true
	}
	return nil, false
}

func (d *frameDecoder) flush() (samples []sample) {

	if d.multitouch {
		samples = d.flushSlots()
	}

	id := d.pointerID()
	position := native.PhysicalPosition{X: d.x, Y: d.y}

	if d.entered {
		samples = append(samples, sample{ID: id, Event: native.Entered{}})
	}
	if d.moved {
		samples = append(samples, sample{ID: id, Event: native.Moved{Position: position, Force: d.force}})
	}
	for _, k := range d.keys {
		source, ok := d.buttonSource(k.code)
		if !ok {
			continue
		}
		state := native.Released
		if k.pressed {
			state = native.Pressed
		}
		pos := position
		samples = append(samples, sample{ID: id, Event: native.Button{
			Button:   source,
			State:    state,
			Position: &pos,
			Force:    d.force,
		}})
	}
	if d.scrolled {
		samples = append(samples, sample{ID: id, Event: native.Scroll{Delta: d.scroll}})
	}
	if d.left {
		samples = append(samples, sample{ID: id, Event: native.Left{}})
	}

	return
}

// flushSlots emits the slots in ascending order. A contact enters, moves and
// presses; an ending contact releases where it was last seen and leaves.
func (d *frameDecoder) flushSlots() (samples []sample) {

	touch := func(c contact, pressed bool) []sample {
		id := native.Touch{Finger: c.finger}
		pos := native.PhysicalPosition{X: c.x, Y: c.y}
		if pressed {
			return []sample{{ID: id, Event: native.Button{Button: native.TouchContact{}, State: native.Pressed, Position: &pos}}}
		}
		return []sample{
			{ID: id, Event: native.Button{Button: native.TouchContact{}, State: native.Released, Position: &pos}},
			{ID: id, Event: native.Left{}},
		}
	}

	for i := range d.slots {
		s := &d.slots[i]
		id := native.Touch{Finger: s.finger}

		if s.replaced != nil {
			samples = append(samples, touch(*s.replaced, false)...)
		}
		if s.began {
			samples = append(samples, sample{ID: id, Event: native.Entered{}})
		}
		if s.moved && (s.active || s.ended) {
			samples = append(samples, sample{ID: id, Event: native.Moved{
				Position: native.PhysicalPosition{X: s.x, Y: s.y},
			}})
		}
		if s.began {
			samples = append(samples, touch(s.contact, true)...)
		}
		if s.ended {
			samples = append(samples, touch(s.contact, false)...)
		}
	}

	return
}

// reset clears the per frame flags. Position, tool, finger and the last
// pressure persist until the tool leaves.
func (d *frameDecoder) reset() {
	for i := range d.slots {
		s := &d.slots[i]
		if s.ended {
			*s = touchSlot{}
			continue
		}
		s.began = false
		s.moved = false
		s.replaced = nil
	}
	if d.left {
		d.force = nil
	}
	d.moved = false
	d.entered = false
	d.left = false
	d.keys = d.keys[:0]
	d.scroll = native.PhysicalPosition{}
	d.scrolled = false
}

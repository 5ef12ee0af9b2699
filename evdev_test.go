package pointers

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doingharm/go-pointer-bus/native"
)

func feedAll(d *frameDecoder, events ...inputEvent) (samples []sample) {
	for _, e := range events {
		samples = append(samples, d.feed(e)...)
	}
	return
}

func ev(typ, code uint16, value int32) inputEvent {
	return inputEvent{Type: typ, Code: code, Value: value}
}

var syn = ev(evSyn, synReport, 0)

func TestFrameDecoder_RelativeMouse(t *testing.T) {
	d := newFrameDecoder(Device{Class: MouseDevice})

	assert.Empty(t, d.feed(ev(evRel, relX, 5)))
	assert.Empty(t, d.feed(ev(evRel, relY, -3)))

	samples := d.feed(syn)
	require.Len(t, samples, 1)
	assert.Equal(t, native.Cursor{}, samples[0].ID)
	assert.Equal(t, native.Moved{Position: native.PhysicalPosition{X: 5, Y: -3}}, samples[0].Event)

	samples = feedAll(d, ev(evRel, relX, 2), syn)
	require.Len(t, samples, 1)
	assert.Equal(t, native.PhysicalPosition{X: 7, Y: -3}, samples[0].Event.(native.Moved).Position)
}

func TestFrameDecoder_MouseButtons(t *testing.T) {
	d := newFrameDecoder(Device{Class: MouseDevice})

	samples := feedAll(d,
		ev(evKey, btnLeft, 1),
		ev(evKey, btnExtra, 1),
		ev(evKey, 0x116, 1),
		syn,
		ev(evKey, btnLeft, 0),
		syn,
	)
	require.Len(t, samples, 4)

	assert.Equal(t, native.MouseButton{Kind: native.MouseLeft}, samples[0].Event.(native.Button).Button)
	assert.Equal(t, native.Pressed, samples[0].Event.(native.Button).State)
	assert.Equal(t, native.MouseButton{Kind: native.MouseForward}, samples[1].Event.(native.Button).Button)
	assert.Equal(t, native.MouseButton{Kind: native.MouseOther, Code: 0x116}, samples[2].Event.(native.Button).Button)
	assert.Equal(t, native.Released, samples[3].Event.(native.Button).State)
}

func TestFrameDecoder_TabletStroke(t *testing.T) {
	d := newFrameDecoder(Device{Class: TabletDevice, Pressure: AbsRange{Min: 0, Max: 1000}})

	// pen comes into proximity
	samples := feedAll(d,
		ev(evKey, btnToolPen, 1),
		ev(evAbs, absX, 100),
		ev(evAbs, absY, 200),
		syn,
	)
	require.Len(t, samples, 2)
	assert.Equal(t, native.Pen{Tool: native.ToolPen}, samples[0].ID)
	assert.Equal(t, native.Entered{}, samples[0].Event)
	assert.Equal(t, native.Moved{Position: native.PhysicalPosition{X: 100, Y: 200}}, samples[1].Event)

	// tip touches with pressure
	samples = feedAll(d,
		ev(evAbs, absPressure, 250),
		ev(evKey, btnTouch, 1),
		syn,
	)
	require.Len(t, samples, 1)
	button := samples[0].Event.(native.Button)
	assert.Equal(t, native.PenTip, button.Button)
	assert.Equal(t, native.Pressed, button.State)
	assert.Equal(t, &native.PhysicalPosition{X: 100, Y: 200}, button.Position)
	assert.InDelta(t, 0.25, button.Force.Normalized(), 1e-9)

	// pressure persists across frames that only move
	samples = feedAll(d, ev(evAbs, absX, 110), syn)
	require.Len(t, samples, 1)
	require.NotNil(t, samples[0].Event.(native.Moved).Force)
	assert.InDelta(t, 0.25, samples[0].Event.(native.Moved).Force.Normalized(), 1e-9)

	// barrel button, then the pen leaves
	samples = feedAll(d,
		ev(evKey, btnStylus, 1),
		syn,
		ev(evKey, btnToolPen, 0),
		syn,
	)
	require.Len(t, samples, 2)
	assert.Equal(t, native.PenBarrel, samples[0].Event.(native.Button).Button)
	assert.Equal(t, native.Left{}, samples[1].Event)

	samples = feedAll(d, ev(evAbs, absX, 120), syn)
	require.Len(t, samples, 1)
	assert.Nil(t, samples[0].Event.(native.Moved).Force)
}

func TestFrameDecoder_Eraser(t *testing.T) {
	d := newFrameDecoder(Device{Class: TabletDevice})

	samples := feedAll(d, ev(evKey, btnToolRubber, 1), syn)
	require.Len(t, samples, 1)
	assert.Equal(t, native.Pen{Tool: native.ToolEraser}, samples[0].ID)
}

func TestFrameDecoder_Touchscreen(t *testing.T) {
	d := newFrameDecoder(Device{Class: TouchscreenDevice})

	samples := feedAll(d,
		ev(evAbs, absMtTrackingID, 12),
		ev(evAbs, absMtPositionX, 40),
		ev(evAbs, absMtPositionY, 60),
		ev(evKey, btnTouch, 1),
		ev(evAbs, absX, 40),
		ev(evAbs, absY, 60),
		syn,
	)
	require.Len(t, samples, 3)
	for _, s := range samples {
		assert.Equal(t, native.Touch{Finger: 12}, s.ID)
	}
	assert.Equal(t, native.Entered{}, samples[0].Event)
	assert.Equal(t, native.Moved{Position: native.PhysicalPosition{X: 40, Y: 60}}, samples[1].Event)
	assert.Equal(t, native.Button{
		Button:   native.TouchContact{},
		State:    native.Pressed,
		Position: &native.PhysicalPosition{X: 40, Y: 60},
	}, samples[2].Event)

	// a tracking id of -1 releases the finger where it was last seen
	samples = feedAll(d,
		ev(evAbs, absMtTrackingID, -1),
		ev(evKey, btnTouch, 0),
		syn,
	)
	require.Len(t, samples, 2)
	assert.Equal(t, native.Touch{Finger: 12}, samples[0].ID)
	assert.Equal(t, native.Button{
		Button:   native.TouchContact{},
		State:    native.Released,
		Position: &native.PhysicalPosition{X: 40, Y: 60},
	}, samples[0].Event)
	assert.Equal(t, sample{ID: native.Touch{Finger: 12}, Event: native.Left{}}, samples[1])

	// nothing is left over once the finger is gone
	assert.Empty(t, d.feed(syn))
}

func TestFrameDecoder_TwoFingers(t *testing.T) {
	d := newFrameDecoder(Device{Class: TouchscreenDevice})

	samples := feedAll(d,
		ev(evAbs, absMtSlot, 0),
		ev(evAbs, absMtTrackingID, 1),
		ev(evAbs, absMtPositionX, 100),
		ev(evAbs, absMtPositionY, 100),
		ev(evAbs, absMtSlot, 1),
		ev(evAbs, absMtTrackingID, 2),
		ev(evAbs, absMtPositionX, 500),
		ev(evAbs, absMtPositionY, 500),
		ev(evKey, btnTouch, 1),
		syn,
	)
	require.Len(t, samples, 6)
	for i, finger := range []uint64{1, 1, 1, 2, 2, 2} {
		assert.Equal(t, native.Touch{Finger: finger}, samples[i].ID, "sample %d", i)
	}
	assert.Equal(t, native.Moved{Position: native.PhysicalPosition{X: 100, Y: 100}}, samples[1].Event)
	assert.Equal(t, native.Pressed, samples[2].Event.(native.Button).State)
	assert.Equal(t, native.Moved{Position: native.PhysicalPosition{X: 500, Y: 500}}, samples[4].Event)
	assert.Equal(t, native.Pressed, samples[5].Event.(native.Button).State)

	// only the first finger moves
	samples = feedAll(d,
		ev(evAbs, absMtSlot, 0),
		ev(evAbs, absMtPositionX, 110),
		syn,
	)
	require.Len(t, samples, 1)
	assert.Equal(t, sample{
		ID:    native.Touch{Finger: 1},
		Event: native.Moved{Position: native.PhysicalPosition{X: 110, Y: 100}},
	}, samples[0])

	// the second finger lifts, the first one stays down
	samples = feedAll(d,
		ev(evAbs, absMtSlot, 1),
		ev(evAbs, absMtTrackingID, -1),
		syn,
	)
	require.Len(t, samples, 2)
	assert.Equal(t, native.Touch{Finger: 2}, samples[0].ID)
	assert.Equal(t, &native.PhysicalPosition{X: 500, Y: 500}, samples[0].Event.(native.Button).Position)
	assert.Equal(t, native.Released, samples[0].Event.(native.Button).State)
	assert.Equal(t, native.Left{}, samples[1].Event)

	samples = feedAll(d,
		ev(evAbs, absMtSlot, 0),
		ev(evAbs, absMtPositionY, 120),
		syn,
	)
	require.Len(t, samples, 1)
	assert.Equal(t, native.Touch{Finger: 1}, samples[0].ID)
	assert.Equal(t, native.PhysicalPosition{X: 110, Y: 120}, samples[0].Event.(native.Moved).Position)
}

func TestFrameDecoder_SlotReusedByNewFinger(t *testing.T) {
	d := newFrameDecoder(Device{Class: TouchscreenDevice})

	feedAll(d,
		ev(evAbs, absMtTrackingID, 7),
		ev(evAbs, absMtPositionX, 10),
		ev(evAbs, absMtPositionY, 20),
		syn,
	)

	// a new tracking id without -1 in between ends the old contact first
	samples := feedAll(d,
		ev(evAbs, absMtTrackingID, 8),
		ev(evAbs, absMtPositionX, 30),
		syn,
	)
	require.Len(t, samples, 5)
	assert.Equal(t, native.Touch{Finger: 7}, samples[0].ID)
	assert.Equal(t, &native.PhysicalPosition{X: 10, Y: 20}, samples[0].Event.(native.Button).Position)
	assert.Equal(t, sample{ID: native.Touch{Finger: 7}, Event: native.Left{}}, samples[1])
	assert.Equal(t, sample{ID: native.Touch{Finger: 8}, Event: native.Entered{}}, samples[2])
	assert.Equal(t, native.PhysicalPosition{X: 30, Y: 20}, samples[3].Event.(native.Moved).Position)
	assert.Equal(t, native.Pressed, samples[4].Event.(native.Button).State)
}

func TestFrameDecoder_SlotOutOfRange(t *testing.T) {
	d := newFrameDecoder(Device{Class: TouchscreenDevice})

	samples := feedAll(d,
		ev(evAbs, absMtSlot, maxSlots),
		ev(evAbs, absMtTrackingID, 3),
		ev(evAbs, absMtPositionX, 1),
		syn,
	)
	assert.Empty(t, samples)
	assert.Empty(t, d.slots)
}

func TestInputEvent_MatchesKernelLayout(t *testing.T) {
	// two kernel longs for the timestamp, then type, code and value
	long := int(unsafe.Sizeof(uintptr(0)))
	assert.Equal(t, 2*long+8, binary.Size(inputEvent{}))
}

func TestFrameDecoder_Scroll(t *testing.T) {
	d := newFrameDecoder(Device{Class: MouseDevice})

	samples := feedAll(d, ev(evRel, relWheel, 1), syn)
	require.Len(t, samples, 1)
	assert.Equal(t, native.Scroll{Delta: native.PhysicalPosition{Y: -1}}, samples[0].Event)

	_, ok := Convert(samples[0].Event, samples[0].ID, 1)
	assert.False(t, ok)
}

func TestFrameDecoder_DroppedFrame(t *testing.T) {
	d := newFrameDecoder(Device{Class: MouseDevice})

	samples := feedAll(d,
		ev(evRel, relX, 1),
		ev(evSyn, synDropped, 0),
		ev(evKey, btnLeft, 1),
		syn,
	)
	assert.Empty(t, samples)

	samples = feedAll(d, ev(evRel, relX, 1), syn)
	require.Len(t, samples, 1)
}

func TestFrameDecoder_UnknownKeysAreIgnored(t *testing.T) {
	d := newFrameDecoder(Device{Class: MouseDevice})

	samples := feedAll(d, ev(evKey, 0x1e, 1), syn)
	assert.Empty(t, samples)
}

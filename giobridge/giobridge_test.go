package giobridge

import (
	"testing"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pointers "github.com/doingharm/go-pointer-bus"
	"github.com/doingharm/go-pointer-bus/native"
)

func mouse(kind pointer.Kind, buttons pointer.Buttons, x, y float32) pointer.Event {
	return pointer.Event{
		Kind:     kind,
		Source:   pointer.Mouse,
		Buttons:  buttons,
		Position: f32.Point{X: x, Y: y},
	}
}

func TestTranslate_EnterMoveLeave(t *testing.T) {
	tr := NewTranslator()

	assert.Equal(t, []Sample{{ID: native.Cursor{}, Event: native.Entered{}}}, tr.Translate(mouse(pointer.Enter, 0, 0, 0)))
	assert.Equal(t, []Sample{{ID: native.Cursor{}, Event: native.Moved{Position: native.PhysicalPosition{X: 4, Y: 8}}}},
		tr.Translate(mouse(pointer.Move, 0, 4, 8)))
	assert.Equal(t, []Sample{{ID: native.Cursor{}, Event: native.Left{}}}, tr.Translate(mouse(pointer.Leave, 0, 0, 0)))
}

func TestTranslate_ButtonDiff(t *testing.T) {
	tr := NewTranslator()

	samples := tr.Translate(mouse(pointer.Press, pointer.ButtonPrimary, 1, 2))
	require.Len(t, samples, 1)
	b := samples[0].Event.(native.Button)
	assert.Equal(t, native.MouseButton{Kind: native.MouseLeft}, b.Button)
	assert.Equal(t, native.Pressed, b.State)
	assert.Equal(t, &native.PhysicalPosition{X: 1, Y: 2}, b.Position)

	// the second press reports both buttons, only the new one changed
	samples = tr.Translate(mouse(pointer.Press, pointer.ButtonPrimary|pointer.ButtonSecondary, 1, 2))
	require.Len(t, samples, 1)
	assert.Equal(t, native.MouseButton{Kind: native.MouseRight}, samples[0].Event.(native.Button).Button)

	// releasing the primary button leaves the secondary one held
	samples = tr.Translate(mouse(pointer.Release, pointer.ButtonSecondary, 1, 2))
	require.Len(t, samples, 1)
	assert.Equal(t, native.MouseButton{Kind: native.MouseLeft}, samples[0].Event.(native.Button).Button)
	assert.Equal(t, native.Released, samples[0].Event.(native.Button).State)

	samples = tr.Translate(mouse(pointer.Release, 0, 1, 2))
	require.Len(t, samples, 1)
	assert.Equal(t, native.MouseButton{Kind: native.MouseRight}, samples[0].Event.(native.Button).Button)
	assert.Empty(t, tr.held)
}

func TestTranslate_Touch(t *testing.T) {
	tr := NewTranslator()

	press := pointer.Event{Kind: pointer.Press, Source: pointer.Touch, PointerID: 3, Position: f32.Point{X: 5, Y: 6}}
	samples := tr.Translate(press)
	require.Len(t, samples, 1)
	assert.Equal(t, native.Touch{Finger: 3}, samples[0].ID)
	assert.Equal(t, native.TouchContact{}, samples[0].Event.(native.Button).Button)

	press.Kind = pointer.Release
	samples = tr.Translate(press)
	require.Len(t, samples, 1)
	assert.Equal(t, native.Released, samples[0].Event.(native.Button).State)
}

func TestTranslate_ScrollAndCancel(t *testing.T) {
	tr := NewTranslator()

	scroll := mouse(pointer.Scroll, 0, 0, 0)
	scroll.Scroll = f32.Point{Y: 3}
	assert.Equal(t, []Sample{{ID: native.Cursor{}, Event: native.Scroll{Delta: native.PhysicalPosition{Y: 3}}}}, tr.Translate(scroll))

	tr.Translate(mouse(pointer.Press, pointer.ButtonPrimary, 0, 0))
	assert.Equal(t, []Sample{{ID: native.Cursor{}, Event: native.Cancel{}}}, tr.Translate(mouse(pointer.Cancel, 0, 0, 0)))
	assert.Empty(t, tr.held)
}

func TestEvents_Normalizes(t *testing.T) {
	tr := NewTranslator()

	events := tr.Events(mouse(pointer.Drag, pointer.ButtonPrimary, 200, 100), 2)
	assert.Equal(t, []pointers.Event{{
		Pointer: pointers.Mouse,
		Type:    pointers.Moved(f32.Point{X: 100, Y: 50}, pointers.None[float64]()),
	}}, events)

	// scroll has no canonical form
	assert.Empty(t, tr.Events(mouse(pointer.Scroll, 0, 0, 0), 2))
}

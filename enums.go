package pointers

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	pointerKindNames = []string{"mouse", "touch", "pen"}
	toolNames        = []string{"pen", "eraser"}
	eventKindNames   = []string{"entered", "left", "moved", "button"}
	buttonKindNames  = []string{"mouse", "touch", "pen"}
	penButtonNames   = []string{"touch", "side"}
)

func enumString(names []string, v int) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return "unknown(" + strconv.Itoa(v) + ")"
}

func enumParse(kind string, names []string, text []byte) (int, error) {
	s := string(text)
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf(ErrUnknownEnumValue, kind, s)
}

func (k PointerKind) String() string { return enumString(pointerKindNames, int(k)) }
func (t Tool) String() string        { return enumString(toolNames, int(t)) }
func (k EventKind) String() string   { return enumString(eventKindNames, int(k)) }
func (k ButtonKind) String() string  { return enumString(buttonKindNames, int(k)) }
func (b PenButton) String() string   { return enumString(penButtonNames, int(b)) }

func (k PointerKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (t Tool) MarshalText() ([]byte, error)        { return []byte(t.String()), nil }
func (k EventKind) MarshalText() ([]byte, error)   { return []byte(k.String()), nil }
func (k ButtonKind) MarshalText() ([]byte, error)  { return []byte(k.String()), nil }
func (b PenButton) MarshalText() ([]byte, error)   { return []byte(b.String()), nil }
func (b MouseButton) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (k *PointerKind) UnmarshalText(text []byte) error {
	v, err := enumParse("pointer kind", pointerKindNames, text)
	*k = PointerKind(v)
	return err
}

func (t *Tool) UnmarshalText(text []byte) error {
	v, err := enumParse("tool", toolNames, text)
	*t = Tool(v)
	return err
}

func (k *EventKind) UnmarshalText(text []byte) error {
	v, err := enumParse("event kind", eventKindNames, text)
	*k = EventKind(v)
	return err
}

func (k *ButtonKind) UnmarshalText(text []byte) error {
	v, err := enumParse("button kind", buttonKindNames, text)
	*k = ButtonKind(v)
	return err
}

func (b *PenButton) UnmarshalText(text []byte) error {
	v, err := enumParse("pen button", penButtonNames, text)
	*b = PenButton(v)
	return err
}

func (b *MouseButton) UnmarshalText(text []byte) error {
	s := string(text)
	if strings.HasPrefix(s, "other(") && strings.HasSuffix(s, ")") {
		code, err := strconv.ParseUint(s[len("other("):len(s)-1], 10, 16)
		if err != nil {
			return fmt.Errorf(ErrUnknownEnumValue, "mouse button", s)
		}
		*b = MouseOther(uint16(code))
		return nil
	}
	for _, named := range []MouseButton{MouseLeft, MouseRight, MouseMiddle, MouseBack, MouseForward} {
		if named.String() == s {
			*b = named
			return nil
		}
	}
	return fmt.Errorf(ErrUnknownEnumValue, "mouse button", s)
}

package pointers

import "strings"

// linuxEntryType is an enumeration of the entries found in the input directory.
type linuxEntryType uint8

const (
	irrelevantEntryType linuxEntryType = iota
	eventEntryType
)

func extractFromBytes(src []byte) (t linuxEntryType, name string, ok bool) {
	name = escapeString(src)
	switch {
	case strings.HasPrefix(name, "event"):
		return eventEntryType, name, true
	default:
		return irrelevantEntryType, "", false
	}
}

func hasBit(bits []byte, n int) bool {
	if n/8 >= len(bits) {
		return false
	}
	return bits[n/8]&(1<<(n%8)) != 0
}

// classify derives the device class from its EV_KEY capability bits.
func classify(keyBits []byte) (class DeviceClass, ok bool) {
	switch {
	case hasBit(keyBits, btnToolPen), hasBit(keyBits, btnStylus):
		return TabletDevice, true
	case hasBit(keyBits, btnTouch):
		return TouchscreenDevice, true
	case hasBit(keyBits, btnLeft):
		return MouseDevice, true
	default:
		return 0, false
	}
}

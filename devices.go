package pointers

type DeviceClass uint8

const (
	MouseDevice DeviceClass = iota
	TouchscreenDevice
	TabletDevice
)

func (c DeviceClass) String() string {
	switch c {
	case MouseDevice:
		return "mouse"
	case TouchscreenDevice:
		return "touchscreen"
	case TabletDevice:
		return "tablet"
	default:
		return "unknown"
	}
}

// Device holds information of a pointer device
type Device struct {
	ID    string
	Name  string
	Class DeviceClass
	// Pressure is the raw pressure range, zero when the device reports none.
	Pressure AbsRange
}

// AbsRange is the range of an absolute axis as reported by the kernel.
type AbsRange struct {
	Min int32
	Max int32
}

func (r AbsRange) Valid() bool {
	return r.Max > r.Min
}

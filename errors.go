package pointers

const (
	ErrBusClosed               = "bus is closed"
	ErrOsNotSupported          = "os is not supported (yet)"
	ErrDeviceAlreadySubscribed = "device is already subscribed"
	ErrDeviceNotSubscribed     = "device is not subscribed"
	ErrDeviceNotFound          = "device with id '%s' was not found"
	ErrNotPointerDevice        = "device '%s' has no pointer buttons"
	ErrInvalidScaleFactor      = "scale factor must be a positive finite number, got %v"
	ErrEmptyInputPath          = "input path must not be empty"
	ErrUnknownEnumValue        = "unknown %s %q"
)

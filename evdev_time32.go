//go:build 386 || arm || mips || mipsle

package pointers

// struct input_event carries two 32-bit longs ahead of type, code and value.
type kernelLong = int32

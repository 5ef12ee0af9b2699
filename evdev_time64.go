//go:build !(386 || arm || mips || mipsle)

package pointers

type kernelLong = int64

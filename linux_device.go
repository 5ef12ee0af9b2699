//go:build linux

package pointers

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"
	"unsafe"
)

const (
	// _IOC(_IOC_READ, 'E', nr, size)
	iocRead    = 2 << 30
	iocTypeEV  = 'E' << 8
	iocSizeSh  = 16
	absInfoLen = 24
	keyBitsLen = 0x2ff/8 + 1
	nameLen    = 128
)

func eviocgname(size int) int    { return iocRead | size<<iocSizeSh | iocTypeEV | 0x06 }
func eviocgbit(ev, size int) int { return iocRead | size<<iocSizeSh | iocTypeEV | (0x20 + ev) }
func eviocgabs(abs int) int      { return iocRead | absInfoLen<<iocSizeSh | iocTypeEV | (0x40 + abs) }

// absInfo mirrors struct input_absinfo.
type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

type deviceLinux struct {
	ctx         context.Context
	cancelFunc  context.CancelFunc
	file        *os.File
	info        Device
	path        string
	scaleFactor float64
	subscribed  bool
	wg          sync.WaitGroup
}

// newLinuxDevice queries name, capabilities and pressure range of an evdev node.
func newLinuxDevice(name, path string, scaleFactor float64) (*deviceLinux, error) {

	f, err := openFilePersistent(path, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	dev := &deviceLinux{
		path:        path,
		scaleFactor: scaleFactor,
		info:        Device{ID: name},
	}

	if err = ioctlStr(f, eviocgname(nameLen), &dev.info.Name); err != nil {
		return nil, err
	}

	var keys [keyBitsLen]byte
	if err = ioctl(f, eviocgbit(evKey, keyBitsLen), unsafe.Pointer(&keys[0])); err != nil {
		return nil, err
	}
	class, ok := classify(keys[:])
	if !ok {
		return nil, fmt.Errorf(ErrNotPointerDevice, name)
	}
	dev.info.Class = class

	var pressure absInfo
	if ioctl(f, eviocgabs(absPressure), unsafe.Pointer(&pressure)) == nil {
		dev.info.Pressure = AbsRange{Min: pressure.Minimum, Max: pressure.Maximum}
	}

	return dev, nil
}

func (d *deviceLinux) subscribe(parent context.Context, s sink) (err error) {

	if d.subscribed {
		return errors.New(ErrDeviceAlreadySubscribed)
	}

	if d.file, err = openFilePersistent(d.path, os.O_RDONLY); err != nil {
		return
	}

	d.ctx, d.cancelFunc = context.WithCancel(parent)
	d.subscribed = true

	decoder := newFrameDecoder(d.info)
	file := d.file

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		id := d.info.ID
		for {

			var e inputEvent
			if err := binary.Read(file, binary.LittleEndian, &e); err != nil {
				select {
				case <-d.ctx.Done():
				default:
					s.report(d.ctx, fmt.Errorf("read %s: %w", id, err))
				}
				return
			}

			for _, smp := range decoder.feed(e) {
				ev, ok := Convert(smp.Event, smp.ID, d.scaleFactor)
				if !ok {
					continue
				}

				select {
				case <-d.ctx.Done():
					return
				default:
				}

				s.publish(d.ctx, &Message{
					Type: PointerMessage,
					ID:   id,
					Data: ev,
				})
			}
		}
	}()

	return
}

// unsubscribe stops the reader and waits for it to return.
func (d *deviceLinux) unsubscribe() (err error) {

	if !d.subscribed {
		return errors.New(ErrDeviceNotSubscribed)
	}

	d.cancelFunc()
	err = d.file.Close()
	d.wg.Wait()
	d.subscribed = false
	return
}

func ioctl(f *os.File, request int, dest unsafe.Pointer) (err error) {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL,
		f.Fd(),
		uintptr(request),
		uintptr(dest),
	)
	if errno != 0 {
		return fmt.Errorf("ioctl error: %d", errno)
	}
	return
}

func ioctlStr(f *os.File, request int, dest *string) (err error) {
	info := make([]byte, nameLen)
	if err = ioctl(f, request, unsafe.Pointer(&info[0])); err != nil {
		return
	}
	*dest = escapeString(info)
	return
}

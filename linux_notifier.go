//go:build linux

package pointers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"github.com/hashicorp/go-multierror"
	"github.com/kataras/golog"
	"golang.org/x/sys/unix"
)

type notifyLinux struct {
	sync.RWMutex
	ctx      context.Context
	cfg      Config
	logger   *golog.Logger
	sink     sink
	devs     []*deviceLinux
	watch    *os.File
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// linuxNotifier creates a Linux-specific pointer device notification system.
func linuxNotifier(ctx context.Context, s sink, cfg Config, logger *golog.Logger) (nn notify, err error) {

	nl := &notifyLinux{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		sink:   s,
	}

	// Watch before the initial scan so that no device slips in between.
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, fmt.Errorf("inotify init failed: %w", err)
	}
	if _, err = unix.InotifyAddWatch(fd, cfg.InputPath, unix.IN_CREATE|unix.IN_DELETE|unix.IN_ATTRIB); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("inotify add watch failed: %w", err)
	}
	// A non-blocking descriptor wrapped in os.File is served by the runtime
	// poller, so closing it interrupts the pending read.
	nl.watch = os.NewFile(uintptr(fd), "inotify")

	var current []os.DirEntry
	current, err = os.ReadDir(cfg.InputPath)
	if err != nil {
		_ = nl.watch.Close()
		return nil, err
	}

	for _, entry := range current {
		nl.handleEvent(unix.IN_CREATE, []byte(entry.Name()))
	}

	nl.wg.Add(1)
	go nl.watchLoop()

	return nl, nil
}

func (nl *notifyLinux) watchLoop() {
	defer nl.wg.Done()

	buf := make([]byte, 4096)

	for {
		n, err := nl.watch.Read(buf)
		if err != nil {
			if !errors.Is(err, os.ErrClosed) {
				nl.sink.report(nl.ctx, fmt.Errorf("read failed: %w", err))
			}
			return
		}

		var offset uint32
		for offset+unix.SizeofInotifyEvent <= uint32(n) {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			start := offset + unix.SizeofInotifyEvent
			nameBytes := buf[start : start+event.Len]
			nl.handleEvent(event.Mask, nameBytes)
			offset = start + event.Len
		}
	}
}

// devices returns a list of connected pointer devices.
func (nl *notifyLinux) devices() (devices []Device) {
	nl.RLock()
	defer nl.RUnlock()
	for _, d := range nl.devs {
		devices = append(devices, d.info)
	}
	return
}

// stop stops the notification system and all device readers.
func (nl *notifyLinux) stop() (err error) {

	nl.stopOnce.Do(func() {
		if closeErr := nl.watch.Close(); closeErr != nil {
			err = multierror.Append(err, closeErr)
		}
		nl.wg.Wait()

		nl.Lock()
		defer nl.Unlock()
		for _, d := range nl.devs {
			if !d.subscribed {
				continue
			}
			if unsubErr := d.unsubscribe(); unsubErr != nil && !errors.Is(unsubErr, os.ErrClosed) {
				err = multierror.Append(err, fmt.Errorf("%s: %w", d.info.ID, unsubErr))
			}
		}
	})

	return
}

// subscribe subscribes to the device with the given ID.
func (nl *notifyLinux) subscribe(id string) (err error) {
	nl.Lock()
	defer nl.Unlock()

	for _, d := range nl.devs {
		if d.info.ID != id {
			continue
		}

		nl.logger.Debugf("subscribing to %s (%s)", id, d.info.Name)
		return d.subscribe(nl.ctx, nl.sink)

	}

	return fmt.Errorf(ErrDeviceNotFound, id)
}

// unsubscribe unsubscribes from the device with the given ID.
func (nl *notifyLinux) unsubscribe(id string) (err error) {
	nl.Lock()
	defer nl.Unlock()

	for _, d := range nl.devs {
		if d.info.ID != id {
			continue
		}

		return d.unsubscribe()

	}

	return fmt.Errorf(ErrDeviceNotFound, id)
}

// handleEvent is called for every entry of the input directory and for every
// event received from the inotify system.
func (nl *notifyLinux) handleEvent(mask uint32, bt []byte) {

	t, name, ok := extractFromBytes(bt)

	if !ok || t != eventEntryType {
		return
	}

	switch {
	case mask&(unix.IN_CREATE|unix.IN_ATTRIB) != 0:
		nl.connectDevice(name)
	case mask&unix.IN_DELETE != 0:
		nl.disconnectDevice(name)
	default:
	}
}

// connectDevice is called when a new device node shows up or its permissions change.
func (nl *notifyLinux) connectDevice(name string) {

	nl.RLock()
	for _, d := range nl.devs {
		if d.info.ID == name {
			nl.RUnlock()
			return
		}
	}
	nl.RUnlock()

	path := filepath.Join(nl.cfg.InputPath, name)

	dev, err := newLinuxDevice(name, path, nl.cfg.ScaleFactor)
	if err != nil {
		// keyboards and other non-pointer devices end up here as well
		nl.logger.Debugf("skipping %s: %v", path, err)
		return
	}

	nl.Lock()
	nl.devs = append(nl.devs, dev)
	nl.Unlock()

	nl.logger.Infof("connected %s %q (%s)", name, dev.info.Name, dev.info.Class)

	select {
	case <-nl.ctx.Done():
		return
	default:
		nl.sink.publish(nl.ctx, &Message{
			Type: ConnectMessage,
			ID:   name,
			Data: dev.info,
		})
	}

	if nl.cfg.AutoSubscribe {
		if err = nl.subscribe(name); err != nil {
			nl.sink.report(nl.ctx, err)
		}
	}

}

// disconnectDevice is called when a device node is removed.
func (nl *notifyLinux) disconnectDevice(name string) {

	nl.Lock()
	var (
		removed *deviceLinux
		clean   []*deviceLinux
	)
	for _, d := range nl.devs {
		if d.info.ID == name {
			removed = d
			continue
		}
		clean = append(clean, d)
	}
	nl.devs = clean
	nl.Unlock()

	if removed == nil {
		return
	}

	// the reader returns on its own cancelled context, so this does not wait
	// for message consumers
	if removed.subscribed {
		_ = removed.unsubscribe()
	}

	nl.logger.Infof("disconnected %s", name)

	nl.sink.publish(nl.ctx, &Message{
		Type: DisconnectMessage,
		ID:   name,
		Data: nil,
	})
}

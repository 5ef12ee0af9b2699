package pointers

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/kataras/golog"
)

type bus struct {
	sync.RWMutex
	cfg        Config
	logger     *golog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
	messages   chan *Message
	errChannel chan error
	notifier   notify
	channels   []*MessageChannel
	closed     bool
	done       chan struct{}
}

type Bus interface {
	NewMessageChannel(filters ...FilterFunc) (dest *MessageChannel)
	Devices() (devices []Device)
	Subscribe(id string) (err error)
	Unsubscribe(id string) (err error)
	Close() (err error)
}

// New starts watching cfg.InputPath for pointer devices. Asynchronous errors
// are sent on errCh, which is closed by Close.
func New(cfg Config) (b Bus, errCh <-chan error, err error) {

	if err = cfg.Validate(); err != nil {
		return nil, nil, err
	}

	dest := newBus(cfg)

	switch runtime.GOOS {
	case "linux":
		if dest.notifier, err = linuxNotifier(dest.ctx, dest, dest.cfg, dest.logger); err != nil {
			dest.cancelFunc()
			return nil, nil, err
		}
		return dest, dest.errChannel, nil
	default:
		dest.cancelFunc()
		return nil, nil, errors.New(ErrOsNotSupported)
	}

}

func newBus(cfg Config) *bus {
	logger := golog.New()
	logger.SetPrefix("[pointers] ")
	if cfg.Verbose {
		logger.SetLevel("debug")
	} else {
		logger.SetLevel("warn")
	}

	dest := &bus{
		cfg:        cfg,
		logger:     logger,
		messages:   make(chan *Message),
		errChannel: make(chan error),
		done:       make(chan struct{}),
	}
	dest.ctx, dest.cancelFunc = context.WithCancel(context.Background())
	go dest.run()
	return dest
}

// run fans every published message out to the message channels.
func (b *bus) run() {
	defer close(b.done)
	for {
		select {
		case <-b.ctx.Done():
			return
		case m := <-b.messages:
			b.RLock()
			channels := append([]*MessageChannel(nil), b.channels...)
			b.RUnlock()

			for _, ch := range channels {
				select {
				case ch.inbox <- m:
				case <-ch.Ctx.Done():
				}
			}
		}
	}
}

func (b *bus) publish(ctx context.Context, m *Message) {
	b.logger.Debugf("%s message from %s: %v", m.Type, m.ID, m.Data)
	select {
	case b.messages <- m:
	case <-ctx.Done():
	case <-b.ctx.Done():
	}
}

func (b *bus) report(ctx context.Context, err error) {
	b.logger.Warn(err)
	// errChannel is closed once the bus is done
	if b.ctx.Err() != nil || ctx.Err() != nil {
		return
	}
	select {
	case b.errChannel <- err:
	case <-ctx.Done():
	case <-b.ctx.Done():
	}
}

func (b *bus) NewMessageChannel(filters ...FilterFunc) (dest *MessageChannel) {

	b.Lock()
	defer b.Unlock()

	if b.closed {
		return nil
	}

	ctx, cancelFunc := context.WithCancel(b.ctx)

	dest = &MessageChannel{
		Ctx:        ctx,
		Ch:         make(chan *Message),
		CancelFunc: cancelFunc,
		inbox:      make(chan *Message),
		filters:    filters,
	}

	b.channels = append(b.channels, dest)

	go func() {
		defer close(dest.Ch)
		for {
			select {
			case <-ctx.Done():
				b.remove(dest)
				return
			case m := <-dest.inbox:
				if !dest.accept(m) {
					continue
				}
				select {
				case dest.Ch <- m:
				case <-ctx.Done():
					b.remove(dest)
					return
				}
			}
		}
	}()

	return
}

func (b *bus) remove(ch *MessageChannel) {
	b.Lock()
	defer b.Unlock()
	var clean []*MessageChannel
	for _, channel := range b.channels {
		if channel != ch {
			clean = append(clean, channel)
		}
	}
	b.channels = clean
}

func (b *bus) Devices() (devices []Device) {
	if n := b.current(); n != nil {
		return n.devices()
	}
	return nil
}

func (b *bus) Subscribe(id string) (err error) {
	n := b.current()
	if n == nil {
		return errors.New(ErrBusClosed)
	}
	return n.subscribe(id)
}

func (b *bus) Unsubscribe(id string) (err error) {
	n := b.current()
	if n == nil {
		return errors.New(ErrBusClosed)
	}
	return n.unsubscribe(id)
}

func (b *bus) current() notify {
	b.RLock()
	defer b.RUnlock()
	if b.closed {
		return nil
	}
	return b.notifier
}

// Close stops every device reader, cancels all message channels and closes
// the error channel.
func (b *bus) Close() (err error) {

	b.Lock()
	if b.closed {
		b.Unlock()
		return errors.New(ErrBusClosed)
	}
	b.closed = true
	notifier := b.notifier
	b.Unlock()

	b.cancelFunc()

	if notifier != nil {
		if stopErr := notifier.stop(); stopErr != nil {
			err = multierror.Append(err, stopErr)
		}
	}

	<-b.done
	close(b.errChannel)

	return
}

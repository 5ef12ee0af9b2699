package pointers

import "context"

type notify interface {
	stop() (err error)
	devices() (devices []Device)
	subscribe(id string) (err error)
	unsubscribe(id string) (err error)
}

// sink receives what notifiers and device readers produce. Both calls give up
// once ctx or the bus is done.
type sink interface {
	publish(ctx context.Context, m *Message)
	report(ctx context.Context, err error)
}

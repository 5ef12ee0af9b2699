//go:build !linux

package pointers

import (
	"context"
	"errors"

	"github.com/kataras/golog"
)

func linuxNotifier(_ context.Context, _ sink, _ Config, _ *golog.Logger) (notify, error) {
	return nil, errors.New(ErrOsNotSupported)
}

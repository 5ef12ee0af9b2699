package pointers

import (
	"errors"
	"os"
	"time"
)

func escapeString(src []byte) string {
	n := 0
	for _, b := range src {
		if b != 0 {
			src[n] = b
			n++
		}
	}
	return string(src[:n])
}

// openFilePersistent retries while udev has not yet fixed the permissions of
// a freshly created node.
func openFilePersistent(path string, flag int) (f *os.File, err error) {

	for i := 0; i < 5; i++ {
		if f, err = os.OpenFile(path, flag, 0); err != nil {
			if errors.Is(err, os.ErrPermission) {
				if i == 4 {
					return
				}
				timer := time.NewTimer(200 * time.Millisecond)
				<-timer.C
				timer.Stop()
				continue
			} else {
				return
			}
		}
		break
	}
	return
}

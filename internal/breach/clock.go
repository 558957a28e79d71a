package breach

import (
	"sync"
	"time"
)

// Clock schedules the controller's countdown ticks and delayed payout.
// Both methods return a stop function that is safe to call more than once
// and from inside the scheduled callback.
type Clock interface {
	Every(d time.Duration, f func()) (stop func())
	After(d time.Duration, f func()) (stop func())
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Every(d time.Duration, f func()) func() {
	t := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-t.C:
				f()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.Stop()
			close(done)
		})
	}
}

func (systemClock) After(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

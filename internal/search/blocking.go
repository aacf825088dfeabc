package search

import (
	"errors"
	"time"
)

// ErrCallTimeout is returned by BlockingCall when the operation does not
// complete within its deadline.
var ErrCallTimeout = errors.New("index call timed out")

// DefaultCallTimeout bounds every index transport call. A hung transport
// degrades to the fallback path instead of hanging the request.
const DefaultCallTimeout = 30 * time.Second

// BlockingCall runs op on its own goroutine and blocks until it finishes or
// the timeout elapses. The transport client manages its own concurrency
// internally; running it on an isolated goroutine keeps a busy caller from
// deadlocking on it, and the timeout guarantees the caller always gets an
// answer. On timeout the abandoned goroutine is left to finish on its own;
// the buffered channel lets it exit without a receiver.
func BlockingCall(op func() error, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- op()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return ErrCallTimeout
	}
}

package core

import "errors"

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// Frame is one encoded outbound envelope.
type Frame []byte

// SignalConnection is the outbound side of one client socket. The adapter
// owns it and must Close it.
type SignalConnection interface {
	// TrySend queues f without blocking. It returns ErrBackpressure when
	// the queue is full and ErrConnClosed after Close.
	TrySend(f Frame) error
	Close()
}

package core

import "context"

// Node is the interface every pipeline stage implements.
type Node interface {
	// Process consumes one message and returns the message to forward.
	// Stages that do I/O may block until ctx is done; stages that do not
	// return immediately.
	Process(ctx context.Context, m Message) (Message, error)
}

// NodeFunc adapts a function to the Node interface.
type NodeFunc func(ctx context.Context, m Message) (Message, error)

// Process calls f(ctx, m).
func (f NodeFunc) Process(ctx context.Context, m Message) (Message, error) {
	return f(ctx, m)
}

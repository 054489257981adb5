// Package messagequeue carries asynchronous work, currently support emails,
// from the API process to the worker.
package messagequeue

import "context"

// Handler processes one delivery. Returning an error rejects the message.
type Handler func(ctx context.Context, body []byte) error

// MessageQueue defines the interface for message queue services.
type MessageQueue interface {
	Publish(ctx context.Context, queueName string, body []byte) error
	// Consume blocks, dispatching deliveries to handler until ctx is done.
	Consume(ctx context.Context, queueName string, handler Handler) error
	Close() error
}

package messaging

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NatsClient is a connection to a remote inventory broker.
type NatsClient struct {
	conn *nats.Conn
}

// DialNats connects to the broker at url.
func DialNats(url string, opts ...nats.Option) (*NatsClient, error) {
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	return &NatsClient{conn: conn}, nil
}

// Request sends data to subject and waits for a single reply.
func (c *NatsClient) Request(ctx context.Context, subject string, data []byte) ([]byte, error) {
	msg, err := c.conn.RequestWithContext(ctx, subject, data)
	if err != nil {
		return nil, err
	}
	return msg.Data, nil
}

// Subscribe calls handler for each message on subject until the returned
// function is called.
func (c *NatsClient) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Flush waits until the broker has processed everything sent so far,
// including subscriptions.
func (c *NatsClient) Flush() error {
	return c.conn.Flush()
}

func (c *NatsClient) Close() {
	c.conn.Close()
}

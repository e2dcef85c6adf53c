package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-inventory/internal/inventory"
)

// Requester sends a request and waits for its reply.
type Requester interface {
	Request(ctx context.Context, subject string, data []byte) ([]byte, error)
}

// NatsForwarder sends inventory requests to the process that owns the
// inventory.
type NatsForwarder struct {
	requester Requester
}

func NewNatsForwarder(r Requester) *NatsForwarder {
	return &NatsForwarder{requester: r}
}

func (f *NatsForwarder) Forward(ctx context.Context, req inventory.Request) (inventory.Response, error) {
	var resp inventory.Response

	data, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("marshalling request: %w", err)
	}

	reply, err := f.requester.Request(ctx, RequestSubject(req.Owner), data)
	if err != nil {
		return resp, err
	}

	if err := json.Unmarshal(reply, &resp); err != nil {
		return resp, fmt.Errorf("unmarshalling response: %w", err)
	}
	return resp, nil
}

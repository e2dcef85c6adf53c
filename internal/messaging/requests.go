package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-inventory/internal/host"
	"github.com/pixil98/go-inventory/internal/inventory"
)

// RequestHandler registers reply handlers on a subject.
type RequestHandler interface {
	HandleRequests(subject string, handler func(data []byte) []byte) (unsubscribe func(), err error)
}

// OwnerFactory builds the owner of a newly opened inventory.
type OwnerFactory func(id string) inventory.Owner

type ownerPayload struct {
	Owner string `json:"owner"`
}

// RequestServer answers inventory requests arriving over NATS by applying
// them to the host's inventories.
type RequestServer struct {
	handler  RequestHandler
	host     *host.Host
	newOwner OwnerFactory
	schemas  *payloadSchemas
	ready    <-chan struct{}
}

// NewRequestServer creates a RequestServer. ready, if not nil, is waited on
// before subscribing.
func NewRequestServer(handler RequestHandler, h *host.Host, newOwner OwnerFactory, ready <-chan struct{}) (*RequestServer, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &RequestServer{
		handler:  handler,
		host:     h,
		newOwner: newOwner,
		schemas:  schemas,
		ready:    ready,
	}, nil
}

func (s *RequestServer) Start(ctx context.Context) error {
	if s.ready != nil {
		select {
		case <-ctx.Done():
			return nil
		case <-s.ready:
		}
	}

	routes := map[string]func([]byte) []byte{
		requestWildcard: s.HandleRequest,
		OpenSubject:     s.HandleOpen,
		CloseSubject:    s.HandleClose,
		OwnersSubject:   s.HandleOwners,
	}

	var unsubs []func()
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()
	for subject, fn := range routes {
		unsub, err := s.handler.HandleRequests(subject, fn)
		if err != nil {
			return fmt.Errorf("handling %s: %w", subject, err)
		}
		unsubs = append(unsubs, unsub)
	}

	slog.InfoContext(ctx, "inventory request server started")
	<-ctx.Done()
	return nil
}

// HandleRequest applies a single inventory request and returns the
// marshalled response.
func (s *RequestServer) HandleRequest(data []byte) []byte {
	var req inventory.Request
	if err := decodeValidated(s.schemas.request, data, &req); err != nil {
		return errorResponse(err)
	}

	var resp inventory.Response
	err := s.host.Do(req.Owner, func(inv *inventory.Inventory) {
		resp = inventory.Apply(inv, req)
	})
	if err != nil {
		return errorResponse(fmt.Errorf("%s: %w", req.Owner, err))
	}
	return marshalResponse(resp)
}

// HandleOpen opens an inventory for the owner named in the payload.
func (s *RequestServer) HandleOpen(data []byte) []byte {
	var p ownerPayload
	if err := decodeValidated(s.schemas.owner, data, &p); err != nil {
		return errorResponse(err)
	}

	_, err := s.host.Open(s.newOwner(p.Owner))
	if err != nil && !errors.Is(err, host.ErrInventoryExists) {
		return errorResponse(fmt.Errorf("opening %s: %w", p.Owner, err))
	}
	return marshalResponse(inventory.Response{OK: err == nil})
}

// HandleClose closes the inventory for the owner named in the payload.
func (s *RequestServer) HandleClose(data []byte) []byte {
	var p ownerPayload
	if err := decodeValidated(s.schemas.owner, data, &p); err != nil {
		return errorResponse(err)
	}

	if err := s.host.Close(p.Owner); err != nil {
		return errorResponse(fmt.Errorf("closing %s: %w", p.Owner, err))
	}
	return marshalResponse(inventory.Response{OK: true})
}

// HandleOwners lists the owners whose inventories are open on this host.
func (s *RequestServer) HandleOwners([]byte) []byte {
	return marshalResponse(inventory.Response{OK: true, Owners: s.host.Ids()})
}

func errorResponse(err error) []byte {
	return marshalResponse(inventory.Response{Error: err.Error()})
}

func marshalResponse(resp inventory.Response) []byte {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("marshalling inventory response", "error", err)
		return []byte(`{"ok":false,"error":"internal error"}`)
	}
	return data
}

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pixil98/go-inventory/internal/host"
	"github.com/pixil98/go-inventory/internal/inventory"
	"github.com/pixil98/go-inventory/internal/tags"
	"github.com/pixil98/go-testutil"
)

// mockRequestHandler implements RequestHandler for testing
type mockRequestHandler struct {
	handlers map[string]func([]byte) []byte
	unsubs   int
}

func (m *mockRequestHandler) HandleRequests(subject string, fn func([]byte) []byte) (func(), error) {
	if m.handlers == nil {
		m.handlers = make(map[string]func([]byte) []byte)
	}
	m.handlers[subject] = fn
	return func() { m.unsubs++ }, nil
}

func newTestRequestServer(t *testing.T, owners ...string) (*RequestServer, *host.Host) {
	t.Helper()

	h := host.NewHost(mockResolver{})
	for _, id := range owners {
		if _, err := h.Open(newMockOwner(id)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	s, err := NewRequestServer(&mockRequestHandler{}, h, newMockOwner, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s, h
}

func decodeResponse(t *testing.T, data []byte) inventory.Response {
	t.Helper()

	var resp inventory.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestRequestServer_HandleRequest(t *testing.T) {
	tests := map[string]struct {
		payload  string
		exp      inventory.Response
		expErr   string
		expItems map[tags.Tag]float64
	}{
		"add": {
			payload:  `{"owner":"alice","op":"add","item":"Item.Material.Wood","amount":2}`,
			exp:      inventory.Response{OK: true},
			expItems: map[tags.Tag]float64{wood: 2},
		},
		"craft without ingredients": {
			payload:  `{"owner":"alice","op":"craft","item":"Item.Material.Plank"}`,
			exp:      inventory.Response{OK: false},
			expItems: map[tags.Tag]float64{},
		},
		"list": {
			payload:  `{"owner":"alice","op":"list"}`,
			exp:      inventory.Response{OK: true},
			expItems: map[tags.Tag]float64{},
		},
		"unknown owner": {
			payload:  `{"owner":"bob","op":"list"}`,
			expErr:   "bob: inventory not found",
			expItems: map[tags.Tag]float64{},
		},
		"missing op": {
			payload:  `{"owner":"alice"}`,
			expErr:   "invalid payload",
			expItems: map[tags.Tag]float64{},
		},
		"unknown op": {
			payload:  `{"owner":"alice","op":"juggle"}`,
			expErr:   "invalid payload",
			expItems: map[tags.Tag]float64{},
		},
		"bad item tag": {
			payload:  `{"owner":"alice","op":"add","item":"not a tag","amount":1}`,
			expErr:   "invalid payload",
			expItems: map[tags.Tag]float64{},
		},
		"negative amount": {
			payload:  `{"owner":"alice","op":"add","item":"Item.Material.Wood","amount":-1}`,
			expErr:   "invalid payload",
			expItems: map[tags.Tag]float64{},
		},
		"amount above ceiling": {
			payload:  `{"owner":"alice","op":"add","item":"Item.Material.Wood","amount":1e300}`,
			expErr:   "invalid payload",
			expItems: map[tags.Tag]float64{},
		},
		"add without amount": {
			payload:  `{"owner":"alice","op":"add","item":"Item.Material.Wood"}`,
			expErr:   "invalid payload",
			expItems: map[tags.Tag]float64{},
		},
		"craft without item": {
			payload:  `{"owner":"alice","op":"craft"}`,
			expErr:   "invalid payload",
			expItems: map[tags.Tag]float64{},
		},
		"catalog query without a catalog": {
			payload:  `{"owner":"alice","op":"item_info","item":"Item.Material.Wood"}`,
			expErr:   "item catalog not available",
			expItems: map[tags.Tag]float64{},
		},
		"fragment without a key": {
			payload:  `{"owner":"alice","op":"fragment","item":"Item.Material.Wood"}`,
			expErr:   "invalid payload",
			expItems: map[tags.Tag]float64{},
		},
		"extra field": {
			payload:  `{"owner":"alice","op":"list","force":true}`,
			expErr:   "invalid payload",
			expItems: map[tags.Tag]float64{},
		},
		"not json": {
			payload:  `add wood`,
			expErr:   "parsing payload",
			expItems: map[tags.Tag]float64{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, h := newTestRequestServer(t, "alice")

			resp := decodeResponse(t, s.HandleRequest([]byte(tt.payload)))
			if tt.expErr != "" {
				testutil.AssertEqual(t, "ok", resp.OK, false)
				testutil.AssertErrorContains(t, errors.New(resp.Error), tt.expErr)
			} else {
				testutil.AssertEqual(t, "ok", resp.OK, tt.exp.OK)
				testutil.AssertEqual(t, "error", resp.Error, "")
			}

			testutil.AssertEqual(t, "items", h.Get("alice").GetAllItemsOnInventory(), tt.expItems)
		})
	}
}

func TestRequestServer_OpenClose(t *testing.T) {
	s, h := newTestRequestServer(t)

	resp := decodeResponse(t, s.HandleOpen([]byte(`{"owner":"alice"}`)))
	testutil.AssertEqual(t, "opened", resp.OK, true)
	testutil.AssertEqual(t, "hosted", h.Ids(), []string{"alice"})

	resp = decodeResponse(t, s.HandleOpen([]byte(`{"owner":"alice"}`)))
	testutil.AssertEqual(t, "reopen ok", resp.OK, false)
	testutil.AssertEqual(t, "reopen error", resp.Error, "")

	resp = decodeResponse(t, s.HandleOpen([]byte(`{"owner":"a.b"}`)))
	testutil.AssertErrorContains(t, errors.New(resp.Error), "invalid payload")

	resp = decodeResponse(t, s.HandleClose([]byte(`{"owner":"alice"}`)))
	testutil.AssertEqual(t, "closed", resp.OK, true)
	testutil.AssertEqual(t, "hosted after close", len(h.Ids()), 0)

	resp = decodeResponse(t, s.HandleClose([]byte(`{"owner":"alice"}`)))
	testutil.AssertErrorContains(t, errors.New(resp.Error), "closing alice: inventory not found")
}

func TestRequestServer_HandleOwners(t *testing.T) {
	s, h := newTestRequestServer(t, "carol", "alice")

	resp := decodeResponse(t, s.HandleOwners(nil))
	testutil.AssertEqual(t, "ok", resp.OK, true)
	testutil.AssertEqual(t, "owners", resp.Owners, []string{"alice", "carol"})

	if err := h.Close("carol"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp = decodeResponse(t, s.HandleOwners(nil))
	testutil.AssertEqual(t, "owners after close", resp.Owners, []string{"alice"})
}

func TestRequestServer_Start(t *testing.T) {
	h := host.NewHost(mockResolver{})
	handler := &mockRequestHandler{}
	ready := make(chan struct{})

	s, err := NewRequestServer(handler, h, newMockOwner, ready)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- s.Start(ctx) }()

	close(ready)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Start may observe cancellation before ready; either no routes were
	// registered or all of them were and were released again.
	if len(handler.handlers) > 0 {
		testutil.AssertEqual(t, "routes", len(handler.handlers), 4)
		testutil.AssertEqual(t, "unsubscribed", handler.unsubs, 4)
	}
}

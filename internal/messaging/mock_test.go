package messaging

import (
	"context"
	"sync"

	"github.com/pixil98/go-inventory/internal/catalog"
	"github.com/pixil98/go-inventory/internal/inventory"
	"github.com/pixil98/go-inventory/internal/tags"
)

const (
	wood  tags.Tag = "Item.Material.Wood"
	plank tags.Tag = "Item.Material.Plank"
)

type published struct {
	Subject string
	Data    []byte
}

// mockPublisher implements Publisher for testing
type mockPublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (m *mockPublisher) Publish(subject string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, published{Subject: subject, Data: data})
	return m.err
}

// mockOwner implements inventory.Owner for testing
type mockOwner struct {
	id string
}

func (m *mockOwner) ID() string                    { return m.id }
func (m *mockOwner) ItemGranted(tags.Tag, float64) {}
func (m *mockOwner) ItemUsed(tags.Tag, float64)    {}
func (m *mockOwner) ItemRemoved(tags.Tag, float64) {}
func (m *mockOwner) ItemDropped(tags.Tag, float64) {}
func (m *mockOwner) ItemCrafted(tags.Tag, float64) {}

func newMockOwner(id string) inventory.Owner {
	return &mockOwner{id: id}
}

// mockResolver implements catalog.Resolver for testing
type mockResolver struct{}

func (mockResolver) GetItemRecipe(t tags.Tag) catalog.Recipe {
	if t == plank {
		return catalog.Recipe{Ingredients: map[tags.Tag]float64{wood: 1}, CraftedQuantity: 4}
	}
	return catalog.Recipe{}
}

// mockRequester implements Requester for testing by calling a handler
// directly
type mockRequester struct {
	subjects []string
	handler  func([]byte) []byte
	err      error
}

func (m *mockRequester) Request(_ context.Context, subject string, data []byte) ([]byte, error) {
	m.subjects = append(m.subjects, subject)
	if m.err != nil {
		return nil, m.err
	}
	return m.handler(data), nil
}

package notify

import (
	"log/slog"
	"strings"

	"github.com/pixil98/go-inventory/internal/display"
	"github.com/pixil98/go-inventory/internal/tags"
)

// Publisher sends a payload to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Namer resolves an item's display name.
type Namer interface {
	ItemName(tags.Tag) string
}

// Owner is an inventory owner that tells its player about every change
// through rendered text messages.
type Owner struct {
	id       string
	subject  string
	renderer *Renderer
	names    Namer
	pub      Publisher
	width    int
}

type OwnerOpt func(*Owner)

// WithWidth sets the wrap width of rendered messages.
func WithWidth(w int) OwnerOpt {
	return func(o *Owner) {
		o.width = w
	}
}

// WithNamer resolves item names for templates. Without one the tag is used.
func WithNamer(n Namer) OwnerOpt {
	return func(o *Owner) {
		o.names = n
	}
}

// NewOwner creates an owner whose messages are published to subject.
func NewOwner(id, subject string, r *Renderer, pub Publisher, opts ...OwnerOpt) *Owner {
	o := &Owner{
		id:       id,
		subject:  subject,
		renderer: r,
		pub:      pub,
		width:    display.DefaultWidth,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *Owner) ID() string {
	return o.id
}

func (o *Owner) ItemGranted(item tags.Tag, amount float64) { o.send(KindGranted, item, amount) }
func (o *Owner) ItemUsed(item tags.Tag, amount float64)    { o.send(KindUsed, item, amount) }
func (o *Owner) ItemRemoved(item tags.Tag, amount float64) { o.send(KindRemoved, item, amount) }
func (o *Owner) ItemDropped(item tags.Tag, amount float64) { o.send(KindDropped, item, amount) }
func (o *Owner) ItemCrafted(item tags.Tag, amount float64) { o.send(KindCrafted, item, amount) }
func (o *Owner) AllItemsDropped()                          { o.send(KindAllDropped, "", 0) }
func (o *Owner) ItemRecipeConsumed(item tags.Tag)          { o.send(KindRecipeConsumed, item, 0) }

func (o *Owner) name(item tags.Tag) string {
	if item == "" {
		return ""
	}
	if o.names == nil {
		return item.String()
	}
	return o.names.ItemName(item)
}

func (o *Owner) send(kind string, item tags.Tag, amount float64) {
	text, ok, err := o.renderer.Render(kind, Data{
		Owner:  o.id,
		Item:   item,
		Name:   o.name(item),
		Amount: amount,
	})
	if err != nil {
		slog.Warn("rendering notification", "owner", o.id, "kind", kind, "error", err)
		return
	}
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return
	}

	msg := display.Hang(display.Capitalize(text), o.width, 2)
	if err := o.pub.Publish(o.subject, []byte(msg+"\n")); err != nil {
		slog.Warn("publishing notification", "owner", o.id, "kind", kind, "error", err)
	}
}

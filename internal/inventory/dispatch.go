package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pixil98/go-inventory/internal/catalog"
	"github.com/pixil98/go-inventory/internal/tags"
	"github.com/pixil98/go-inventory/internal/tagstack"
)

var (
	ErrUnknownOp   = errors.New("unknown inventory operation")
	ErrNoForwarder = errors.New("not authoritative and no forwarder configured")
	ErrNoCatalog   = errors.New("item catalog not available")
)

// Op names an inventory operation carried in a Request.
type Op string

const (
	OpAdd           Op = "add"
	OpUse           Op = "use"
	OpDrop          Op = "drop"
	OpRemove        Op = "remove"
	OpDropAll       Op = "drop_all"
	OpRemoveAll     Op = "remove_all"
	OpClear         Op = "clear"
	OpCraft         Op = "craft"
	OpConsumeRecipe Op = "consume_recipe"
	OpCanCraft      Op = "can_craft"
	OpMaxCraftable  Op = "max_craftable"
	OpCount         Op = "count"
	OpContains      Op = "contains"
	OpList          Op = "list"

	// Catalog queries. They read item data and leave the ledger untouched.
	OpItemInfo Op = "item_info"
	OpCategory Op = "category"
	OpFragment Op = "fragment"
)

// Request is a serialisable inventory call.
type Request struct {
	Owner    string   `json:"owner"`
	Op       Op       `json:"op"`
	Item     tags.Tag `json:"item,omitempty"`
	Amount   float64  `json:"amount,omitempty"`
	Fragment string   `json:"fragment,omitempty"`
}

// Response is the result of applying a Request. OK carries the boolean
// result of the operation, which is false for refused operations.
type Response struct {
	OK       bool                 `json:"ok"`
	Count    float64              `json:"count,omitempty"`
	Max      int                  `json:"max,omitempty"`
	Items    map[tags.Tag]float64 `json:"items,omitempty"`
	Stacks   []tagstack.Stack     `json:"stacks,omitempty"`
	Info     *catalog.ItemInfo    `json:"info,omitempty"`
	Tags     []tags.Tag           `json:"tags,omitempty"`
	Fragment json.RawMessage      `json:"fragment,omitempty"`
	Owners   []string             `json:"owners,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// Apply runs req against inv. Unknown operations produce a Response with
// Error set.
func Apply(inv *Inventory, req Request) Response {
	switch req.Op {
	case OpAdd:
		return Response{OK: inv.AddItemToInventory(req.Item, req.Amount)}
	case OpUse:
		return Response{OK: inv.UseItemFromInventory(req.Item, req.Amount)}
	case OpDrop:
		return Response{OK: inv.DropItemFromInventory(req.Item, req.Amount)}
	case OpRemove:
		return Response{OK: inv.RemoveItemFromInventory(req.Item, req.Amount)}
	case OpDropAll:
		return Response{OK: inv.DropAllItemsFromInventory()}
	case OpRemoveAll:
		inv.RemoveAllItemsFromInventory()
		return Response{OK: true}
	case OpClear:
		inv.ClearInventory()
		return Response{OK: true}
	case OpCraft:
		return Response{OK: inv.CraftItem(req.Item)}
	case OpConsumeRecipe:
		return Response{OK: inv.ConsumeItemRecipe(req.Item)}
	case OpCanCraft:
		return Response{OK: inv.CanItemBeCrafted(req.Item)}
	case OpMaxCraftable:
		n := inv.FindMaxCraftableAmount(req.Item)
		return Response{OK: n > 0, Max: n}
	case OpCount:
		n := inv.GetItemStack(req.Item)
		return Response{OK: n > 0, Count: n}
	case OpContains:
		amount := req.Amount
		if amount == 0 {
			amount = 1
		}
		return Response{OK: inv.ContainsItemInInventory(req.Item, amount)}
	case OpList:
		return Response{
			OK:     true,
			Items:  inv.GetAllItemsOnInventory(),
			Stacks: inv.Stacks(),
			Count:  inv.GetTotalAmountItems(),
		}
	case OpItemInfo, OpCategory, OpFragment:
		lookup, ok := inv.resolver.(catalog.Lookup)
		if !ok {
			return Response{Error: ErrNoCatalog.Error()}
		}
		return applyLookup(lookup, req)
	default:
		return Response{Error: fmt.Sprintf("%s: %q", ErrUnknownOp, req.Op)}
	}
}

func applyLookup(lookup catalog.Lookup, req Request) Response {
	switch req.Op {
	case OpItemInfo:
		info, ok := lookup.GetItemKeyInformationFromTag(req.Item)
		if !ok {
			return Response{}
		}
		return Response{OK: true, Info: &info}
	case OpCategory:
		items := lookup.ItemsInCategory(req.Item)
		return Response{OK: len(items) > 0, Tags: items}
	default:
		var raw json.RawMessage
		found, err := lookup.GetItemFragment(req.Item, req.Fragment, &raw)
		if err != nil {
			return Response{Error: err.Error()}
		}
		return Response{OK: found, Fragment: raw}
	}
}

// Authority reports whether this process owns the inventory state.
type Authority interface {
	HasAuthority() bool
}

// Forwarder sends a request to the authoritative process.
type Forwarder interface {
	Forward(ctx context.Context, req Request) (Response, error)
}

// AuthorityFunc adapts a function to Authority.
type AuthorityFunc func() bool

func (f AuthorityFunc) HasAuthority() bool {
	return f()
}

// Dispatcher runs requests locally when authoritative and forwards them
// otherwise.
type Dispatcher struct {
	inv       *Inventory
	authority Authority
	forwarder Forwarder
}

func NewDispatcher(inv *Inventory, authority Authority, forwarder Forwarder) *Dispatcher {
	return &Dispatcher{
		inv:       inv,
		authority: authority,
		forwarder: forwarder,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Response, error) {
	if d.authority == nil || d.authority.HasAuthority() {
		if d.inv == nil {
			return Response{}, fmt.Errorf("authoritative dispatch without an inventory")
		}
		return Apply(d.inv, req), nil
	}

	if d.forwarder == nil {
		return Response{}, ErrNoForwarder
	}

	resp, err := d.forwarder.Forward(ctx, req)
	if err != nil {
		return Response{}, fmt.Errorf("forwarding %s: %w", req.Op, err)
	}
	return resp, nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pixil98/go-inventory/cmd/inventoryd/command"
	"github.com/pixil98/go-inventory/internal/display"
	"github.com/pixil98/go-inventory/internal/inventory"
	"github.com/pixil98/go-inventory/internal/messaging"
	"github.com/pixil98/go-inventory/internal/tags"
)

type options struct {
	URL      string
	Owner    string
	Item     tags.Tag
	Amount   float64
	Fragment string
	Timeout  time.Duration
	Local    string
	Stock    string
}

func run(ctx context.Context, cmd string, o options, out io.Writer) error {
	switch cmd {
	case "owners":
		return listOwners(ctx, o, out)
	case "watch":
		return watch(ctx, o, out)
	default:
		return dispatch(ctx, inventory.Op(cmd), o, out)
	}
}

// dispatch runs a single request. With a local config the process holds the
// inventory itself; otherwise the request is forwarded to the broker.
func dispatch(ctx context.Context, op inventory.Op, o options, out io.Writer) error {
	if o.Owner == "" {
		return fmt.Errorf("-owner is required")
	}

	var (
		inv       *inventory.Inventory
		forwarder inventory.Forwarder
	)
	if o.Local != "" {
		var err error
		inv, err = localInventory(o, out)
		if err != nil {
			return err
		}
	} else {
		client, err := messaging.DialNats(o.URL)
		if err != nil {
			return err
		}
		defer client.Close()
		forwarder = messaging.NewNatsForwarder(client)
	}

	d := inventory.NewDispatcher(inv, inventory.AuthorityFunc(func() bool { return inv != nil }), forwarder)

	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	resp, err := d.Dispatch(ctx, inventory.Request{
		Owner:    o.Owner,
		Op:       op,
		Item:     o.Item,
		Amount:   o.Amount,
		Fragment: o.Fragment,
	})
	if err != nil {
		return err
	}
	return writeJSON(out, resp)
}

// localInventory builds the catalog named by an inventoryd config and an
// inventory holding the configured startup items plus -stock.
func localInventory(o options, out io.Writer) (*inventory.Inventory, error) {
	data, err := os.ReadFile(o.Local)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg command.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cat, err := cfg.Storage.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	stock, err := parseStock(o.Stock)
	if err != nil {
		return nil, err
	}
	for item, amount := range cfg.Inventory.StartupItems {
		stock[item] += amount
	}

	inv := inventory.New(&printOwner{id: o.Owner}, cat, inventory.WithStartupItems(stock))
	inv.SetOwner(&printOwner{id: o.Owner, out: out})
	return inv, nil
}

func listOwners(ctx context.Context, o options, out io.Writer) error {
	client, err := messaging.DialNats(o.URL)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	reply, err := client.Request(ctx, messaging.OwnersSubject, nil)
	if err != nil {
		return fmt.Errorf("listing owners: %w", err)
	}
	var resp inventory.Response
	if err := json.Unmarshal(reply, &resp); err != nil {
		return fmt.Errorf("unmarshalling response: %w", err)
	}
	for _, id := range resp.Owners {
		fmt.Fprintln(out, id)
	}
	return nil
}

// watch prints every ledger snapshot published for the owner until ctx ends.
func watch(ctx context.Context, o options, out io.Writer) error {
	if o.Owner == "" {
		return fmt.Errorf("-owner is required")
	}

	client, err := messaging.DialNats(o.URL)
	if err != nil {
		return err
	}
	defer client.Close()

	unsub, err := client.Subscribe(messaging.SnapshotSubject(o.Owner), func(data []byte) {
		s, err := messaging.DecodeSnapshot(data)
		if err != nil {
			slog.Warn("dropping snapshot", "owner", o.Owner, "error", err)
			return
		}
		fmt.Fprintf(out, "%s v%d\n", s.OwnerID, s.Version)
		for _, st := range s.Ledger.GetGameplayTagStackList() {
			fmt.Fprintf(out, "  %s %s\n", st.Tag, display.Amount(st.Count))
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing: %w", err)
	}
	defer unsub()

	if err := client.Flush(); err != nil {
		return fmt.Errorf("subscribing: %w", err)
	}
	slog.Info("watching snapshots", "owner", o.Owner)

	<-ctx.Done()
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

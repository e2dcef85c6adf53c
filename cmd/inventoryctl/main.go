package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-inventory/internal/tags"
)

func main() {
	var (
		o    options
		item string
	)
	flag.StringVar(&o.URL, "url", nats.DefaultURL, "broker url")
	flag.StringVar(&o.Owner, "owner", "", "inventory owner id")
	flag.StringVar(&item, "item", "", "item or category tag")
	flag.Float64Var(&o.Amount, "amount", 0, "item amount")
	flag.StringVar(&o.Fragment, "fragment", "", "fragment name for the fragment op")
	flag.DurationVar(&o.Timeout, "timeout", 5*time.Second, "request timeout")
	flag.StringVar(&o.Local, "local", "", "inventoryd config file; requests run against an in-process inventory")
	flag.StringVar(&o.Stock, "stock", "", "extra local stock, e.g. Item.Material.Wood=3,Item.Material.Stone=1")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <op|owners|watch>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	o.Item = tags.Tag(item)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Arg(0), o, os.Stdout); err != nil {
		slog.Error("inventoryctl failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

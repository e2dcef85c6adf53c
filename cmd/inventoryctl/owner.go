package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pixil98/go-inventory/internal/display"
	"github.com/pixil98/go-inventory/internal/tags"
	"github.com/pixil98/go-inventory/internal/tagstack"
)

// printOwner reports item changes of a local inventory as plain lines. A nil
// writer keeps it quiet.
type printOwner struct {
	id  string
	out io.Writer
}

func (p *printOwner) ID() string { return p.id }

func (p *printOwner) printf(format string, args ...any) {
	if p.out != nil {
		fmt.Fprintf(p.out, format, args...)
	}
}

func (p *printOwner) ItemGranted(item tags.Tag, amount float64) {
	p.printf("granted %s %s\n", display.Amount(amount), item)
}

func (p *printOwner) ItemUsed(item tags.Tag, amount float64) {
	p.printf("used %s %s\n", display.Amount(amount), item)
}

func (p *printOwner) ItemRemoved(item tags.Tag, amount float64) {
	p.printf("removed %s %s\n", display.Amount(amount), item)
}

func (p *printOwner) ItemDropped(item tags.Tag, amount float64) {
	p.printf("dropped %s %s\n", display.Amount(amount), item)
}

func (p *printOwner) ItemCrafted(item tags.Tag, amount float64) {
	p.printf("crafted %s %s\n", display.Amount(amount), item)
}

// parseStock reads "Tag=amount" pairs separated by commas. Repeated tags add
// up.
func parseStock(s string) (map[tags.Tag]float64, error) {
	stock := map[tags.Tag]float64{}
	if strings.TrimSpace(s) == "" {
		return stock, nil
	}

	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("stock %q: expected tag=amount", pair)
		}
		tag, err := tags.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("stock %q: %w", pair, err)
		}
		amount, err := strconv.ParseFloat(value, 64)
		if err != nil || !tagstack.ValidAmount(amount) {
			return nil, fmt.Errorf("stock %q: amount must be a positive number", pair)
		}
		stock[tag] += amount
	}
	return stock, nil
}

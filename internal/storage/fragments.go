package storage

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Fragments holds typed row data attached to a record, keyed by fragment
// name. Each value stays raw JSON until a caller decodes it into the struct
// it expects.
type Fragments map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (f *Fragments) Set(key string, v any) error {
	if *f == nil {
		*f = Fragments{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal fragment %q: %w", key, err)
	}

	(*f)[key] = json.RawMessage(b)
	return nil
}

// Get unmarshals the fragment at key into out.
// Returns (found=false, nil) if not present.
func (f Fragments) Get(key string, out any) (bool, error) {
	raw, ok := f[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal fragment %q: %w", key, err)
	}
	return true, nil
}

func (f Fragments) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Keys returns the fragment names in sorted order.
func (f Fragments) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

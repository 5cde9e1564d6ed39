package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Entries is a set of JSON values keyed by storage key.
type Entries map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (e *Entries) Set(key string, v any) error {
	if *e == nil {
		*e = Entries{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}

	(*e)[key] = json.RawMessage(b)
	return nil
}

// Get unmarshals the value at key into out.
// Returns (found=false, nil) if not present.
func (e Entries) Get(key string, out any) (bool, error) {
	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal %q: %w", key, err)
	}
	return true, nil
}

// Read loads every listed key that exists in st.
func Read(ctx context.Context, st Store, keys ...string) (Entries, error) {
	e := Entries{}
	for _, k := range keys {
		b, ok, err := st.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", k, err)
		}
		if ok {
			e[k] = json.RawMessage(b)
		}
	}
	return e, nil
}

// Write stores every entry in st in key order.
func Write(ctx context.Context, st Store, e Entries) error {
	for _, k := range slices.Sorted(maps.Keys(e)) {
		if err := st.Set(ctx, k, e[k]); err != nil {
			return fmt.Errorf("writing %q: %w", k, err)
		}
	}
	return nil
}

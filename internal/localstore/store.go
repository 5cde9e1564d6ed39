// Package localstore persists small JSON documents by string key. It is the
// server-side home of everything a player's browser would otherwise keep in
// local storage: challenge progress, placed home items and mission state.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidKey = errors.New("invalid key")

// Keys are one or more slash separated segments of letters, digits, dashes
// and underscores. The slash is used for per-player namespacing.
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+(/[a-zA-Z0-9_-]+)*$`)

type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
	Close() error
}

func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

type scoped struct {
	Store
	prefix string
}

// Scoped returns a view of st where every key is placed under prefix.
// Closing the view does not close st.
func Scoped(st Store, prefix string) Store {
	return &scoped{Store: st, prefix: strings.Trim(prefix, "/")}
}

func (s *scoped) key(k string) string {
	return s.prefix + "/" + k
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.Store.Get(ctx, s.key(key))
}

func (s *scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.Store.Set(ctx, s.key(key), value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.Store.Delete(ctx, s.key(key))
}

func (s *scoped) Close() error {
	return nil
}

package account

import (
	"encoding/json"
	"strings"
	"time"
)

// Account is a gateway-owned configuration record addressed by name.
type Account interface {
	AccountName() string
}

// Finder is the non-generic view of a loaded account collection.
type Finder interface {
	Find(name string) (Account, bool)
}

// Record is one row of gateway_accounts. Settings holds the gateway-specific
// fields (terminal id, password, ...) as JSON.
type Record struct {
	ID        int64
	Gateway   string
	Name      string
	Settings  json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Collection holds a gateway's accounts in load order.
type Collection[T Account] struct {
	items []T
}

func NewCollection[T Account](items ...T) *Collection[T] {
	return &Collection[T]{items: items}
}

// Get matches names case-insensitively; the first account with the name wins.
func (c *Collection[T]) Get(name string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}

	name = strings.TrimSpace(name)
	for _, item := range c.items {
		if strings.EqualFold(item.AccountName(), name) {
			return item, true
		}
	}
	return zero, false
}

func (c *Collection[T]) Find(name string) (Account, bool) {
	item, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	return item, true
}

// Default returns the first loaded account.
func (c *Collection[T]) Default() (T, bool) {
	var zero T
	if c == nil || len(c.items) == 0 {
		return zero, false
	}
	return c.items[0], true
}

func (c *Collection[T]) All() []T {
	if c == nil {
		return nil
	}
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

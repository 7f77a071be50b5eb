package invoice

import (
	"slices"
	"sync"
)

// Properties is the string-keyed bag gateway modules use to attach their own
// data to an invoice. Keys keep insertion order; setting an existing key
// replaces its value in place.
type Properties struct {
	mu    sync.Mutex
	items map[string]any
	keys  []string
}

func NewProperties() *Properties {
	return &Properties{items: make(map[string]any)}
}

func (p *Properties) Get(key string) (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.items[key]
	return v, ok
}

func (p *Properties) Set(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.items[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.items[key] = value
}

func (p *Properties) Delete(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.items[key]; !exists {
		return
	}
	delete(p.items, key)
	p.keys = removeKey(p.keys, key)
}

// Change runs fn against the underlying map while holding the lock, so a
// read-modify-write inside fn is atomic for this bag. fn must not retain the map.
func (p *Properties) Change(fn func(items map[string]any)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fn(p.items)

	// reconcile key order with whatever fn added or removed
	kept := p.keys[:0]
	seen := make(map[string]struct{}, len(p.items))
	for _, k := range p.keys {
		if _, ok := p.items[k]; ok {
			kept = append(kept, k)
			seen[k] = struct{}{}
		}
	}
	p.keys = kept

	var added []string
	for k := range p.items {
		if _, ok := seen[k]; !ok {
			added = append(added, k)
		}
	}
	// several keys added in one call have no natural order; keep it stable
	slices.Sort(added)
	p.keys = append(p.keys, added...)
}

// Keys returns a copy of the keys in insertion order.
func (p *Properties) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p *Properties) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Lookup narrows the value stored under key to T. A missing key or a value of
// any other type yields the zero T and false.
func Lookup[T any](p *Properties, key string) (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}

	v, ok := p.Get(key)
	if !ok {
		return zero, false
	}

	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

package dispatch

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoMatch is returned when no registered signature matches a
	// concrete kind tuple.
	ErrNoMatch = errors.New("no expectation implementation for this type combination")

	// ErrAmbiguous is returned when several signatures match a tuple and
	// none of them is strictly more specific than all the others. This is
	// a registration defect, not a data error.
	ErrAmbiguous = errors.New("ambiguous expectation implementations for this type combination")
)

type entry[H any] struct {
	sig     Signature
	handler H
}

// Registry maps signatures to handlers of type H and resolves concrete kind
// tuples to the most specific matching handler. Registration is expected to
// happen once, before concurrent resolution starts; Resolve is safe for
// concurrent use.
type Registry[H any] struct {
	entries []entry[H]

	mu    sync.RWMutex
	cache map[Key]H
}

func NewRegistry[H any]() *Registry[H] {
	return &Registry[H]{
		cache: make(map[Key]H),
	}
}

// Register adds a (signature, handler) pair. Registering the exact same
// signature twice replaces the earlier handler in place.
func (r *Registry[H]) Register(sig Signature, handler H) {
	for i := range r.entries {
		if r.entries[i].sig.equal(sig) {
			r.entries[i].handler = handler
			return
		}
	}
	r.entries = append(r.entries, entry[H]{sig: sig, handler: handler})
}

// Resolve returns the handler for a concrete kind tuple, selecting the
// unique most specific signature among all matches and caching the result.
func (r *Registry[H]) Resolve(key Key) (H, error) {
	r.mu.RLock()
	handler, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return handler, nil
	}

	var zero H
	var matched []entry[H]
	for _, e := range r.entries {
		if e.sig.Matches(key) {
			matched = append(matched, e)
		}
	}
	switch len(matched) {
	case 0:
		return zero, fmt.Errorf("%w: %s", ErrNoMatch, key)
	case 1:
		handler = matched[0].handler
	default:
		winner := -1
		for i := range matched {
			beatsAll := true
			for j := range matched {
				if i != j && !matched[i].sig.moreSpecific(matched[j].sig) {
					beatsAll = false
					break
				}
			}
			if beatsAll {
				winner = i
				break
			}
		}
		if winner < 0 {
			return zero, fmt.Errorf("%w: %s", ErrAmbiguous, key)
		}
		handler = matched[winner].handler
	}

	r.mu.Lock()
	r.cache[key] = handler
	r.mu.Unlock()
	return handler, nil
}

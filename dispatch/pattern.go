package dispatch

import (
	"fmt"
	"strings"
)

// Pattern is one slot of a signature: a single kind (exact-or-subtype
// match), a finite set of kinds (match if any member matches), or the
// wildcard (matches every kind, None included).
type Pattern struct {
	wildcard bool
	kinds    []Kind
}

// Any returns the wildcard pattern.
func Any() Pattern {
	return Pattern{wildcard: true}
}

// On returns a pattern matching k and its subtypes.
func On(k Kind) Pattern {
	return Pattern{kinds: []Kind{k}}
}

// OneOf returns a pattern matching any of the given kinds or their subtypes.
func OneOf(kinds ...Kind) Pattern {
	return Pattern{kinds: kinds}
}

// Matches reports whether the concrete kind k satisfies the pattern.
func (p Pattern) Matches(k Kind) bool {
	if p.wildcard {
		return true
	}
	for _, t := range p.kinds {
		if k.IsA(t) {
			return true
		}
	}
	return false
}

func (p Pattern) String() string {
	if p.wildcard {
		return "*"
	}
	if len(p.kinds) == 1 {
		return p.kinds[0].String()
	}
	names := make([]string, len(p.kinds))
	for i, k := range p.kinds {
		names[i] = k.String()
	}
	return "{" + strings.Join(names, "|") + "}"
}

// rank orders pattern shapes: wildcard < set < single kind.
func (p Pattern) rank() int {
	switch {
	case p.wildcard:
		return 0
	case len(p.kinds) > 1:
		return 1
	default:
		return 2
	}
}

// compare returns >0 if p is strictly more specific than q, <0 if strictly
// less, 0 if equally specific. ok is false when the two are incomparable.
func (p Pattern) compare(q Pattern) (cmp int, ok bool) {
	if pr, qr := p.rank(), q.rank(); pr != qr {
		return pr - qr, true
	}
	switch p.rank() {
	case 0:
		return 0, true
	case 2:
		a, b := p.kinds[0], q.kinds[0]
		switch {
		case a == b:
			return 0, true
		case a.IsA(b):
			return 1, true
		case b.IsA(a):
			return -1, true
		default:
			return 0, false
		}
	default:
		sub, sup := subset(p.kinds, q.kinds), subset(q.kinds, p.kinds)
		switch {
		case sub && sup:
			return 0, true
		case sub:
			return 1, true
		case sup:
			return -1, true
		default:
			return 0, false
		}
	}
}

func subset(a, b []Kind) bool {
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Signature is the ordered 5-slot pattern a handler is registered under:
// (distribution, object1, feature1, object2, feature2).
type Signature [5]Pattern

// Key is a concrete runtime 5-tuple of kinds.
type Key [5]Kind

func (k Key) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s, %s)", k[0], k[1], k[2], k[3], k[4])
}

// Matches reports whether every slot of the signature matches the
// corresponding concrete kind.
func (s Signature) Matches(k Key) bool {
	for i := range s {
		if !s[i].Matches(k[i]) {
			return false
		}
	}
	return true
}

// moreSpecific reports whether s wins over t: never less specific in any
// slot and strictly more specific in at least one. Incomparable slots make
// the signatures incomparable.
func (s Signature) moreSpecific(t Signature) bool {
	strict := false
	for i := range s {
		cmp, ok := s[i].compare(t[i])
		if !ok || cmp < 0 {
			return false
		}
		if cmp > 0 {
			strict = true
		}
	}
	return strict
}

// equal is set-wise: {A|B} and {B|A} count as the same signature.
func (s Signature) equal(t Signature) bool {
	for i := range s {
		cmp, ok := s[i].compare(t[i])
		if !ok || cmp != 0 {
			return false
		}
	}
	return true
}

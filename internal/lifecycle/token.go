// Package lifecycle guards asynchronous completions against components
// that no longer exist or have issued newer requests since.
package lifecycle

import "sync/atomic"

// Token is owned by one component instance. It is alive from New until
// Teardown, and counts the requests the component has issued so a
// completion can tell whether it is still the latest.
type Token struct {
	alive atomic.Bool
	gen   atomic.Uint64
}

// New returns a live token.
func New() *Token {
	t := &Token{}
	t.alive.Store(true)
	return t
}

// Alive reports whether the owner is still mounted.
func (t *Token) Alive() bool { return t.alive.Load() }

// Teardown marks the owner as gone. Only the first call has an effect;
// it reports whether this call was that one.
func (t *Token) Teardown() bool { return t.alive.CompareAndSwap(true, false) }

// Issue stamps a new request and returns its generation.
func (t *Token) Issue() uint64 { return t.gen.Add(1) }

// Latest reports whether gen is the most recently issued generation.
func (t *Token) Latest(gen uint64) bool { return t.gen.Load() == gen }

// Stamp identifies one issued request of one token.
type Stamp struct {
	token *Token
	gen   uint64
}

// Stamp issues a new request and returns its stamp.
func (t *Token) Stamp() Stamp { return Stamp{token: t, gen: t.Issue()} }

// Current reports whether a completion carrying s may still mutate the
// state owned by t: same owner, owner alive, and no newer request issued.
func (t *Token) Current(s Stamp) bool {
	return s.token == t && t.Alive() && t.Latest(s.gen)
}

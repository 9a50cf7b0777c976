package node

import "github.com/pfq-lang/pfqcore/internal/packet"

// The following types are the function shapes a symbol table entry's Fn
// must satisfy for a given node kind. interfaces.SymbolEntry.Fn is
// untyped (any) since the symbol table is an external oracle; the linker
// type-asserts against these at build time and fails with a symbol error
// on mismatch.
type (
	// MonadicFn is (fn, arg) -> Buf, used directly by monadic nodes.
	MonadicFn func(b *packet.Buf, arg []byte) *packet.Buf

	// HigherOrderFn is (fn, pred) -> Buf, pred bound to the referenced
	// fun node's Test closure.
	HigherOrderFn func(b *packet.Buf, pred Test) *packet.Buf

	// PredicateFn is (fn, arg) -> Bool, used when a predicate node has no
	// fun reference.
	PredicateFn func(b *packet.Buf, arg []byte) bool

	// PredicateWithSubFn is (fn, arg, sub) -> Bool, used when a predicate
	// node's fun references another predicate.
	PredicateWithSubFn func(b *packet.Buf, arg []byte, sub Test) bool

	// CombinatorFn is (fn, left, right) -> Bool.
	CombinatorFn func(b *packet.Buf, left, right Test) bool

	// PropertyFn is (fn, arg) -> any. Property nodes always link this
	// shape; their optional fun reference is checked but not materialized.
	PropertyFn func(b *packet.Buf, arg []byte) any
)

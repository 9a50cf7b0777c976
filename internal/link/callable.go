package link

import (
	"fmt"

	"github.com/pfq-lang/pfqcore/internal/descr"
	"github.com/pfq-lang/pfqcore/internal/interfaces"
	"github.com/pfq-lang/pfqcore/internal/node"
	"github.com/pfq-lang/pfqcore/internal/packet"
)

// buildCallable constructs nodes[i]'s Apply/Test/Extract closure per
// kind, type-asserting the resolved symbol's Fn against
// the shape its kind and fun-presence require.
func buildCallable(nodes []*node.Node, i int, d descr.Functional, entry interfaces.SymbolEntry, arg []byte) error {
	n := nodes[i]

	switch d.Kind {
	case descr.KindMonadic:
		fn, ok := entry.Fn.(node.MonadicFn)
		if !ok {
			return fmt.Errorf("symbol %q: expected node.MonadicFn for a monadic node", d.Symbol)
		}
		n.Apply = func(b *packet.Buf) *packet.Buf { return fn(b, arg) }

	case descr.KindHigherOrder:
		fn, ok := entry.Fn.(node.HigherOrderFn)
		if !ok {
			return fmt.Errorf("symbol %q: expected node.HigherOrderFn for a higher-order node", d.Symbol)
		}
		sub := nodes[d.Fun]
		n.Apply = func(b *packet.Buf) *packet.Buf { return fn(b, sub.Test) }

	case descr.KindPredicate:
		if d.Fun == descr.NoIndex {
			fn, ok := entry.Fn.(node.PredicateFn)
			if !ok {
				return fmt.Errorf("symbol %q: expected node.PredicateFn for a predicate node with no fun", d.Symbol)
			}
			n.Test = func(b *packet.Buf) bool { return fn(b, arg) }
		} else {
			fn, ok := entry.Fn.(node.PredicateWithSubFn)
			if !ok {
				return fmt.Errorf("symbol %q: expected node.PredicateWithSubFn for a predicate node with fun", d.Symbol)
			}
			sub := nodes[d.Fun]
			n.Test = func(b *packet.Buf) bool { return fn(b, arg, sub.Test) }
		}

	case descr.KindCombinator:
		fn, ok := entry.Fn.(node.CombinatorFn)
		if !ok {
			return fmt.Errorf("symbol %q: expected node.CombinatorFn for a combinator node", d.Symbol)
		}
		left, right := nodes[d.Left], nodes[d.Right]
		n.Test = func(b *packet.Buf) bool { return fn(b, left.Test, right.Test) }

	case descr.KindProperty:
		// Property nodes always materialize as (fn, arg); a fun reference
		// is signature-checked by the validator but never linked.
		fn, ok := entry.Fn.(node.PropertyFn)
		if !ok {
			return fmt.Errorf("symbol %q: expected node.PropertyFn for a property node", d.Symbol)
		}
		n.Extract = func(b *packet.Buf) any { return fn(b, arg) }

	default:
		return fmt.Errorf("unknown node kind %v", d.Kind)
	}
	return nil
}

package combinators

import (
	"github.com/pfq-lang/pfqcore/internal/node"
	"github.com/pfq-lang/pfqcore/internal/packet"
)

// MonadicOf is the plain Go function shape inv/par compose over. It
// mirrors node.MonadicFn's (Buf, arg) shape minus the argument, since inv
// and par close over whole sub-functions. inv is additionally installable
// as a graph node through InvNode; par is not, because its two
// function-valued arguments have no encoding in a descriptor that carries
// a single fun reference, so it stays a curried Go combinator.
type MonadicOf func(b *packet.Buf) *packet.Buf

// Inv implements the unary inversion combinator: it runs
// f; if the result is null or marked drop, the original packet passes;
// otherwise the packet is dropped. Double inversion is observationally
// equivalent to the original function.
func Inv(f MonadicOf) MonadicOf {
	return func(b *packet.Buf) *packet.Buf {
		orig := b.Clone()
		result := f(b)
		if result == nil || result.State.Action == packet.ActionDrop || result.State.Fanout.IsDrop() {
			orig.State.Action = packet.ActionCopy
			return orig
		}
		result.State.Action = packet.ActionDrop
		return result
	}
}

// InvNode is inv in installable form, for graphs that reference the
// inverted function as a sub-node: the referenced function runs as a gate
// the way filter's does, and Inv flips its outcome.
func InvNode(b *packet.Buf, pred node.Test) *packet.Buf {
	return Inv(func(b *packet.Buf) *packet.Buf {
		if !pred(b) {
			b.State.Action = packet.ActionDrop
		}
		return b
	})(b)
}

// Par implements the parallel combinator: it runs f with
// the packet's fanout snapshotted; if f's result is null or drop, the
// fanout is restored to its pre-f value and g runs instead.
func Par(f, g MonadicOf) MonadicOf {
	return func(b *packet.Buf) *packet.Buf {
		fanout := b.State.Fanout
		result := f(b)
		if result == nil || result.State.Action == packet.ActionDrop || result.State.Fanout.IsDrop() {
			b.State.Fanout = fanout
			return g(b)
		}
		return result
	}
}

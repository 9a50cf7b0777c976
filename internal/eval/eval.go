// Package eval implements the per-packet dispatch loop: it
// threads a Buf through a linked computation, branching on the packet's
// continuation bit and honoring drop/null short-circuits.
package eval

import (
	"github.com/pfq-lang/pfqcore/internal/group"
	"github.com/pfq-lang/pfqcore/internal/node"
	"github.com/pfq-lang/pfqcore/internal/packet"
)

// GroupLookup resolves a group id to its context and default class mask.
// *group.Registry satisfies this, but Evaluator depends only on the shape
// so alternate group sources can be substituted in tests.
type GroupLookup interface {
	Lookup(id string) (ctx *group.Context, classMask uint32, ok bool)
}

// Evaluator runs a linked computation against incoming packets.
type Evaluator struct {
	comp   *node.Computation
	groups GroupLookup
}

// New builds an Evaluator over a linked computation and a group oracle.
func New(comp *node.Computation, groups GroupLookup) *Evaluator {
	return &Evaluator{comp: comp, groups: groups}
}

// Run executes the computation for one packet. It returns
// nil if the group is unknown or any node in the path returns a null
// buffer; otherwise it returns the buffer in its final state, which may
// carry a drop action.
func (e *Evaluator) Run(groupID string, b *packet.Buf) *packet.Buf {
	ctx, classMask, ok := e.groups.Lookup(groupID)
	if !ok {
		return nil
	}

	b.State.Context = ctx
	b.State.ClassMask = classMask
	b.State.Action = packet.ActionCopy
	b.State.Attrs = 0

	n := e.comp.EntryPoint
	for n != nil {
		b.State.Right = true

		result := n.Apply(b)
		if result == nil {
			return nil
		}
		b = result

		if b.State.Action == packet.ActionDrop {
			return b
		}

		if b.State.Right {
			n = n.Right
		} else {
			n = n.Left
		}
	}
	return b
}

// Package link implements the computation builder ("rtlink"):
// it resolves symbols, materializes per-node arguments into the POD arena
// or an inline field, links successor pointers, and runs init hooks.
package link

import (
	"github.com/pfq-lang/pfqcore/internal/arena"
	"github.com/pfq-lang/pfqcore/internal/constants"
	"github.com/pfq-lang/pfqcore/internal/descr"
	"github.com/pfq-lang/pfqcore/internal/interfaces"
	"github.com/pfq-lang/pfqcore/internal/node"
	"github.com/pfq-lang/pfqcore/internal/pfqerr"
)

const opLink = "rtlink"

// Build translates a (pre-validated) computation descriptor into a linked,
// evaluable graph. Callers are expected to run descr.Validate first. Build
// does not check signatures, but it returns an error rather than panicking
// on a size or entry-point mismatch, an unknown symbol, an out-of-range
// fun or operand index, an arena failure, or a Fn of the wrong shape, so it
// is safe to call standalone in tests.
func Build(c *descr.Computation, symtab interfaces.SymbolTable) (comp *node.Computation, err error) {
	if c.Size != len(c.Fun) {
		return nil, pfqerr.New(opLink, pfqerr.KindValidation, "size does not match descriptor count")
	}
	if !c.InRange(c.EntryPoint) {
		return nil, pfqerr.New(opLink, pfqerr.KindValidation, "entry_point out of range")
	}

	ar := arena.New(arena.Alloc(len(c.Fun), func(i int) int { return c.Fun[i].ArgSize }))

	nodes := make([]*node.Node, len(c.Fun))
	entries := make([]interfaces.SymbolEntry, len(c.Fun))
	args := make([][]byte, len(c.Fun))

	for i, d := range c.Fun {
		entry, ok := symtab.Lookup(d.Symbol)
		if !ok {
			return nil, pfqerr.NewNode(opLink, i, pfqerr.KindSymbol, "unknown symbol: "+d.Symbol)
		}
		entries[i] = entry

		arg, aerr := materializeArg(ar, d)
		if aerr != nil {
			return nil, pfqerr.NewNode(opLink, i, pfqerr.KindMemory, aerr.Error())
		}
		args[i] = arg

		nodes[i] = &node.Node{
			Symbol: d.Symbol,
			Kind:   node.Kind(d.Kind),
			Init:   entry.Init,
			Fini:   entry.Fini,
		}
	}

	// Link left/right successors for monadic/higher-order nodes
	// only. The other kinds reuse Left/Right as operand/sub indices,
	// consumed directly below, and never carry materialized successors.
	for i, d := range c.Fun {
		switch d.Kind {
		case descr.KindMonadic, descr.KindHigherOrder:
			if c.InRange(d.Left) {
				nodes[i].Left = nodes[d.Left]
			}
			if c.InRange(d.Right) {
				nodes[i].Right = nodes[d.Right]
			}
		}
	}

	for i, d := range c.Fun {
		badIndex := false
		switch d.Kind {
		case descr.KindHigherOrder:
			badIndex = !c.InRange(d.Fun)
		case descr.KindPredicate:
			badIndex = d.Fun != descr.NoIndex && !c.InRange(d.Fun)
		case descr.KindCombinator:
			badIndex = !c.InRange(d.Left) || !c.InRange(d.Right)
		}
		if badIndex {
			return nil, pfqerr.NewNode(opLink, i, pfqerr.KindValidation, "fun or operand index out of range")
		}
		if berr := buildCallable(nodes, i, d, entries[i], args[i]); berr != nil {
			return nil, pfqerr.NewNode(opLink, i, pfqerr.KindSymbol, berr.Error())
		}
	}

	result := &node.Computation{EntryPoint: nodes[c.EntryPoint], Nodes: nodes}

	if err := runInitHooks(result); err != nil {
		return nil, err
	}
	return result, nil
}

// materializeArg copies arguments over the inline threshold into a fresh
// arena slot; everything else is read into an 8-byte, zero-extended
// inline field.
func materializeArg(ar *arena.Arena, d descr.Functional) ([]byte, error) {
	if d.ArgSize == 0 {
		return nil, nil
	}
	if d.ArgSize > constants.InlineArgMaxSize {
		return ar.Put(d.ArgSize, d.ArgPtr)
	}
	inline := make([]byte, constants.InlineArgMaxSize)
	copy(inline, d.ArgPtr)
	return inline, nil
}

// runInitHooks runs each node's Init in descriptor order; on the first
// failure it runs Fini on every already-initialized node, in the same
// order, and aborts the install.
func runInitHooks(c *node.Computation) error {
	for i, n := range c.Nodes {
		if n.Init == nil {
			continue
		}
		if err := n.Init(); err != nil {
			for _, done := range c.Nodes[:i] {
				if done.Fini != nil {
					done.Fini()
				}
			}
			return pfqerr.NewNode(opLink, i, pfqerr.KindInitHook, err.Error())
		}
	}
	return nil
}

// Teardown runs Fini on every node in descriptor order.
func Teardown(c *node.Computation) {
	for _, n := range c.Nodes {
		if n.Fini != nil {
			n.Fini()
		}
	}
}

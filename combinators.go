package pfqcore

import "github.com/pfq-lang/pfqcore/internal/combinators"

// MonadicFunc is a whole monadic transform (Buf -> Action Buf) as a plain
// Go function, the shape Inv and Par compose over. inv is also registered
// in the reference symbol table as a higher-order node; par takes two
// function arguments, which the descriptor's single fun reference cannot
// carry, so it is applied in code only.
type MonadicFunc = combinators.MonadicOf

// Inv inverts f: packets f drops (or nulls) pass, packets f passes drop.
func Inv(f MonadicFunc) MonadicFunc {
	return combinators.Inv(f)
}

// Par runs f with the packet's fanout snapshotted; if f's result is null
// or drop, the fanout is restored and g runs instead.
func Par(f, g MonadicFunc) MonadicFunc {
	return combinators.Par(f, g)
}

package descr

import (
	"github.com/pfq-lang/pfqcore/internal/constants"
	"github.com/pfq-lang/pfqcore/internal/interfaces"
	"github.com/pfq-lang/pfqcore/internal/pfqerr"
	"github.com/pfq-lang/pfqcore/internal/sig"
)

const opValidate = "validate"

// sigBuf2ActionBuf is the required entry-point / monadic signature.
const sigBuf2ActionBuf = "Buf -> Action Buf"

// sigBuf2Bool is the required predicate-reference signature for
// higher-order nodes, combinator children, and predicate sub-functions.
const sigBuf2Bool = "Buf -> Bool"

// sigBuf2Any is a property sub-function's required shape: any return type.
const sigBuf2Any = "Buf -> a"

// Validate checks a computation descriptor against the per-node-kind
// signature and argument constraints: the entry point's range, then that
// every non-empty symbol resolves (an unknown name is a KindSymbol error),
// then the entry point's signature, then each node in order. It
// performs no side effects: success, or the first *pfqerr.Error found.
func Validate(c *Computation, symtab interfaces.SymbolTable) error {
	if c.Size != len(c.Fun) {
		return pfqerr.New(opValidate, pfqerr.KindValidation, "size does not match descriptor count")
	}
	if c.Size > constants.DefaultMaxNodes {
		return pfqerr.New(opValidate, pfqerr.KindValidation, "descriptor count exceeds limit")
	}
	if !c.InRange(c.EntryPoint) {
		return pfqerr.New(opValidate, pfqerr.KindValidation, "entry_point out of range")
	}

	for i, n := range c.Fun {
		if _, ok := symtab.Lookup(n.Symbol); n.Symbol != "" && !ok {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindSymbol, "unknown symbol: "+n.Symbol)
		}
	}

	entry := c.Fun[c.EntryPoint]
	if err := checkBindsTo(symtab, entry, sigBuf2ActionBuf); err != nil {
		return pfqerr.NewNode(opValidate, c.EntryPoint, pfqerr.KindValidation,
			"entry point does not bind to "+sigBuf2ActionBuf+": "+err.Error())
	}

	for i := range c.Fun {
		if err := validateNode(c, i, symtab); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(c *Computation, i int, symtab interfaces.SymbolTable) error {
	n := c.Fun[i]

	if n.Symbol == "" {
		return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "symbol must not be empty")
	}
	if err := checkArgShape(n); err != nil {
		return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, err.Error())
	}

	switch n.Kind {
	case KindMonadic:
		if err := checkBindsTo(symtab, n, sigBuf2ActionBuf); err != nil {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, err.Error())
		}
		return nil

	case KindHigherOrder:
		if err := checkBindsTo(symtab, n, sigBuf2ActionBuf); err != nil {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, err.Error())
		}
		if !c.InRange(n.Fun) {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "higher-order node requires a valid fun index")
		}
		if err := checkBindsTo(symtab, c.Fun[n.Fun], sigBuf2Bool); err != nil {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "fun node: "+err.Error())
		}
		return nil

	case KindPredicate:
		if err := checkArgShape(n); err != nil {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, err.Error())
		}
		if c.hasSuccessors(n) {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "predicate left/right must be null")
		}
		if n.Fun != NoIndex {
			if !c.InRange(n.Fun) {
				return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "predicate fun index out of range")
			}
			if err := checkBindsTo(symtab, c.Fun[n.Fun], sigBuf2Bool); err != nil {
				return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "fun node: "+err.Error())
			}
		}
		return nil

	case KindCombinator:
		if !c.InRange(n.Left) || !c.InRange(n.Right) {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "combinator left/right operands must be in range")
		}
		if err := checkBindsTo(symtab, c.Fun[n.Left], sigBuf2Bool); err != nil {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "left node: "+err.Error())
		}
		if err := checkBindsTo(symtab, c.Fun[n.Right], sigBuf2Bool); err != nil {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "right node: "+err.Error())
		}
		return nil

	case KindProperty:
		if err := checkArgShape(n); err != nil {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, err.Error())
		}
		if c.hasSuccessors(n) {
			return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "property left/right must be null")
		}
		if n.Fun != NoIndex {
			if !c.InRange(n.Fun) {
				return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "property fun index out of range")
			}
			if err := checkBindsTo(symtab, c.Fun[n.Fun], sigBuf2Any); err != nil {
				return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "fun node: "+err.Error())
			}
		}
		return nil

	default:
		return pfqerr.NewNode(opValidate, i, pfqerr.KindValidation, "unknown node kind")
	}
}

// hasSuccessors reports whether a node carries an in-range left or right
// link. Predicate and property nodes must not: their materialized
// successor pointers stay null, and the only way to guarantee
// that from the raw descriptor is to require both fields out of range
// ("none") up front, the same convention the linker uses when resolving
// monadic/higher-order successors.
func (c *Computation) hasSuccessors(n Functional) bool {
	return c.InRange(n.Left) || c.InRange(n.Right)
}

// checkArgShape enforces "(arg_ptr == null) iff (arg_size == 0)".
func checkArgShape(n Functional) error {
	hasPtr := n.ArgPtr != nil
	hasSize := n.ArgSize != 0
	if hasPtr != hasSize {
		return pfqerr.New(opValidate, pfqerr.KindValidation, "arg_ptr/arg_size shape mismatch")
	}
	return nil
}

// checkBindsTo resolves n's symbol and checks its signature, bound to
// n.Nargs, equals want.
func checkBindsTo(symtab interfaces.SymbolTable, n Functional, want string) error {
	entry, ok := symtab.Lookup(n.Symbol)
	if !ok {
		return pfqerr.New(opValidate, pfqerr.KindSymbol, "unknown symbol: "+n.Symbol)
	}
	bound, ok := sig.BindString(entry.Signature, n.Nargs)
	if !ok {
		return pfqerr.New(opValidate, pfqerr.KindValidation, "signature has fewer than nargs tokens")
	}
	if !sig.EqualStrings(bound, want) {
		return pfqerr.New(opValidate, pfqerr.KindValidation, "signature "+bound+" does not match "+want)
	}
	return nil
}

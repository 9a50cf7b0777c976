// Package sig implements the Lang Engine's textual type signature parser:
// parsing "T1 -> T2 -> ... -> Tn" arrow chains, equality modulo type
// variables, and binding (dropping a leading run of argument types).
package sig

import "strings"

// Signature is a parsed, arrow-separated chain of type tokens, e.g.
// parsing "Int -> Buf -> Action Buf" yields ["Int", "Buf", "Action Buf"].
type Signature struct {
	tokens []string
}

// Parse splits a textual signature on "->" and trims whitespace around each
// token. Tokens themselves may contain internal spaces (e.g. "Action Buf"
// is one token, not two) since only "->" separates arguments.
func Parse(s string) Signature {
	parts := strings.Split(s, "->")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, strings.TrimSpace(p))
	}
	return Signature{tokens: tokens}
}

// String renders the signature back to its canonical "T1 -> T2" form.
func (s Signature) String() string {
	return strings.Join(s.tokens, " -> ")
}

// Arity returns the number of tokens in the chain.
func (s Signature) Arity() int {
	return len(s.tokens)
}

// isTypeVariable reports whether a token is a type variable: it begins with
// a lowercase letter and carries no further structure (no embedded spaces
// or brackets, the way concrete types like "Action Buf" or "[Int]" do).
func isTypeVariable(tok string) bool {
	if tok == "" {
		return false
	}
	c := tok[0]
	if c < 'a' || c > 'z' {
		return false
	}
	return !strings.ContainsAny(tok, " []")
}

// tokenEqual reports whether two tokens match: textually identical, or
// either side is a type variable (which matches anything). Multi-word
// tokens such as "Action Buf" and "Action a" are compared word by word
// under the same rule.
func tokenEqual(a, b string) bool {
	if a == b {
		return true
	}
	if isTypeVariable(a) || isTypeVariable(b) {
		return true
	}
	wa, wb := strings.Fields(a), strings.Fields(b)
	if len(wa) < 2 || len(wa) != len(wb) {
		return false
	}
	for i := range wa {
		if wa[i] != wb[i] && !isTypeVariable(wa[i]) && !isTypeVariable(wb[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two signatures have the same arity and every
// corresponding token pair is equal modulo type variables.
func Equal(a, b Signature) bool {
	if len(a.tokens) != len(b.tokens) {
		return false
	}
	for i := range a.tokens {
		if !tokenEqual(a.tokens[i], b.tokens[i]) {
			return false
		}
	}
	return true
}

// EqualStrings is a convenience wrapper around Parse+Equal for call sites
// that hold raw signature strings.
func EqualStrings(a, b string) bool {
	return Equal(Parse(a), Parse(b))
}

// Bind drops the leading k argument tokens from the signature, returning
// the residual signature and true, or the zero Signature and false if fewer
// than k tokens remain (k must leave at least the return type behind).
func (s Signature) Bind(k int) (Signature, bool) {
	if k < 0 || k >= len(s.tokens) {
		return Signature{}, false
	}
	return Signature{tokens: append([]string(nil), s.tokens[k:]...)}, true
}

// BindString parses s and binds it to k arguments, returning the residual
// signature's canonical string form.
func BindString(s string, k int) (string, bool) {
	bound, ok := Parse(s).Bind(k)
	if !ok {
		return "", false
	}
	return bound.String(), true
}

package pfqcore

import "github.com/pfq-lang/pfqcore/internal/pfqerr"

// Error is pfqcore's structured install-time error: every validator,
// arena, and linker failure is surfaced as one of these. It is
// a re-export of internal/pfqerr.Error so the public API and every
// internal package share one concrete error type and errors.As works
// identically whether a caller imports pfqcore or an internal package
// reaches across the boundary in a test.
type Error = pfqerr.Error

// Kind categorizes an install-time failure.
type Kind = pfqerr.Kind

const (
	KindValidation = pfqerr.KindValidation
	KindSymbol     = pfqerr.KindSymbol
	KindMemory     = pfqerr.KindMemory
	KindInitHook   = pfqerr.KindInitHook
)

// IsKind reports whether err is a *Error of the given kind, unwrapping
// through any wrapper that implements errors.Unwrap along the way.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if pe, ok := err.(*Error); ok {
			return pe.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

//go:build !linux || !cgo || !amd64

package barrier

import "sync/atomic"

// fenceVar is touched with a sequentially-consistent atomic store as a
// portable release barrier on platforms without the cgo sfence.
var fenceVar atomic.Uint32

// Release issues a release barrier using sync/atomic, for platforms or
// builds that don't carry the cgo-backed store fence. The Go memory model
// guarantees atomic operations order surrounding memory accesses, so this
// is a correct if coarser-grained substitute for the x86 SFENCE
// instruction.
func Release() {
	fenceVar.Add(1)
}

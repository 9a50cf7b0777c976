//go:build !unix

package mpdb

// pageSize is a conservative default for non-unix builds, which have no
// user-mappable shared memory path in this implementation; the queue still
// functions as an in-process ring, just without the mmap ABI a real
// capture thread on the other side of a socket boundary would rely on.
const pageSize = 4096

func roundAllocSize(bytes int) int {
	if bytes <= 0 {
		bytes = pageSize
	}
	return ((bytes + pageSize - 1) / pageSize) * pageSize
}

// mapShared falls back to a plain zeroed byte slice on platforms without
// the unix mmap family; it is not user-mappable, but every in-process
// invariant (atomics, release fence, ready barrier) still holds.
func mapShared(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapShared(mem []byte) error {
	return nil
}

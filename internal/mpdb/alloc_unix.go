//go:build unix

package mpdb

import "golang.org/x/sys/unix"

// shmAlignment is the alignment this implementation targets for the
// shared-memory region beyond plain page alignment. SHMLBA on most Linux
// architectures equals the page size, but some historically required a
// coarser alignment; the allocation rule rounds to the greater of the
// two, so this constant is kept distinct from the page size even though
// they agree on every architecture this module targets.
const shmAlignment = 4096

// pageSize is resolved once at init via the real page size so that
// roundAllocSize tracks the host rather than assuming 4096 universally
// (arm64 and some other platforms use 16K or 64K pages).
var pageSize = unix.Getpagesize()

// roundAllocSize rounds the requested bytes up to a page multiple, then
// rounds the page count up to the greater-of-page-and-shared-memory
// alignment.
func roundAllocSize(bytes int) int {
	if bytes <= 0 {
		bytes = pageSize
	}
	pages := (bytes + pageSize - 1) / pageSize
	alignPages := (shmAlignment + pageSize - 1) / pageSize
	if alignPages < 1 {
		alignPages = 1
	}
	pages = ((pages + alignPages - 1) / alignPages) * alignPages
	return pages * pageSize
}

// mapShared allocates zeroed, user-mappable anonymous shared memory of
// the given (already page-rounded) size.
func mapShared(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_SHARED)
}

// unmapShared releases memory obtained from mapShared.
func unmapShared(mem []byte) error {
	return unix.Munmap(mem)
}

//go:build linux

package mpdb

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// futexWait and futexWake issue the raw futex syscall, which x/sys/unix
// doesn't wrap at a high level. The consumer's poll_wait word doubles as
// the futex word: the same 32-bit location producers test to decide
// whether to wake the consumer is the address the consumer sleeps on, so
// no separate synchronization object is needed.
const (
	futexWaitOp = 0
	futexWakeOp = 1
)

func futexWait(addr *uint32, expected uint32) {
	_, _, _ = syscall.Syscall6(unix.SYS_FUTEX, uintptr(unsafe.Pointer(addr)), futexWaitOp, uintptr(expected), 0, 0, 0)
}

func futexWake(addr *uint32, n int) {
	_, _, _ = syscall.Syscall6(unix.SYS_FUTEX, uintptr(unsafe.Pointer(addr)), futexWakeOp, uintptr(n), 0, 0, 0)
}

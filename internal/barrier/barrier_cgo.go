//go:build linux && cgo && amd64

package barrier

/*
// x86-64 store fence: ensures all prior stores are globally visible before
// any subsequent store. Used before publishing a packet slot's ready word.
static inline void sfence_impl(void) {
    __asm__ __volatile__("sfence" ::: "memory");
}
*/
import "C"

// Release issues a store fence (x86 SFENCE) between a slot's header and
// payload writes and the ready store that publishes it to the consumer.
func Release() {
	C.sfence_impl()
}

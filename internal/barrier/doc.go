// Package barrier provides the release fence the MPDB queue's enqueue path
// issues before publishing a packet slot: a cgo-backed x86 SFENCE on
// linux/amd64 cgo builds, a sync/atomic-based fallback elsewhere.
package barrier

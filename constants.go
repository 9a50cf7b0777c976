package pfqcore

import "github.com/pfq-lang/pfqcore/internal/constants"

// Re-exported default sizing and alignment values from internal/constants,
// so callers can size queues and descriptors without importing an internal
// package.
const (
	DefaultMaxNodes     = constants.DefaultMaxNodes
	DefaultSlots        = constants.DefaultSlots
	DefaultSlotSize     = constants.DefaultSlotSize
	DefaultCaplen       = constants.DefaultCaplen
	WatermarkWakeStride = constants.WatermarkWakeStride
	WordSize            = constants.WordSize
	InlineArgMaxSize    = constants.InlineArgMaxSize
)

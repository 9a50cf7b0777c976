package pfqcore_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pfqcore "github.com/pfq-lang/pfqcore"
)

func TestError_Message(t *testing.T) {
	err := &pfqcore.Error{Op: "validate", Node: 3, Kind: pfqcore.KindValidation, Msg: "bad signature"}
	assert.Equal(t, "pfqcore: validate: node 3: validation: bad signature", err.Error())

	err = &pfqcore.Error{Op: "rtlink", Node: -1, Kind: pfqcore.KindSymbol, Msg: "unknown symbol: nope"}
	assert.Equal(t, "pfqcore: rtlink: symbol: unknown symbol: nope", err.Error())
}

func TestError_IsMatchesByKind(t *testing.T) {
	a := &pfqcore.Error{Op: "validate", Node: 0, Kind: pfqcore.KindValidation, Msg: "x"}
	b := &pfqcore.Error{Op: "rtlink", Node: 9, Kind: pfqcore.KindValidation, Msg: "y"}
	assert.True(t, errors.Is(a, b))

	c := &pfqcore.Error{Op: "rtlink", Node: -1, Kind: pfqcore.KindMemory, Msg: "z"}
	assert.False(t, errors.Is(a, c))
}

func TestIsKind_UnwrapsWrappers(t *testing.T) {
	inner := &pfqcore.Error{Op: "arena", Node: -1, Kind: pfqcore.KindMemory, Msg: "slot-mismatch"}
	wrapped := fmt.Errorf("install: %w", inner)

	assert.True(t, pfqcore.IsKind(wrapped, pfqcore.KindMemory))
	assert.False(t, pfqcore.IsKind(wrapped, pfqcore.KindValidation))
	assert.False(t, pfqcore.IsKind(errors.New("plain"), pfqcore.KindMemory))
	assert.False(t, pfqcore.IsKind(nil, pfqcore.KindMemory))
}

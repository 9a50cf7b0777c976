package group_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfq-lang/pfqcore/internal/group"
)

func TestRegistry_LookupUnknownFails(t *testing.T) {
	r := group.NewRegistry()
	_, _, ok := r.Lookup("g0")
	assert.False(t, ok)
}

func TestRegistry_AddThenLookup(t *testing.T) {
	r := group.NewRegistry()
	ctx := r.Add("g0", 0xff)

	got, mask, ok := r.Lookup("g0")
	require.True(t, ok)
	assert.Same(t, ctx, got)
	assert.Equal(t, uint32(0xff), mask)
}

func TestContext_CounterPersistsAcrossCalls(t *testing.T) {
	ctx := &group.Context{}
	ctx.Counter(0).Add(1)
	ctx.Counter(0).Add(1)
	ctx.Counter(1).Add(5)

	assert.Equal(t, int64(2), ctx.Counter(0).Load())
	assert.Equal(t, int64(5), ctx.Counter(1).Load())
}

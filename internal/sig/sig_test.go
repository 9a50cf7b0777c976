package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualStrings(t *testing.T) {
	assert.True(t, EqualStrings("Buf -> Action Buf", "a -> Action a"))
	assert.False(t, EqualStrings("Buf -> Bool", "Buf -> Action Buf"))
	assert.True(t, EqualStrings("Buf -> Action Buf", "Buf -> Action Buf"))
	assert.False(t, EqualStrings("Int -> Buf -> Action Buf", "Buf -> Action Buf"))
}

func TestBindString(t *testing.T) {
	got, ok := BindString("Int -> Buf -> Action Buf", 1)
	require.True(t, ok)
	assert.Equal(t, "Buf -> Action Buf", got)

	_, ok = BindString("Buf -> Action Buf", 2)
	assert.False(t, ok, "binding past the return type must fail")

	got, ok = BindString("Buf -> Action Buf", 0)
	require.True(t, ok)
	assert.Equal(t, "Buf -> Action Buf", got)
}

func TestIsTypeVariable(t *testing.T) {
	assert.True(t, isTypeVariable("a"))
	assert.True(t, isTypeVariable("buf"))
	assert.False(t, isTypeVariable("Buf"))
	assert.False(t, isTypeVariable("Action Buf"))
	assert.False(t, isTypeVariable("[Int]"))
}

func TestEqualStringsResidualVariable(t *testing.T) {
	// Property sub-function check: a concrete return type matches the
	// "Buf -> a" type-variable tail.
	assert.True(t, EqualStrings("Buf -> Int", "Buf -> a"))
}

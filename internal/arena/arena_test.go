package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlloc_SumsOnlyOversizedArgs(t *testing.T) {
	sizes := []int{0, 8, 9, 16, 2048}
	got := Alloc(len(sizes), func(i int) int { return sizes[i] })
	// 9 -> word(8) + align_up(9,8)=16 -> 24
	// 16 -> word(8) + 16 -> 24
	// 2048 -> word(8) + 2048 -> 2056
	want := 24 + 24 + 2056
	assert.Equal(t, want, got)
}

func TestPut_CopiesPayloadsInDescriptorOrder(t *testing.T) {
	sizes := []int{0, 8, 100, 9}
	total := Alloc(len(sizes), func(i int) int { return sizes[i] })
	a := New(total)

	src100 := make([]byte, 100)
	for i := range src100 {
		src100[i] = byte(i)
	}
	src9 := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}

	p1, err := a.Put(100, src100)
	require.NoError(t, err)
	assert.Equal(t, src100, p1)

	p2, err := a.Put(9, src9)
	require.NoError(t, err)
	assert.Equal(t, src9, p2)

	assert.Equal(t, 0, a.Remaining())
}

func TestTake_FailsOnSizeMismatch(t *testing.T) {
	a := New(Alloc(1, func(int) int { return 100 }))
	_, err := a.Put(100, make([]byte, 100))
	require.NoError(t, err)

	a.cursor = 0
	_, err = a.Take(50)
	assert.Error(t, err)
}

func TestTake_SucceedsExactlyOncePerSlot(t *testing.T) {
	a := New(Alloc(1, func(int) int { return 64 }))
	_, err := a.Put(64, make([]byte, 64))
	require.NoError(t, err)

	a.cursor = 0
	_, err = a.Take(64)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Remaining())

	_, err = a.Take(64)
	assert.Error(t, err, "arena is exhausted after one slot is consumed")
}

func TestPut_FailsOnOverflow(t *testing.T) {
	a := New(8)
	_, err := a.Put(100, make([]byte, 100))
	assert.Error(t, err)
}

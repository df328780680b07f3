package random

import (
	"bytes"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntn_Bounds(t *testing.T) {
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := Intn(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
		seen[v] = true
	}
	assert.Len(t, seen, 5, "all values in range should appear")
}

func TestIntn_PanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { Intn(0) })
	assert.Panics(t, func() { Intn(-1) })
}

func TestBetween(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := Between(100000, 1000000)
		assert.GreaterOrEqual(t, v, 100000)
		assert.Less(t, v, 1000000)
	}
}

func TestPick(t *testing.T) {
	list := []string{"a", "b", "c"}
	for i := 0; i < 100; i++ {
		assert.Contains(t, list, Pick(list))
	}
	assert.Panics(t, func() { Pick([]string{}) })
}

func TestIntnFrom(t *testing.T) {
	v, err := IntnFrom(bytes.NewReader(make([]byte, 16)), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, err = IntnFrom(iotest.ErrReader(assert.AnError), 10)
	assert.ErrorIs(t, err, assert.AnError)
}

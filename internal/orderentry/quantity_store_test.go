package orderentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeQuantity(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"5", 5},
		{"05", 5},
		{"", 0},
		{"abc", 0},
		{"-3", 3}, // sign stripped, digits kept
		{"1x2", 12},
		{" 7 ", 7},
		{"0", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeQuantity(tc.raw), "raw=%q", tc.raw)
	}
}

func TestQuantityStoreZeroIsAbsent(t *testing.T) {
	s := NewQuantityStore()

	got := s.Set(0, "vA", "S", "3")
	assert.Equal(t, 3, got)
	assert.Equal(t, 3, s.Get(0, "vA", "S"))
	assert.Equal(t, 1, s.Len())

	// Writing zero removes the key instead of storing it.
	got = s.Set(0, "vA", "S", "0")
	assert.Equal(t, 0, got)
	assert.Equal(t, 0, s.Get(0, "vA", "S"))
	assert.Equal(t, 0, s.Len())

	// Unparsable input counts as zero and never grows the store.
	s.Set(1, "vB", "M", "garbage")
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Empty())
}

func TestQuantityStoreEveryStoredValuePositive(t *testing.T) {
	s := NewQuantityStore()
	inputs := []string{"3", "0", "12", "", "-4", "7", "abc", "1"}
	sizes := []string{"S", "M", "L", "XL"}

	for i, raw := range inputs {
		s.Set(i%2, "v", sizes[i%len(sizes)], raw)
	}

	s.Each(func(key CellKey, qty int) {
		assert.Greater(t, qty, 0, "stored value for %v must be positive", key)
	})
}

func TestQuantityStoreBump(t *testing.T) {
	s := NewQuantityStore()

	assert.Equal(t, 1, s.Bump(0, "vA", "S", 1))
	assert.Equal(t, 2, s.Bump(0, "vA", "S", 1))
	assert.Equal(t, 1, s.Bump(0, "vA", "S", -1))
	assert.Equal(t, 0, s.Bump(0, "vA", "S", -1))

	// Bumping below zero clamps and removes the key.
	assert.Equal(t, 0, s.Bump(0, "vA", "S", -1))
	assert.Equal(t, 0, s.Len())
}

func TestQuantityStoreReset(t *testing.T) {
	s := NewQuantityStore()
	s.Set(0, "vA", "S", "2")
	s.Set(1, "vB", "M", "4")
	assert.Equal(t, 2, s.Len())

	s.Reset()
	assert.True(t, s.Empty())
	assert.Equal(t, 0, s.Get(0, "vA", "S"))
}

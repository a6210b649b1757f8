package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddIfAbsent(t *testing.T) {
	s := New(1, 2)

	assert.True(t, s.AddIfAbsent(3))
	assert.False(t, s.AddIfAbsent(3))
	assert.False(t, s.AddIfAbsent(1))
	assert.Equal(t, New(1, 2, 3), s)
}

func TestSet_RemoveFunc(t *testing.T) {
	s := New(1, 2, 3, 4)

	removed := s.RemoveFunc(func(v int) bool { return v%2 == 0 })

	assert.ElementsMatch(t, []int{2, 4}, removed)
	assert.Equal(t, New(1, 3), s)
	assert.Empty(t, s.RemoveFunc(func(v int) bool { return v > 10 }))
}

func TestSet_Values(t *testing.T) {
	assert.ElementsMatch(t, []int{1, 2, 3}, New(3, 2, 1, 1).Values())
	assert.Empty(t, New[int]().Values())
}

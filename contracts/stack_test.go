package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackPushPop(t *testing.T) {
	var s Stack
	assert.Equal(t, 0, s.Len())

	_, ok := s.Pop()
	assert.False(t, ok)

	s.Push(NumberValue(1))
	s.Push(NumberValue(2))
	assert.Equal(t, 2, s.Len())

	top, ok := s.Pop()
	require := assert.New(t)
	require.True(ok)
	require.Equal(NumberValue(2), top)
	assert.Equal(t, 1, s.Len())
}

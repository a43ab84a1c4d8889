package cellengine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/berejant/cellengine/contracts"
)

func TestCapabilities(t *testing.T) {
	caps := Capabilities()
	assert.NotZero(t, caps&contracts.CapCyclicDeps)
	assert.NotZero(t, caps&contracts.CapFileIO)
	assert.NotZero(t, caps&contracts.CapSpeed)
	assert.Zero(t, caps&contracts.CapFunctions)
	assert.Zero(t, caps&contracts.CapParser)
}

func TestNewReturnsUsableSheet(t *testing.T) {
	s := New()
	assert.True(t, s.SetCell(pos("A", 1), "1"))
	assert.Equal(t, contracts.NumberValue(1), s.GetValue(pos("A", 1)))
}

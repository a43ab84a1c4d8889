package cellengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berejant/cellengine/contracts"
)

func pos(colLetters string, row uint64) contracts.Position {
	col, err := contracts.ParseColumnLetters(colLetters)
	if err != nil {
		panic(err)
	}
	return contracts.Position{Column: col, Row: row}
}

func newTestSheet() *Sheet {
	s := NewSheet()
	s.Parser = testFormulaParser{}
	return s
}

func TestSetCellLiteralKinds(t *testing.T) {
	s := newTestSheet()

	assert.True(t, s.SetCell(pos("A", 1), "42"))
	assert.Equal(t, contracts.NumberValue(42), s.GetValue(pos("A", 1)))

	assert.True(t, s.SetCell(pos("A", 2), "hello"))
	assert.Equal(t, contracts.TextValue("hello"), s.GetValue(pos("A", 2)))

	assert.True(t, s.SetCell(pos("A", 3), ""))
	assert.True(t, s.GetValue(pos("A", 3)).IsEmpty())
}

func TestSetCellFormulaEvaluatesAgainstOtherCells(t *testing.T) {
	s := newTestSheet()
	s.SetCell(pos("A", 1), "10")
	s.SetCell(pos("A", 2), "20")
	require.True(t, s.SetCell(pos("A", 3), "=A1+A2*2"))

	assert.Equal(t, contracts.NumberValue(50), s.GetValue(pos("A", 3)))
}

func TestSetCellFormulaFunctionsOverRange(t *testing.T) {
	s := newTestSheet()
	s.SetCell(pos("A", 1), "1")
	s.SetCell(pos("A", 2), "2")
	s.SetCell(pos("A", 3), "3")
	require.True(t, s.SetCell(pos("B", 1), "=sum(A1:A3)"))
	assert.Equal(t, contracts.NumberValue(6), s.GetValue(pos("B", 1)))
}

func TestSetCellUnparseableFormulaLeavesCellEmpty(t *testing.T) {
	s := newTestSheet()
	ok := s.SetCell(pos("A", 1), "=this is not valid (")
	assert.False(t, ok)
	assert.True(t, s.GetValue(pos("A", 1)).IsEmpty())
}

func TestSetCellFormulaWithoutParserConfiguredLeavesCellEmpty(t *testing.T) {
	s := NewSheet() // no Parser set
	ok := s.SetCell(pos("A", 1), "=1+1")
	assert.False(t, ok)
	assert.True(t, s.GetValue(pos("A", 1)).IsEmpty())
}

func TestGetValueOfMissingCellIsEmpty(t *testing.T) {
	s := newTestSheet()
	assert.True(t, s.GetValue(pos("Z", 99)).IsEmpty())
	assert.NoError(t, s.LastError())
}

func TestGetValueSurfacesDirectSelfCycle(t *testing.T) {
	s := newTestSheet()
	require.True(t, s.SetCell(pos("A", 1), "=A1"))

	v := s.GetValue(pos("A", 1))
	assert.True(t, v.IsEmpty())
	require.Error(t, s.LastError())
	assert.ErrorIs(t, s.LastError(), contracts.Cycle)
}

func TestGetValueSurfacesIndirectCycle(t *testing.T) {
	s := newTestSheet()
	require.True(t, s.SetCell(pos("A", 1), "=A2"))
	require.True(t, s.SetCell(pos("A", 2), "=A1"))

	s.GetValue(pos("A", 1))
	assert.ErrorIs(t, s.LastError(), contracts.Cycle)
}

func TestGetValueDoesNotMutateStoredCells(t *testing.T) {
	s := newTestSheet()
	require.True(t, s.SetCell(pos("A", 1), "10"))
	require.True(t, s.SetCell(pos("A", 2), "=A1*2"))

	first := s.GetValue(pos("A", 2))
	second := s.GetValue(pos("A", 2))
	assert.Equal(t, first, second)

	// Underlying literal is unaffected by having been read through a formula.
	assert.Equal(t, contracts.NumberValue(10), s.GetValue(pos("A", 1)))
}

func TestSetProgramDirectInjection(t *testing.T) {
	s := newTestSheet()
	s.SetCell(pos("A", 1), "4")
	prog := contracts.Program{&RefNode{Col: 1, Row: 1}, &ConstNode{Value: 2}, &BinaryOpNode{Op: "*"}}
	require.True(t, s.SetProgram(pos("B", 1), prog))
	assert.Equal(t, contracts.NumberValue(8), s.GetValue(pos("B", 1)))
}

func TestSheetImplementsContractsSheetInterface(t *testing.T) {
	var _ contracts.Sheet = NewSheet()
}

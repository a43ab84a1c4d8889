package cellengine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berejant/cellengine/contracts"
)

func openTestBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cells.db")
	store, err := OpenBoltStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStoreRoundTripsEveryCellKind(t *testing.T) {
	store := openTestBoltStore(t)

	cases := map[uint64]contracts.CellState{
		1: {Kind: contracts.CellNumber, Number: 3.25},
		2: {Kind: contracts.CellText, Text: `has "quotes"`},
		3: {Kind: contracts.CellProgram, Program: contracts.Program{
			&ConstNode{Value: 1}, &ConstNode{Value: 2}, &BinaryOpNode{Op: "+"},
		}},
	}
	for id, state := range cases {
		require.NoError(t, store.Set(id, state))
	}

	for id, want := range cases {
		got, ok, err := store.Get(id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, encodeCellState(want), encodeCellState(got))
	}
}

func TestBoltStoreSetEmptyDeletes(t *testing.T) {
	store := openTestBoltStore(t)
	require.NoError(t, store.Set(1, contracts.CellState{Kind: contracts.CellNumber, Number: 1}))
	require.NoError(t, store.Set(1, contracts.CellState{Kind: contracts.CellEmpty}))
	_, ok, err := store.Get(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBoltStoreEach(t *testing.T) {
	store := openTestBoltStore(t)
	require.NoError(t, store.Set(1, contracts.CellState{Kind: contracts.CellNumber, Number: 1}))
	require.NoError(t, store.Set(2, contracts.CellState{Kind: contracts.CellNumber, Number: 2}))

	seen := map[uint64]float64{}
	require.NoError(t, store.Each(func(id uint64, s contracts.CellState) error {
		seen[id] = s.Number
		return nil
	}))
	assert.Equal(t, map[uint64]float64{1: 1, 2: 2}, seen)
}

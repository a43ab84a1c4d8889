package cellengine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/berejant/cellengine/contracts"
)

// mockStore is a testify/mock-backed contracts.Store, used to exercise
// Sheet against a failing backing store without standing up a real
// bbolt file.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(id uint64) (contracts.CellState, bool, error) {
	args := m.Called(id)
	state, _ := args.Get(0).(contracts.CellState)
	return state, args.Bool(1), args.Error(2)
}

func (m *mockStore) Set(id uint64, state contracts.CellState) error {
	args := m.Called(id, state)
	return args.Error(0)
}

func (m *mockStore) Delete(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockStore) Each(fn func(id uint64, state contracts.CellState) error) error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestSheetGetValuePropagatesStoreFailureAsEmpty(t *testing.T) {
	store := new(mockStore)
	p := pos("A", 1)
	store.On("Get", p.ID()).Return(contracts.CellState{}, false, errors.New("disk error"))

	s := NewSheetWithStore(store)
	v := s.GetValue(p)
	require.True(t, v.IsEmpty())
	store.AssertExpectations(t)
}

func TestSheetSetCellReportsStoreFailure(t *testing.T) {
	store := new(mockStore)
	p := pos("A", 1)
	store.On("Set", p.ID(), mock.AnythingOfType("contracts.CellState")).Return(errors.New("disk full"))

	s := NewSheetWithStore(store)
	ok := s.SetCell(p, "1")
	require.False(t, ok)
	store.AssertExpectations(t)
}

func TestSheetCloseDelegatesToStore(t *testing.T) {
	store := new(mockStore)
	store.On("Close").Return(nil)

	s := NewSheetWithStore(store)
	require.NoError(t, s.Close())
	store.AssertExpectations(t)
}

package cellengine

import (
	"sort"

	"github.com/berejant/cellengine/contracts"
)

// MemStore is the default in-memory contracts.Store backend. Unset
// cells are simply absent from the map rather than stored as Empty.
type MemStore struct {
	cells map[uint64]contracts.CellState
}

func NewMemStore() *MemStore {
	return &MemStore{cells: make(map[uint64]contracts.CellState)}
}

func (s *MemStore) Get(id uint64) (contracts.CellState, bool, error) {
	state, ok := s.cells[id]
	return state, ok, nil
}

func (s *MemStore) Set(id uint64, state contracts.CellState) error {
	if state.Kind == contracts.CellEmpty {
		delete(s.cells, id)
		return nil
	}
	s.cells[id] = state
	return nil
}

func (s *MemStore) Delete(id uint64) error {
	delete(s.cells, id)
	return nil
}

// Each visits cells in ascending id order so Save produces
// deterministic, reproducible output.
func (s *MemStore) Each(fn func(id uint64, state contracts.CellState) error) error {
	ids := make([]uint64, 0, len(s.cells))
	for id := range s.cells {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := fn(id, s.cells[id]); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemStore) Close() error { return nil }
